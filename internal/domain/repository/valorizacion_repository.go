package repository

import (
	"context"

	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
)

// ValorizacionRepository define el puerto de persistencia para Valorizacion.
type ValorizacionRepository interface {
	Create(ctx context.Context, v *entity.Valorizacion) error
	GetByID(ctx context.Context, id string) (*entity.Valorizacion, error)
	GetByObraAndNumero(ctx context.Context, obraID string, numero int) (*entity.Valorizacion, error)
	ListByObra(ctx context.Context, obraID string) ([]entity.Valorizacion, error)
	CountByObra(ctx context.Context, obraID string) (int, error)
	Delete(ctx context.Context, id string) error
}
