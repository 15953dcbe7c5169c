package repository

import (
	"context"

	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/query"
)

// EmpresaRepository define el puerto de persistencia para Empresa (DIP).
// La implementación vive en infrastructure.
type EmpresaRepository interface {
	Create(ctx context.Context, e *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	GetByRUC(ctx context.Context, ruc string) (*entity.Empresa, error)
	Update(ctx context.Context, e *entity.Empresa) error
	List(ctx context.Context, shape query.Shape) ([]*entity.Empresa, error)
	Count(ctx context.Context, search string) (int, error)
	Delete(ctx context.Context, id string) error

	// ReplaceIntegrantes elimina todos los integrantes actuales de la empresa
	// e inserta la lista nueva. Debe invocarse sobre un repositorio atado a
	// una transacción para que el reemplazo sea todo-o-nada.
	ReplaceIntegrantes(ctx context.Context, empresaID string, integrantes []entity.IntegranteConsorcio) error
}
