package repository

import (
	"context"

	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/query"
)

// ObraRepository define el puerto de persistencia para Obra. Un solo puerto
// atiende las dos variantes; el tipo discrimina en cada consulta.
type ObraRepository interface {
	Create(ctx context.Context, o *entity.Obra) error
	GetByID(ctx context.Context, tipo entity.TipoObra, id string) (*entity.Obra, error)
	GetByNumeroContrato(ctx context.Context, tipo entity.TipoObra, numero string) (*entity.Obra, error)
	Update(ctx context.Context, o *entity.Obra) error
	List(ctx context.Context, tipo entity.TipoObra, shape query.Shape) ([]*entity.Obra, error)
	Count(ctx context.Context, tipo entity.TipoObra, search string) (int, error)
	Delete(ctx context.Context, id string) error

	// CountByEmpresa cuenta las obras que referencian a la empresa como
	// ejecutora o supervisora (guarda del DELETE de empresas).
	CountByEmpresa(ctx context.Context, empresaID string) (int, error)

	// ReplaceProfesionales elimina el plantel actual de la obra e inserta la
	// lista nueva. Invocar sobre un repositorio atado a una transacción.
	ReplaceProfesionales(ctx context.Context, obraID string, profesionales []entity.Profesional) error
}

// ProfesionalRepository opera profesionales fila a fila (sub-recurso directo,
// sin pasar por el reemplazo de colección completa).
type ProfesionalRepository interface {
	ListByObra(ctx context.Context, obraID string) ([]entity.Profesional, error)
	GetByID(ctx context.Context, id string) (*entity.Profesional, error)
	Create(ctx context.Context, p *entity.Profesional) error
	Update(ctx context.Context, p *entity.Profesional) error
	Delete(ctx context.Context, id string) error
}
