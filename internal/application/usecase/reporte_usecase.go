package usecase

import (
	"context"

	"github.com/ENEASJO/control-valo-api/internal/domain"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/repository"
)

// ReporteObraGenerator es el puerto del generador del reporte PDF de una obra.
// La implementación (Maroto) vive en infrastructure/pdf.
type ReporteObraGenerator interface {
	GenerarReporteObra(
		ctx context.Context,
		obra *entity.Obra,
		ejecutora, supervisora *entity.Empresa,
		valorizaciones []entity.Valorizacion,
	) ([]byte, error)
}

// ReporteUseCase arma el reporte de valorizaciones de una obra.
type ReporteUseCase struct {
	obras          repository.ObraRepository
	empresas       repository.EmpresaRepository
	valorizaciones repository.ValorizacionRepository
	generator      ReporteObraGenerator
}

// NewReporteUseCase construye el caso de uso con sus puertos.
func NewReporteUseCase(
	obras repository.ObraRepository,
	empresas repository.EmpresaRepository,
	valorizaciones repository.ValorizacionRepository,
	generator ReporteObraGenerator,
) *ReporteUseCase {
	return &ReporteUseCase{obras: obras, empresas: empresas, valorizaciones: valorizaciones, generator: generator}
}

// GenerarPDF devuelve los bytes del reporte de la obra.
func (uc *ReporteUseCase) GenerarPDF(ctx context.Context, tipo entity.TipoObra, obraID string) ([]byte, error) {
	obra, err := uc.obras.GetByID(ctx, tipo, obraID)
	if err != nil {
		return nil, err
	}
	if obra == nil {
		return nil, domain.ErrNotFound
	}
	ejecutora, err := uc.empresas.GetByID(ctx, obra.EmpresaEjecutoraID)
	if err != nil {
		return nil, err
	}
	supervisora, err := uc.empresas.GetByID(ctx, obra.EmpresaSupervisoraID)
	if err != nil {
		return nil, err
	}
	valorizaciones, err := uc.valorizaciones.ListByObra(ctx, obraID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerarReporteObra(ctx, obra, ejecutora, supervisora, valorizaciones)
}
