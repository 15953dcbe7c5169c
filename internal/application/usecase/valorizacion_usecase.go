package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/domain"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/repository"
)

// avanceMaximo acota el avance físico acumulado (porcentaje).
var avanceMaximo = decimal.NewFromInt(100)

// ValorizacionUseCase administra los registros periódicos de valorización
// de una obra.
type ValorizacionUseCase struct {
	valorizaciones repository.ValorizacionRepository
	obras          repository.ObraRepository
}

// NewValorizacionUseCase construye el caso de uso con sus puertos.
func NewValorizacionUseCase(valorizaciones repository.ValorizacionRepository, obras repository.ObraRepository) *ValorizacionUseCase {
	return &ValorizacionUseCase{valorizaciones: valorizaciones, obras: obras}
}

// List devuelve las valorizaciones de la obra ordenadas por número.
func (uc *ValorizacionUseCase) List(ctx context.Context, tipo entity.TipoObra, obraID string) ([]dto.ValorizacionResponse, error) {
	if err := uc.verificarObra(ctx, tipo, obraID); err != nil {
		return nil, err
	}
	lista, err := uc.valorizaciones.ListByObra(ctx, obraID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ValorizacionResponse, 0, len(lista))
	for i := range lista {
		out = append(out, *dto.FromValorizacion(&lista[i]))
	}
	return out, nil
}

// Create registra una valorización. El número es correlativo único por obra;
// un duplicado (pre-chequeo o carrera contra el constraint) devuelve
// domain.ErrDuplicate.
func (uc *ValorizacionUseCase) Create(ctx context.Context, tipo entity.TipoObra, obraID string, in dto.CreateValorizacionRequest) (*dto.ValorizacionResponse, error) {
	if err := uc.verificarObra(ctx, tipo, obraID); err != nil {
		return nil, err
	}
	fecha, err := dto.ParseFecha(in.Fecha)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	if in.MontoBruto.IsNegative() {
		return nil, fmt.Errorf("%w: el monto bruto no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.AvanceFisico.IsNegative() || in.AvanceFisico.GreaterThan(avanceMaximo) {
		return nil, fmt.Errorf("%w: el avance físico debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	existente, err := uc.valorizaciones.GetByObraAndNumero(ctx, obraID, in.Numero)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	v := &entity.Valorizacion{
		ID:           uuid.New().String(),
		ObraID:       obraID,
		Numero:       in.Numero,
		Periodo:      in.Periodo,
		MontoBruto:   in.MontoBruto,
		AvanceFisico: in.AvanceFisico,
		Fecha:        fecha,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.valorizaciones.Create(ctx, v); err != nil {
		return nil, err
	}
	return dto.FromValorizacion(v), nil
}

// Delete elimina una valorización de la obra.
func (uc *ValorizacionUseCase) Delete(ctx context.Context, tipo entity.TipoObra, obraID, valID string) error {
	if err := uc.verificarObra(ctx, tipo, obraID); err != nil {
		return err
	}
	v, err := uc.valorizaciones.GetByID(ctx, valID)
	if err != nil {
		return err
	}
	if v == nil || v.ObraID != obraID {
		return domain.ErrNotFound
	}
	return uc.valorizaciones.Delete(ctx, valID)
}

func (uc *ValorizacionUseCase) verificarObra(ctx context.Context, tipo entity.TipoObra, obraID string) error {
	o, err := uc.obras.GetByID(ctx, tipo, obraID)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	return nil
}
