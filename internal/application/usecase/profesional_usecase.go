package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/domain"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/repository"
	"github.com/ENEASJO/control-valo-api/internal/domain/valuation"
)

// ProfesionalUseCase opera el plantel de una obra fila a fila (sub-recurso
// directo). A diferencia del reemplazo de colección completa, cada operación
// revalida la suma agregada contra el resto del plantel vigente.
type ProfesionalUseCase struct {
	profesionales repository.ProfesionalRepository
	obras         repository.ObraRepository
}

// NewProfesionalUseCase construye el caso de uso con sus puertos.
func NewProfesionalUseCase(profesionales repository.ProfesionalRepository, obras repository.ObraRepository) *ProfesionalUseCase {
	return &ProfesionalUseCase{profesionales: profesionales, obras: obras}
}

// List devuelve el plantel de la obra.
func (uc *ProfesionalUseCase) List(ctx context.Context, tipo entity.TipoObra, obraID string) ([]dto.ProfesionalResponse, error) {
	if err := uc.verificarObra(ctx, tipo, obraID); err != nil {
		return nil, err
	}
	lista, err := uc.profesionales.ListByObra(ctx, obraID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfesionalResponse, 0, len(lista))
	for i := range lista {
		out = append(out, *dto.FromProfesional(&lista[i]))
	}
	return out, nil
}

// Create agrega un profesional al plantel si la suma resultante no excede 100.
func (uc *ProfesionalUseCase) Create(ctx context.Context, tipo entity.TipoObra, obraID string, in dto.CreateProfesionalRequest) (*dto.ProfesionalResponse, error) {
	if err := uc.verificarObra(ctx, tipo, obraID); err != nil {
		return nil, err
	}
	actuales, err := uc.profesionales.ListByObra(ctx, obraID)
	if err != nil {
		return nil, err
	}
	valores := make([]float64, 0, len(actuales)+1)
	for _, p := range actuales {
		valores = append(valores, p.PorcentajeParticipacion)
	}
	valores = append(valores, in.PorcentajeParticipacion)
	if err := valuation.Validar(valores); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Profesional{
		ID:                      uuid.New().String(),
		ObraID:                  obraID,
		NombreCompleto:          in.NombreCompleto,
		Cargo:                   in.Cargo,
		PorcentajeParticipacion: in.PorcentajeParticipacion,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := uc.profesionales.Create(ctx, p); err != nil {
		return nil, err
	}
	return dto.FromProfesional(p), nil
}

// Update modifica un profesional del plantel revalidando la suma agregada
// con el nuevo porcentaje en lugar del anterior.
func (uc *ProfesionalUseCase) Update(ctx context.Context, tipo entity.TipoObra, obraID, profID string, in dto.UpdateProfesionalRequest) (*dto.ProfesionalResponse, error) {
	if err := uc.verificarObra(ctx, tipo, obraID); err != nil {
		return nil, err
	}
	p, err := uc.profesionalDeObra(ctx, obraID, profID)
	if err != nil {
		return nil, err
	}

	if in.PorcentajeParticipacion != nil {
		actuales, err := uc.profesionales.ListByObra(ctx, obraID)
		if err != nil {
			return nil, err
		}
		valores := make([]float64, 0, len(actuales))
		for _, otro := range actuales {
			if otro.ID == profID {
				continue
			}
			valores = append(valores, otro.PorcentajeParticipacion)
		}
		valores = append(valores, *in.PorcentajeParticipacion)
		if err := valuation.Validar(valores); err != nil {
			return nil, err
		}
		p.PorcentajeParticipacion = *in.PorcentajeParticipacion
	}
	if in.NombreCompleto != nil {
		p.NombreCompleto = *in.NombreCompleto
	}
	if in.Cargo != nil {
		p.Cargo = *in.Cargo
	}
	p.UpdatedAt = time.Now()

	if err := uc.profesionales.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.FromProfesional(p), nil
}

// Delete quita un profesional del plantel.
func (uc *ProfesionalUseCase) Delete(ctx context.Context, tipo entity.TipoObra, obraID, profID string) error {
	if err := uc.verificarObra(ctx, tipo, obraID); err != nil {
		return err
	}
	if _, err := uc.profesionalDeObra(ctx, obraID, profID); err != nil {
		return err
	}
	return uc.profesionales.Delete(ctx, profID)
}

func (uc *ProfesionalUseCase) verificarObra(ctx context.Context, tipo entity.TipoObra, obraID string) error {
	o, err := uc.obras.GetByID(ctx, tipo, obraID)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *ProfesionalUseCase) profesionalDeObra(ctx context.Context, obraID, profID string) (*entity.Profesional, error) {
	p, err := uc.profesionales.GetByID(ctx, profID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ObraID != obraID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
