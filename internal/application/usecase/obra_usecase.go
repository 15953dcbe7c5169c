package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/domain"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/query"
	"github.com/ENEASJO/control-valo-api/internal/domain/repository"
	"github.com/ENEASJO/control-valo-api/internal/domain/valuation"
)

// obraQueryConfig: columnas ordenables del listado de obras.
var obraQueryConfig = query.Config{
	SortColumns: map[string]string{
		"nombreObra":     "nombre",
		"numeroContrato": "numero_contrato",
		"fechaInicio":    "fecha_inicio",
		"createdAt":      "created_at",
	},
	DefaultSort:  "createdAt",
	DefaultOrder: "desc",
}

// ObraUseCase aplica las reglas de negocio de obras. Una sola implementación
// atiende ejecución y supervisión: los métodos reciben el tipo como etiqueta.
type ObraUseCase struct {
	obras          repository.ObraRepository
	empresas       repository.EmpresaRepository
	valorizaciones repository.ValorizacionRepository
	tx             TxRunner
}

// NewObraUseCase construye el caso de uso con sus puertos.
func NewObraUseCase(
	obras repository.ObraRepository,
	empresas repository.EmpresaRepository,
	valorizaciones repository.ValorizacionRepository,
	tx TxRunner,
) *ObraUseCase {
	return &ObraUseCase{obras: obras, empresas: empresas, valorizaciones: valorizaciones, tx: tx}
}

// List lista obras de la variante con filtro, orden y paginación.
func (uc *ObraUseCase) List(ctx context.Context, tipo entity.TipoObra, p dto.ListParams) (*dto.ObraListResponse, error) {
	shape := obraQueryConfig.Compose(p.Params())

	items, err := uc.obras.List(ctx, tipo, shape)
	if err != nil {
		return nil, err
	}
	total, err := uc.obras.Count(ctx, tipo, shape.Search)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ObraResponse, 0, len(items))
	for _, o := range items {
		data = append(data, *dto.FromObra(o))
	}
	return &dto.ObraListResponse{
		Data:       data,
		Pagination: query.NewPagination(p.Params(), total),
	}, nil
}

// GetByID obtiene una obra de la variante con su plantel.
func (uc *ObraUseCase) GetByID(ctx context.Context, tipo entity.TipoObra, id string) (*dto.ObraResponse, error) {
	o, err := uc.obras.GetByID(ctx, tipo, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromObra(o), nil
}

// Create crea una obra con su plantel en la misma transacción. Exige al menos
// un profesional y suma de porcentajes ≤ 100. Devuelve domain.ErrObraExists
// si el número de contrato ya está registrado en la variante.
func (uc *ObraUseCase) Create(ctx context.Context, tipo entity.TipoObra, in dto.CreateObraRequest) (*dto.ObraResponse, error) {
	if err := valuation.ValidarRequerido(porcentajesDeProfesionales(in.Profesionales)); err != nil {
		return nil, err
	}
	fechaInicio, err := dto.ParseFecha(in.FechaInicio)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	if err := uc.verificarEmpresas(ctx, in.EmpresaEjecutoraID, in.EmpresaSupervisoraID); err != nil {
		return nil, err
	}

	existente, err := uc.obras.GetByNumeroContrato(ctx, tipo, in.NumeroContrato)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrObraExists
	}

	now := time.Now()
	o := &entity.Obra{
		ID:                   uuid.New().String(),
		Tipo:                 tipo,
		Nombre:               in.NombreObra,
		NumeroContrato:       in.NumeroContrato,
		NumeroExpediente:     in.NumeroExpediente,
		PeriodoValorizacion:  in.PeriodoValorizacion,
		FechaInicio:          fechaInicio,
		PlazoEjecucionDias:   in.PlazoEjecucionDias,
		EmpresaEjecutoraID:   in.EmpresaEjecutoraID,
		EmpresaSupervisoraID: in.EmpresaSupervisoraID,
		Profesionales:        buildProfesionales("", in.Profesionales, now),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for i := range o.Profesionales {
		o.Profesionales[i].ObraID = o.ID
	}

	err = uc.tx.Run(ctx, func(_ repository.EmpresaRepository, obras repository.ObraRepository) error {
		if err := obras.Create(ctx, o); err != nil {
			return err
		}
		return obras.ReplaceProfesionales(ctx, o.ID, o.Profesionales)
	})
	if err != nil {
		// Carrera perdida contra otro create con el mismo número de contrato.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrObraExists
		}
		return nil, err
	}
	return dto.FromObra(o), nil
}

// Update actualiza los campos presentes; si el payload trae la lista de
// profesionales, la colección se reemplaza completa en la transacción.
func (uc *ObraUseCase) Update(ctx context.Context, tipo entity.TipoObra, id string, in dto.UpdateObraRequest) (*dto.ObraResponse, error) {
	o, err := uc.obras.GetByID(ctx, tipo, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}

	if in.NumeroContrato != nil && *in.NumeroContrato != o.NumeroContrato {
		otra, err := uc.obras.GetByNumeroContrato(ctx, tipo, *in.NumeroContrato)
		if err != nil {
			return nil, err
		}
		if otra != nil {
			return nil, domain.ErrObraExists
		}
		o.NumeroContrato = *in.NumeroContrato
	}
	if in.NombreObra != nil {
		o.Nombre = *in.NombreObra
	}
	if in.NumeroExpediente != nil {
		o.NumeroExpediente = *in.NumeroExpediente
	}
	if in.PeriodoValorizacion != nil {
		o.PeriodoValorizacion = *in.PeriodoValorizacion
	}
	if in.FechaInicio != nil {
		fecha, err := dto.ParseFecha(*in.FechaInicio)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
		}
		o.FechaInicio = fecha
	}
	if in.PlazoEjecucionDias != nil {
		o.PlazoEjecucionDias = *in.PlazoEjecucionDias
	}
	ejecutora, supervisora := o.EmpresaEjecutoraID, o.EmpresaSupervisoraID
	if in.EmpresaEjecutoraID != nil {
		ejecutora = *in.EmpresaEjecutoraID
	}
	if in.EmpresaSupervisoraID != nil {
		supervisora = *in.EmpresaSupervisoraID
	}
	if ejecutora != o.EmpresaEjecutoraID || supervisora != o.EmpresaSupervisoraID {
		if err := uc.verificarEmpresas(ctx, ejecutora, supervisora); err != nil {
			return nil, err
		}
		o.EmpresaEjecutoraID, o.EmpresaSupervisoraID = ejecutora, supervisora
	}
	o.UpdatedAt = time.Now()

	var nuevos []entity.Profesional
	reemplazar := in.Profesionales != nil
	if reemplazar {
		lista := *in.Profesionales
		if err := valuation.Validar(porcentajesDeProfesionales(lista)); err != nil {
			return nil, err
		}
		nuevos = buildProfesionales(o.ID, lista, o.UpdatedAt)
	}

	err = uc.tx.Run(ctx, func(_ repository.EmpresaRepository, obras repository.ObraRepository) error {
		if err := obras.Update(ctx, o); err != nil {
			return err
		}
		if reemplazar {
			return obras.ReplaceProfesionales(ctx, o.ID, nuevos)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrObraExists
		}
		return nil, err
	}

	actualizada, err := uc.obras.GetByID(ctx, tipo, id)
	if err != nil {
		return nil, err
	}
	return dto.FromObra(actualizada), nil
}

// Delete elimina una obra junto con su plantel. Bloqueado mientras existan
// valorizaciones registradas.
func (uc *ObraUseCase) Delete(ctx context.Context, tipo entity.TipoObra, id string) error {
	o, err := uc.obras.GetByID(ctx, tipo, id)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	deps, err := uc.valorizaciones.CountByObra(ctx, id)
	if err != nil {
		return err
	}
	if deps > 0 {
		return fmt.Errorf("%w (%d valorizaciones)", domain.ErrObraHasDependencies, deps)
	}
	return uc.tx.Run(ctx, func(_ repository.EmpresaRepository, obras repository.ObraRepository) error {
		return obras.Delete(ctx, id)
	})
}

func (uc *ObraUseCase) verificarEmpresas(ctx context.Context, ejecutoraID, supervisoraID string) error {
	ejecutora, err := uc.empresas.GetByID(ctx, ejecutoraID)
	if err != nil {
		return err
	}
	if ejecutora == nil {
		return fmt.Errorf("%w: la empresa ejecutora no existe", domain.ErrInvalidInput)
	}
	supervisora, err := uc.empresas.GetByID(ctx, supervisoraID)
	if err != nil {
		return err
	}
	if supervisora == nil {
		return fmt.Errorf("%w: la empresa supervisora no existe", domain.ErrInvalidInput)
	}
	return nil
}

func porcentajesDeProfesionales(profesionales []dto.ProfesionalRequest) []float64 {
	valores := make([]float64, 0, len(profesionales))
	for _, p := range profesionales {
		valores = append(valores, p.PorcentajeParticipacion)
	}
	return valores
}

func buildProfesionales(obraID string, in []dto.ProfesionalRequest, now time.Time) []entity.Profesional {
	profesionales := make([]entity.Profesional, 0, len(in))
	for _, p := range in {
		profesionales = append(profesionales, entity.Profesional{
			ID:                      uuid.New().String(),
			ObraID:                  obraID,
			NombreCompleto:          p.NombreCompleto,
			Cargo:                   p.Cargo,
			PorcentajeParticipacion: p.PorcentajeParticipacion,
			CreatedAt:               now,
			UpdatedAt:               now,
		})
	}
	return profesionales
}
