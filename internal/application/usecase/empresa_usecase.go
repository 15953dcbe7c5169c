package usecase

import (
	"context"
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

// empresaQueryConfig: columnas ordenables del listado de empresas.
var empresaQueryConfig = query.Config{
	SortColumns: map[string]string{
		"nombre":    "nombre",
		"ruc":       "ruc",
		"createdAt": "created_at",
	},
	DefaultSort:  "nombre",
	DefaultOrder: "asc",
}

// EmpresaUseCase aplica las reglas de negocio de empresas y consorcios.
type EmpresaUseCase struct {
	empresas repository.EmpresaRepository
	obras    repository.ObraRepository
	tx       TxRunner
}

// NewEmpresaUseCase construye el caso de uso con sus puertos.
func NewEmpresaUseCase(empresas repository.EmpresaRepository, obras repository.ObraRepository, tx TxRunner) *EmpresaUseCase {
	return &EmpresaUseCase{empresas: empresas, obras: obras, tx: tx}
}

// List lista empresas con filtro, orden y paginación.
func (uc *EmpresaUseCase) List(ctx context.Context, p dto.ListParams) (*dto.EmpresaListResponse, error) {
	shape := empresaQueryConfig.Compose(p.Params())

	items, err := uc.empresas.List(ctx, shape)
	if err != nil {
		return nil, err
	}
	total, err := uc.empresas.Count(ctx, shape.Search)
	if err != nil {
		return nil, err
	}

	data := make([]dto.EmpresaResponse, 0, len(items))
	for _, e := range items {
		data = append(data, *dto.FromEmpresa(e))
	}
	return &dto.EmpresaListResponse{
		Data:       data,
		Pagination: query.NewPagination(p.Params(), total),
	}, nil
}

// GetByID obtiene una empresa con sus integrantes.
func (uc *EmpresaUseCase) GetByID(ctx context.Context, id string) (*dto.EmpresaResponse, error) {
	e, err := uc.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromEmpresa(e), nil
}

// Create crea una empresa y, si es consorcio, sus integrantes en la misma
// transacción. Devuelve domain.ErrDuplicate si el RUC ya existe.
func (uc *EmpresaUseCase) Create(ctx context.Context, in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	integrantes := in.IntegrantesConsorcio
	if !in.EsConsorcio {
		// Una empresa individual no lleva integrantes; se descarta lo enviado.
		integrantes = nil
	} else {
		if err := valuation.ValidarRequerido(porcentajesDeIntegrantes(integrantes)); err != nil {
			return nil, err
		}
	}

	// Pre-chequeo amistoso; la carrera la cubre el constraint único (23505).
	existing, err := uc.empresas.GetByRUC(ctx, in.Ruc)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	e := &entity.Empresa{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		RUC:         in.Ruc,
		EsConsorcio: in.EsConsorcio,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Telefono != nil {
		e.Telefono = *in.Telefono
	}
	e.Integrantes = buildIntegrantes(e.ID, integrantes, now)

	err = uc.tx.Run(ctx, func(empresas repository.EmpresaRepository, _ repository.ObraRepository) error {
		if err := empresas.Create(ctx, e); err != nil {
			return err
		}
		if len(e.Integrantes) > 0 {
			return empresas.ReplaceIntegrantes(ctx, e.ID, e.Integrantes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.FromEmpresa(e), nil
}

// Update actualiza los campos presentes y, solo si el payload trae la lista
// de integrantes, reemplaza la colección completa dentro de la transacción.
// Lista vacía explícita = eliminar todos los integrantes.
func (uc *EmpresaUseCase) Update(ctx context.Context, id string, in dto.UpdateEmpresaRequest) (*dto.EmpresaResponse, error) {
	e, err := uc.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}

	if in.Ruc != nil && *in.Ruc != e.RUC {
		otra, err := uc.empresas.GetByRUC(ctx, *in.Ruc)
		if err != nil {
			return nil, err
		}
		if otra != nil {
			return nil, domain.ErrDuplicate
		}
		e.RUC = *in.Ruc
	}
	if in.Nombre != nil {
		e.Nombre = *in.Nombre
	}
	if in.Telefono != nil {
		e.Telefono = *in.Telefono
	}
	if in.EsConsorcio != nil {
		e.EsConsorcio = *in.EsConsorcio
	}
	e.UpdatedAt = time.Now()

	var nuevos []entity.IntegranteConsorcio
	reemplazar := in.IntegrantesConsorcio != nil
	if reemplazar {
		if e.EsConsorcio {
			lista := *in.IntegrantesConsorcio
			if err := valuation.ValidarRequerido(porcentajesDeIntegrantes(lista)); err != nil {
				return nil, err
			}
			nuevos = buildIntegrantes(e.ID, lista, e.UpdatedAt)
		}
		// Una empresa individual no lleva integrantes: igual que en el alta,
		// lo enviado se descarta y la colección queda vacía.
	}

	err = uc.tx.Run(ctx, func(empresas repository.EmpresaRepository, _ repository.ObraRepository) error {
		if err := empresas.Update(ctx, e); err != nil {
			return err
		}
		if reemplazar {
			return empresas.ReplaceIntegrantes(ctx, e.ID, nuevos)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Relectura para devolver el registro hidratado post-transacción.
	actualizada, err := uc.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromEmpresa(actualizada), nil
}

// Delete elimina una empresa. Bloqueado mientras alguna obra la referencie
// como ejecutora o supervisora.
func (uc *EmpresaUseCase) Delete(ctx context.Context, id string) error {
	e, err := uc.empresas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.obras.CountByEmpresa(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w (%d obras)", domain.ErrEmpresaReferenced, refs)
	}
	return uc.tx.Run(ctx, func(empresas repository.EmpresaRepository, _ repository.ObraRepository) error {
		return empresas.Delete(ctx, id)
	})
}

func porcentajesDeIntegrantes(integrantes []dto.IntegranteRequest) []float64 {
	valores := make([]float64, 0, len(integrantes))
	for _, i := range integrantes {
		valores = append(valores, i.PorcentajeParticipacion)
	}
	return valores
}

func buildIntegrantes(empresaID string, in []dto.IntegranteRequest, now time.Time) []entity.IntegranteConsorcio {
	integrantes := make([]entity.IntegranteConsorcio, 0, len(in))
	for _, i := range in {
		integrantes = append(integrantes, entity.IntegranteConsorcio{
			ID:                      uuid.New().String(),
			EmpresaID:               empresaID,
			Nombre:                  i.Nombre,
			RUC:                     i.Ruc,
			PorcentajeParticipacion: i.PorcentajeParticipacion,
			CreatedAt:               now,
			UpdatedAt:               now,
		})
	}
	return integrantes
}
