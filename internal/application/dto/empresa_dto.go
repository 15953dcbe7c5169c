package dto

import (
	"time"

	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/query"
)

// IntegranteRequest es un integrante de consorcio dentro del payload de una
// empresa. Sin id: los ids los asigna el servidor.
type IntegranteRequest struct {
	Nombre                  string  `json:"nombre" validate:"required,min=1,max=200"`
	Ruc                     string  `json:"ruc" validate:"required,len=11,numeric"`
	PorcentajeParticipacion float64 `json:"porcentajeParticipacion"`
}

// CreateEmpresaRequest entrada para crear una empresa.
type CreateEmpresaRequest struct {
	Nombre               string              `json:"nombre" validate:"required,min=1,max=200"`
	Ruc                  string              `json:"ruc" validate:"required,len=11,numeric"`
	Telefono             *string             `json:"telefono" validate:"omitempty,max=20"`
	EsConsorcio          bool                `json:"esConsorcio"`
	IntegrantesConsorcio []IntegranteRequest `json:"integrantesConsorcio" validate:"omitempty,dive"`
}

// UpdateEmpresaRequest entrada para actualizar una empresa: todos los campos
// opcionales. IntegrantesConsorcio distingue tres estados por el puntero:
// nil = no tocar los integrantes, lista vacía = eliminarlos todos,
// lista con elementos = reemplazo completo.
type UpdateEmpresaRequest struct {
	Nombre               *string              `json:"nombre" validate:"omitempty,min=1,max=200"`
	Ruc                  *string              `json:"ruc" validate:"omitempty,len=11,numeric"`
	Telefono             *string              `json:"telefono" validate:"omitempty,max=20"`
	EsConsorcio          *bool                `json:"esConsorcio"`
	IntegrantesConsorcio *[]IntegranteRequest `json:"integrantesConsorcio" validate:"omitempty,dive"`
}

// IntegranteResponse salida de un integrante de consorcio.
type IntegranteResponse struct {
	ID                      string    `json:"id"`
	EmpresaID               string    `json:"empresaId"`
	Nombre                  string    `json:"nombre"`
	Ruc                     string    `json:"ruc"`
	PorcentajeParticipacion float64   `json:"porcentajeParticipacion"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// EmpresaResponse salida de una empresa con sus integrantes.
type EmpresaResponse struct {
	ID                   string               `json:"id"`
	Nombre               string               `json:"nombre"`
	Ruc                  string               `json:"ruc"`
	Telefono             *string              `json:"telefono"`
	EsConsorcio          bool                 `json:"esConsorcio"`
	IntegrantesConsorcio []IntegranteResponse `json:"integrantesConsorcio"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// EmpresaListResponse listado paginado de empresas.
type EmpresaListResponse struct {
	Data       []EmpresaResponse `json:"data"`
	Pagination query.Pagination  `json:"pagination"`
}

// FromEmpresa arma la respuesta a partir de la entidad.
func FromEmpresa(e *entity.Empresa) *EmpresaResponse {
	if e == nil {
		return nil
	}
	integrantes := make([]IntegranteResponse, 0, len(e.Integrantes))
	for _, i := range e.Integrantes {
		integrantes = append(integrantes, IntegranteResponse{
			ID:                      i.ID,
			EmpresaID:               i.EmpresaID,
			Nombre:                  i.Nombre,
			Ruc:                     i.RUC,
			PorcentajeParticipacion: i.PorcentajeParticipacion,
			CreatedAt:               i.CreatedAt,
			UpdatedAt:               i.UpdatedAt,
		})
	}
	var telefono *string
	if e.Telefono != "" {
		telefono = &e.Telefono
	}
	return &EmpresaResponse{
		ID:                   e.ID,
		Nombre:               e.Nombre,
		Ruc:                  e.RUC,
		Telefono:             telefono,
		EsConsorcio:          e.EsConsorcio,
		IntegrantesConsorcio: integrantes,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}
