package dto

import (
	"fmt"
	"time"

	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/query"
)

// fechaLayout es el formato de fecha del frontend (YYYY-MM-DD).
const fechaLayout = "2006-01-02"

// ParseFecha acepta la fecha del formulario (YYYY-MM-DD) o RFC3339.
func ParseFecha(s string) (time.Time, error) {
	if t, err := time.Parse(fechaLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q (se espera YYYY-MM-DD)", s)
	}
	return t, nil
}

// ProfesionalRequest es un profesional dentro del payload de una obra.
type ProfesionalRequest struct {
	NombreCompleto          string  `json:"nombreCompleto" validate:"required,min=1,max=200"`
	Cargo                   string  `json:"cargo" validate:"required,min=1,max=150"`
	PorcentajeParticipacion float64 `json:"porcentajeParticipacion"`
}

// CreateObraRequest entrada para crear una obra (de ejecución o supervisión;
// la variante la fija la ruta, no el cuerpo). Requiere al menos un profesional.
type CreateObraRequest struct {
	NombreObra           string               `json:"nombreObra" validate:"required,min=1,max=300"`
	NumeroContrato       string               `json:"numeroContrato" validate:"required,min=1,max=100"`
	NumeroExpediente     string               `json:"numeroExpediente" validate:"required,min=1,max=100"`
	PeriodoValorizacion  string               `json:"periodoValorizacion" validate:"required,max=100"`
	FechaInicio          string               `json:"fechaInicio" validate:"required"`
	PlazoEjecucionDias   int                  `json:"plazoEjecucionDias" validate:"required,min=1"`
	EmpresaEjecutoraID   string               `json:"empresaEjecutoraId" validate:"required,uuid4"`
	EmpresaSupervisoraID string               `json:"empresaSupervisoraId" validate:"required,uuid4"`
	Profesionales        []ProfesionalRequest `json:"profesionales" validate:"required,min=1,dive"`
}

// UpdateObraRequest entrada de actualización: todo opcional. Profesionales
// con la misma semántica de puntero que los integrantes de consorcio
// (nil = no tocar, vacío = vaciar, lista = reemplazo completo).
type UpdateObraRequest struct {
	NombreObra           *string               `json:"nombreObra" validate:"omitempty,min=1,max=300"`
	NumeroContrato       *string               `json:"numeroContrato" validate:"omitempty,min=1,max=100"`
	NumeroExpediente     *string               `json:"numeroExpediente" validate:"omitempty,min=1,max=100"`
	PeriodoValorizacion  *string               `json:"periodoValorizacion" validate:"omitempty,max=100"`
	FechaInicio          *string               `json:"fechaInicio"`
	PlazoEjecucionDias   *int                  `json:"plazoEjecucionDias" validate:"omitempty,min=1"`
	EmpresaEjecutoraID   *string               `json:"empresaEjecutoraId" validate:"omitempty,uuid4"`
	EmpresaSupervisoraID *string               `json:"empresaSupervisoraId" validate:"omitempty,uuid4"`
	Profesionales        *[]ProfesionalRequest `json:"profesionales" validate:"omitempty,dive"`
}

// CreateProfesionalRequest alta directa de un profesional (sub-recurso).
type CreateProfesionalRequest struct {
	NombreCompleto          string  `json:"nombreCompleto" validate:"required,min=1,max=200"`
	Cargo                   string  `json:"cargo" validate:"required,min=1,max=150"`
	PorcentajeParticipacion float64 `json:"porcentajeParticipacion"`
}

// UpdateProfesionalRequest actualización de un profesional fila a fila.
type UpdateProfesionalRequest struct {
	NombreCompleto          *string  `json:"nombreCompleto" validate:"omitempty,min=1,max=200"`
	Cargo                   *string  `json:"cargo" validate:"omitempty,min=1,max=150"`
	PorcentajeParticipacion *float64 `json:"porcentajeParticipacion"`
}

// ProfesionalResponse salida de un profesional.
type ProfesionalResponse struct {
	ID                      string    `json:"id"`
	ObraID                  string    `json:"obraId"`
	NombreCompleto          string    `json:"nombreCompleto"`
	Cargo                   string    `json:"cargo"`
	PorcentajeParticipacion float64   `json:"porcentajeParticipacion"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// ObraResponse salida de una obra con su plantel.
type ObraResponse struct {
	ID                   string                `json:"id"`
	Tipo                 string                `json:"tipo"`
	NombreObra           string                `json:"nombreObra"`
	NumeroContrato       string                `json:"numeroContrato"`
	NumeroExpediente     string                `json:"numeroExpediente"`
	PeriodoValorizacion  string                `json:"periodoValorizacion"`
	FechaInicio          string                `json:"fechaInicio"`
	PlazoEjecucionDias   int                   `json:"plazoEjecucionDias"`
	EmpresaEjecutoraID   string                `json:"empresaEjecutoraId"`
	EmpresaSupervisoraID string                `json:"empresaSupervisoraId"`
	Profesionales        []ProfesionalResponse `json:"profesionales"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

// ObraListResponse listado paginado de obras.
type ObraListResponse struct {
	Data       []ObraResponse   `json:"data"`
	Pagination query.Pagination `json:"pagination"`
}

// FromProfesional arma la respuesta a partir de la entidad.
func FromProfesional(p *entity.Profesional) *ProfesionalResponse {
	if p == nil {
		return nil
	}
	return &ProfesionalResponse{
		ID:                      p.ID,
		ObraID:                  p.ObraID,
		NombreCompleto:          p.NombreCompleto,
		Cargo:                   p.Cargo,
		PorcentajeParticipacion: p.PorcentajeParticipacion,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

// FromObra arma la respuesta a partir de la entidad.
func FromObra(o *entity.Obra) *ObraResponse {
	if o == nil {
		return nil
	}
	profesionales := make([]ProfesionalResponse, 0, len(o.Profesionales))
	for i := range o.Profesionales {
		profesionales = append(profesionales, *FromProfesional(&o.Profesionales[i]))
	}
	return &ObraResponse{
		ID:                   o.ID,
		Tipo:                 string(o.Tipo),
		NombreObra:           o.Nombre,
		NumeroContrato:       o.NumeroContrato,
		NumeroExpediente:     o.NumeroExpediente,
		PeriodoValorizacion:  o.PeriodoValorizacion,
		FechaInicio:          o.FechaInicio.Format(fechaLayout),
		PlazoEjecucionDias:   o.PlazoEjecucionDias,
		EmpresaEjecutoraID:   o.EmpresaEjecutoraID,
		EmpresaSupervisoraID: o.EmpresaSupervisoraID,
		Profesionales:        profesionales,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}
