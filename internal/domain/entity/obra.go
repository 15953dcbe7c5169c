package entity

import "time"

// TipoObra distingue las dos variantes de obra. Un solo modelo y un solo
// servicio atienden ambas; el tipo solo cambia qué rol de empresa es el
// principal en cada vista.
type TipoObra string

const (
	TipoEjecucion   TipoObra = "EJECUCION"
	TipoSupervision TipoObra = "SUPERVISION"
)

// Valida informa si el tipo es uno de los dos conocidos.
func (t TipoObra) Valida() bool {
	return t == TipoEjecucion || t == TipoSupervision
}

// Obra representa una obra de construcción bajo control de valorizaciones.
type Obra struct {
	ID                   string
	Tipo                 TipoObra
	Nombre               string
	NumeroContrato       string
	NumeroExpediente     string
	PeriodoValorizacion  string
	FechaInicio          time.Time
	PlazoEjecucionDias   int
	EmpresaEjecutoraID   string
	EmpresaSupervisoraID string
	Profesionales        []Profesional
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Profesional es un miembro del plantel de una obra, con cargo y porcentaje
// de participación. Ciclo de vida propiedad de la Obra.
type Profesional struct {
	ID                      string
	ObraID                  string
	NombreCompleto          string
	Cargo                   string
	PorcentajeParticipacion float64 // 0–100
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
