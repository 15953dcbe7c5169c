package entity

import "time"

// Empresa representa una empresa contratista, que puede ser un consorcio
// conformado por varias empresas integrantes.
type Empresa struct {
	ID          string
	Nombre      string
	RUC         string // RUC peruano de 11 dígitos
	Telefono    string // opcional
	EsConsorcio bool
	Integrantes []IntegranteConsorcio // solo cuando EsConsorcio
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IntegranteConsorcio es una empresa miembro de un consorcio. Su ciclo de vida
// pertenece por completo a la Empresa dueña: se crea, reemplaza o elimina solo
// como parte de una escritura sobre la Empresa.
type IntegranteConsorcio struct {
	ID                      string
	EmpresaID               string
	Nombre                  string
	RUC                     string
	PorcentajeParticipacion float64 // 0–100
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
