package dto

import "github.com/ENEASJO/control-valo-api/internal/domain/query"

// Response es el sobre único de todas las respuestas de la API.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describe un error para el cliente. Los clientes deben ramificar
// por Code, no por el texto de Message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ListParams es el filtro plano de los listados, leído del query string.
type ListParams struct {
	Search    string `query:"search"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

// Params convierte al tipo del compositor de consultas.
func (p ListParams) Params() query.Params {
	return query.Params{
		Search:    p.Search,
		Page:      p.Page,
		Limit:     p.Limit,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
	}
}
