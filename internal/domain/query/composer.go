// Package query compone filtros y paginación de los listados: traduce el
// objeto plano de la petición (search, page, limit, sortBy, sortOrder) a una
// forma de consulta acotada y determinista.
package query

// Límites y valores por defecto de paginación.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params es el filtro plano tal como llega en el query string.
type Params struct {
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Config fija por recurso las columnas ordenables y sus valores por defecto.
type Config struct {
	// SortColumns mapea el nombre de campo expuesto en la API a la columna
	// SQL real. Solo lo listado aquí puede ordenarse (allow-list).
	SortColumns  map[string]string
	DefaultSort  string // clave de SortColumns
	DefaultOrder string // "asc" | "desc"
}

// Shape es el descriptor acotado listo para la capa de persistencia.
type Shape struct {
	Search  string
	Offset  int
	Limit   int
	OrderBy string // columna SQL ya validada contra la allow-list
	Order   string // "ASC" | "DESC"
}

// Compose normaliza los parámetros: página 1-based con default 1, límite con
// default 10 y tope 100, orden solo sobre columnas de la allow-list. No hay
// recorte de página: una página más allá del total produce un offset que el
// datastore resuelve como lista vacía.
func (c Config) Compose(p Params) Shape {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortKey := p.SortBy
	column, ok := c.SortColumns[sortKey]
	if !ok {
		column = c.SortColumns[c.DefaultSort]
	}

	order := "ASC"
	switch p.SortOrder {
	case "asc":
		order = "ASC"
	case "desc":
		order = "DESC"
	default:
		if c.DefaultOrder == "desc" {
			order = "DESC"
		}
	}

	return Shape{
		Search:  p.Search,
		Offset:  (page - 1) * limit,
		Limit:   limit,
		OrderBy: column,
		Order:   order,
	}
}

// Pagination son los metadatos que acompañan a todo listado.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination calcula los metadatos a partir del total real del filtro,
// independiente de offset/limit. TotalPages = ceil(total/limit).
func NewPagination(p Params, total int) Pagination {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	totalPages := (total + limit - 1) / limit
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
