package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valorizacion es el registro periódico de avance y monto de una obra.
// Una obra con valorizaciones registradas no puede eliminarse.
type Valorizacion struct {
	ID           string
	ObraID       string
	Numero       int // correlativo único por obra
	Periodo      string
	MontoBruto   decimal.Decimal
	AvanceFisico decimal.Decimal // porcentaje de avance físico acumulado
	Fecha        time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
