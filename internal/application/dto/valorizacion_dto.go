package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
)

// CreateValorizacionRequest alta de una valorización de obra.
type CreateValorizacionRequest struct {
	Numero       int             `json:"numero" validate:"required,min=1"`
	Periodo      string          `json:"periodo" validate:"required,max=100"`
	MontoBruto   decimal.Decimal `json:"montoBruto"`
	AvanceFisico decimal.Decimal `json:"avanceFisico"`
	Fecha        string          `json:"fecha" validate:"required"`
}

// ValorizacionResponse salida de una valorización.
type ValorizacionResponse struct {
	ID           string          `json:"id"`
	ObraID       string          `json:"obraId"`
	Numero       int             `json:"numero"`
	Periodo      string          `json:"periodo"`
	MontoBruto   decimal.Decimal `json:"montoBruto"`
	AvanceFisico decimal.Decimal `json:"avanceFisico"`
	Fecha        string          `json:"fecha"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// FromValorizacion arma la respuesta a partir de la entidad.
func FromValorizacion(v *entity.Valorizacion) *ValorizacionResponse {
	if v == nil {
		return nil
	}
	return &ValorizacionResponse{
		ID:           v.ID,
		ObraID:       v.ObraID,
		Numero:       v.Numero,
		Periodo:      v.Periodo,
		MontoBruto:   v.MontoBruto,
		AvanceFisico: v.AvanceFisico,
		Fecha:        v.Fecha.Format(fechaLayout),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
