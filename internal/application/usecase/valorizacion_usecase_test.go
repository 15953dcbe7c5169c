package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/domain"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
)

func TestValorizacionCreate_OK(t *testing.T) {
	f := newFixture()
	o := seedObra(f, entity.TipoEjecucion, "C-001")

	out, err := f.valorizacionUC.Create(context.Background(), entity.TipoEjecucion, o.ID, dto.CreateValorizacionRequest{
		Numero:       1,
		Periodo:      "2026-08",
		MontoBruto:   decimal.RequireFromString("125000.50"),
		AvanceFisico: decimal.RequireFromString("35.25"),
		Fecha:        "2026-08-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Numero)
	assert.Equal(t, "125000.5", out.MontoBruto.String())
}

func TestValorizacionCreate_NumeroDuplicado(t *testing.T) {
	f := newFixture()
	o := seedObra(f, entity.TipoEjecucion, "C-001")
	f.valorizaciones.store["v1"] = &entity.Valorizacion{ID: "v1", ObraID: o.ID, Numero: 3}

	_, err := f.valorizacionUC.Create(context.Background(), entity.TipoEjecucion, o.ID, dto.CreateValorizacionRequest{
		Numero:       3,
		Periodo:      "2026-09",
		MontoBruto:   decimal.NewFromInt(1000),
		AvanceFisico: decimal.NewFromInt(10),
		Fecha:        "2026-09-30",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestValorizacionCreate_ObraInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.valorizacionUC.Create(context.Background(), entity.TipoEjecucion, uuid.New().String(), dto.CreateValorizacionRequest{
		Numero:       1,
		Periodo:      "2026-08",
		MontoBruto:   decimal.NewFromInt(1000),
		AvanceFisico: decimal.NewFromInt(10),
		Fecha:        "2026-08-31",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValorizacionCreate_FechaInvalida(t *testing.T) {
	f := newFixture()
	o := seedObra(f, entity.TipoEjecucion, "C-001")

	_, err := f.valorizacionUC.Create(context.Background(), entity.TipoEjecucion, o.ID, dto.CreateValorizacionRequest{
		Numero:       1,
		Periodo:      "2026-08",
		MontoBruto:   decimal.NewFromInt(1000),
		AvanceFisico: decimal.NewFromInt(10),
		Fecha:        "31/08/2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValorizacionCreate_MontoNegativo(t *testing.T) {
	f := newFixture()
	o := seedObra(f, entity.TipoEjecucion, "C-001")

	_, err := f.valorizacionUC.Create(context.Background(), entity.TipoEjecucion, o.ID, dto.CreateValorizacionRequest{
		Numero:       1,
		Periodo:      "2026-08",
		MontoBruto:   decimal.NewFromInt(-1000),
		AvanceFisico: decimal.NewFromInt(10),
		Fecha:        "2026-08-31",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.valorizaciones.store)
}

func TestValorizacionCreate_AvanceFueraDeRango(t *testing.T) {
	f := newFixture()
	o := seedObra(f, entity.TipoEjecucion, "C-001")

	// El avance físico es un porcentaje acumulado: fuera de 0–100 se rechaza
	// antes de llegar al datastore.
	for _, avance := range []string{"-0.01", "100.01"} {
		_, err := f.valorizacionUC.Create(context.Background(), entity.TipoEjecucion, o.ID, dto.CreateValorizacionRequest{
			Numero:       1,
			Periodo:      "2026-08",
			MontoBruto:   decimal.NewFromInt(1000),
			AvanceFisico: decimal.RequireFromString(avance),
			Fecha:        "2026-08-31",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "avance %s", avance)
	}
	assert.Empty(t, f.valorizaciones.store)
}

func TestValorizacionDelete_DeOtraObra(t *testing.T) {
	f := newFixture()
	o := seedObra(f, entity.TipoEjecucion, "C-001")
	otra := seedObra(f, entity.TipoEjecucion, "C-002")
	f.valorizaciones.store["v1"] = &entity.Valorizacion{ID: "v1", ObraID: otra.ID, Numero: 1}

	err := f.valorizacionUC.Delete(context.Background(), entity.TipoEjecucion, o.ID, "v1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, f.valorizaciones.store, "v1")
}

func TestValorizacionList_ObraInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.valorizacionUC.List(context.Background(), entity.TipoEjecucion, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
