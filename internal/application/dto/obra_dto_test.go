package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
)

func TestParseFecha(t *testing.T) {
	casos := []struct {
		entrada  string
		ok       bool
		esperada time.Time
	}{
		{"2026-03-01", true, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2026-03-01T00:00:00Z", true, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"01/03/2026", false, time.Time{}},
		{"", false, time.Time{}},
		{"2026-13-45", false, time.Time{}},
	}
	for _, c := range casos {
		got, err := dto.ParseFecha(c.entrada)
		if !c.ok {
			assert.Error(t, err, "entrada %q", c.entrada)
			continue
		}
		require.NoError(t, err, "entrada %q", c.entrada)
		assert.True(t, got.Equal(c.esperada), "entrada %q: %v", c.entrada, got)
	}
}

func TestFromObra_FormateaFecha(t *testing.T) {
	o := &entity.Obra{
		ID:          "o1",
		Tipo:        entity.TipoSupervision,
		Nombre:      "Obra",
		FechaInicio: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	out := dto.FromObra(o)
	require.NotNil(t, out)
	assert.Equal(t, "2026-03-01", out.FechaInicio)
	assert.Equal(t, "SUPERVISION", out.Tipo)
	assert.NotNil(t, out.Profesionales, "plantel vacío serializa como [] y no como null")
}

func TestFromObra_Nil(t *testing.T) {
	assert.Nil(t, dto.FromObra(nil))
}
