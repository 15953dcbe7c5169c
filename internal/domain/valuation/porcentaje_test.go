package valuation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ENEASJO/control-valo-api/internal/domain/valuation"
)

func TestValidar_ListaValida(t *testing.T) {
	assert.Nil(t, valuation.Validar([]float64{30, 45.5, 24.5}))
}

// La suma exactamente igual a 100 es válida (frontera inclusiva).
func TestValidar_SumaExacta100EsValida(t *testing.T) {
	assert.Nil(t, valuation.Validar([]float64{60, 40}))
	assert.Nil(t, valuation.Validar([]float64{100}))
	assert.Nil(t, valuation.Validar([]float64{33.33, 33.33, 33.34}))
}

func TestValidar_SumaExcede100(t *testing.T) {
	err := valuation.Validar([]float64{60, 50})
	require.NotNil(t, err)
	assert.Equal(t, valuation.CodigoSumaExcede, err.Codigo)
	assert.InDelta(t, 110, err.Suma, 0.0001)
}

func TestValidar_ValorNegativo(t *testing.T) {
	err := valuation.Validar([]float64{50, -1})
	require.NotNil(t, err)
	assert.Equal(t, valuation.CodigoFueraDeRango, err.Codigo)
	assert.Equal(t, 1, err.Indice)
	assert.Equal(t, -1.0, err.Valor)
}

func TestValidar_ValorMayorA100(t *testing.T) {
	err := valuation.Validar([]float64{100.01})
	require.NotNil(t, err)
	assert.Equal(t, valuation.CodigoFueraDeRango, err.Codigo)
	assert.Equal(t, 0, err.Indice)
}

// El valor fuera de rango se reporta antes que la suma: 150 solo también
// excede 100 en suma, pero la regla por elemento gana.
func TestValidar_FueraDeRangoPrevaleceSobreSuma(t *testing.T) {
	err := valuation.Validar([]float64{150})
	require.NotNil(t, err)
	assert.Equal(t, valuation.CodigoFueraDeRango, err.Codigo)
}

// Una lista vacía suma 0 y pasa la regla agregada.
func TestValidar_ListaVaciaPasa(t *testing.T) {
	assert.Nil(t, valuation.Validar(nil))
	assert.Nil(t, valuation.Validar([]float64{}))
}

func TestValidarRequerido_ListaVaciaFalla(t *testing.T) {
	err := valuation.ValidarRequerido(nil)
	require.NotNil(t, err)
	assert.Equal(t, valuation.CodigoRequiereAlMenos1, err.Codigo)
}

func TestValidarRequerido_DelegaEnValidar(t *testing.T) {
	assert.Nil(t, valuation.ValidarRequerido([]float64{100}))

	err := valuation.ValidarRequerido([]float64{60, 50})
	require.NotNil(t, err)
	assert.Equal(t, valuation.CodigoSumaExcede, err.Codigo)
}

// Propiedad del contrato: inválido sí y solo sí hay un valor fuera de [0,100]
// o la suma es estrictamente mayor a 100.
func TestValidar_TablaDeCasos(t *testing.T) {
	casos := []struct {
		nombre  string
		valores []float64
		valido  bool
	}{
		{"un solo valor en cero", []float64{0}, true},
		{"ceros multiples", []float64{0, 0, 0}, true},
		{"suma 99.99", []float64{49.99, 50}, true},
		{"suma 100.01", []float64{50.01, 50}, false},
		{"negativo minimo", []float64{-0.01}, false},
		{"cien exacto individual", []float64{100}, true},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := valuation.Validar(c.valores)
			if c.valido {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
			}
		})
	}
}
