// Package valuation contiene las reglas puras de porcentajes de participación.
// Se usan tanto a nivel de campo (un integrante nuevo) como al enviar el
// formulario completo (toda la lista).
package valuation

import "fmt"

// Códigos de violación de las reglas de porcentajes.
const (
	CodigoFueraDeRango     = "OUT_OF_RANGE"          // algún valor < 0 o > 100
	CodigoSumaExcede       = "SUM_EXCEEDS_100"       // la suma de la lista > 100
	CodigoRequiereAlMenos1 = "REQUIRES_AT_LEAST_ONE" // lista vacía donde se exige al menos un elemento
)

// ErrorPorcentaje describe la regla violada. Implementa error para poder
// propagarse por los casos de uso y traducirse a VALIDATION_ERROR en HTTP.
type ErrorPorcentaje struct {
	Codigo string
	Indice int     // posición del valor fuera de rango; -1 si no aplica
	Valor  float64 // valor ofensor cuando Codigo == OUT_OF_RANGE
	Suma   float64 // suma total cuando Codigo == SUM_EXCEEDS_100
}

func (e *ErrorPorcentaje) Error() string {
	switch e.Codigo {
	case CodigoFueraDeRango:
		return fmt.Sprintf("porcentaje fuera de rango [0,100]: %.2f (posición %d)", e.Valor, e.Indice)
	case CodigoSumaExcede:
		return fmt.Sprintf("la suma de porcentajes excede 100: %.2f", e.Suma)
	case CodigoRequiereAlMenos1:
		return "se requiere al menos un elemento en la lista"
	}
	return "porcentajes inválidos"
}

// Validar comprueba cada valor en [0,100] y que la suma no exceda 100.
// Suma en punto flotante, sin tolerancia de redondeo: exactamente 100 es
// válido, cualquier valor mayor no. Una lista vacía suma 0 y pasa.
// Devuelve nil si todo es válido.
func Validar(porcentajes []float64) *ErrorPorcentaje {
	var suma float64
	for i, p := range porcentajes {
		if p < 0 || p > 100 {
			return &ErrorPorcentaje{Codigo: CodigoFueraDeRango, Indice: i, Valor: p}
		}
		suma += p
	}
	if suma > 100 {
		return &ErrorPorcentaje{Codigo: CodigoSumaExcede, Indice: -1, Suma: suma}
	}
	return nil
}

// ValidarRequerido aplica Validar y además exige que la lista no esté vacía
// (profesionales de una obra, integrantes cuando la empresa es consorcio).
func ValidarRequerido(porcentajes []float64) *ErrorPorcentaje {
	if len(porcentajes) == 0 {
		return &ErrorPorcentaje{Codigo: CodigoRequiereAlMenos1, Indice: -1}
	}
	return Validar(porcentajes)
}
