package domain

import (
	"math"

	"github.com/montanaflynn/stats"
)

// TeamStrengths mapea equipo -> fuerza escalar en [0.1, 0.9] con media ~0.5.
// Un mapa vacío significa "sin señal de skill": el simulador usa entonces
// las tasas globales de la temporada para todos los partidos por igual.
type TeamStrengths map[string]float64

// Get devuelve la fuerza del equipo o 0.5 (neutral) si no hay entrada.
func (ts TeamStrengths) Get(team string) float64 {
	if v, ok := ts[team]; ok {
		return v
	}
	return 0.5
}

// Variance devuelve la varianza poblacional de las fuerzas, una medida de la
// desigualdad inicial del roster. 0 para mapas vacíos.
func (ts TeamStrengths) Variance() float64 {
	if len(ts) == 0 {
		return 0
	}
	vals := make([]float64, 0, len(ts))
	for _, v := range ts {
		vals = append(vals, v)
	}
	variance, err := stats.PopulationVariance(vals)
	if err != nil {
		return 0
	}
	return variance
}

// Normalize traslada la media a 0.5 y, si algún valor queda fuera de
// [0.1, 0.9], comprime afinmente alrededor de la media hasta que el rango
// quepa. La compresión centrada conserva la media exacta en 0.5. Un roster
// uniforme queda entero en 0.5. Muta el mapa in place y lo devuelve para
// encadenar.
func (ts TeamStrengths) Normalize() TeamStrengths {
	if len(ts) == 0 {
		return ts
	}

	var sum float64
	for _, v := range ts {
		sum += v
	}
	shift := 0.5 - sum/float64(len(ts))

	maxDev := 0.0
	for k, v := range ts {
		v += shift
		ts[k] = v
		if dev := math.Abs(v - 0.5); dev > maxDev {
			maxDev = dev
		}
	}

	if maxDev == 0 {
		for k := range ts {
			ts[k] = 0.5
		}
		return ts
	}
	if maxDev > 0.4 {
		scale := 0.4 / maxDev
		for k, v := range ts {
			ts[k] = 0.5 + scale*(v-0.5)
		}
	}
	return ts
}
