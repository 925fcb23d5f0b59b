package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamStrengths_Get(t *testing.T) {
	ts := TeamStrengths{"A": 0.8}
	assert.Equal(t, 0.8, ts.Get("A"))
	assert.Equal(t, 0.5, ts.Get("desconocido"))
}

func TestTeamStrengths_Normalize(t *testing.T) {
	ts := TeamStrengths{"A": 0.9, "B": 0.3, "C": 0.1, "D": 0.55}
	ts.Normalize()

	var sum float64
	for team, v := range ts {
		assert.GreaterOrEqual(t, v, 0.1, team)
		assert.LessOrEqual(t, v, 0.9, team)
		sum += v
	}
	assert.InDelta(t, 0.5, sum/float64(len(ts)), 1e-9)

	// El extremo más alejado de la media toca el borde del rango
	assert.InDelta(t, 0.9, ts["A"], 1e-9)
	// El orden relativo se conserva
	assert.Greater(t, ts["D"], ts["B"])
	assert.Greater(t, ts["B"], ts["C"])
}

func TestTeamStrengths_Normalize_AlreadyInRange(t *testing.T) {
	// Media 0.5 y rango dentro de [0.1, 0.9]: no se toca nada.
	ts := TeamStrengths{"A": 0.6, "B": 0.4}
	ts.Normalize()
	assert.InDelta(t, 0.6, ts["A"], 1e-9)
	assert.InDelta(t, 0.4, ts["B"], 1e-9)
}

func TestTeamStrengths_Normalize_Uniform(t *testing.T) {
	ts := TeamStrengths{"A": 0.7, "B": 0.7, "C": 0.7}
	ts.Normalize()
	for team, v := range ts {
		assert.Equal(t, 0.5, v, team)
	}
}

func TestTeamStrengths_Normalize_Empty(t *testing.T) {
	ts := TeamStrengths{}
	assert.Empty(t, ts.Normalize())
}

func TestTeamStrengths_Variance(t *testing.T) {
	assert.Equal(t, 0.0, TeamStrengths{}.Variance())
	assert.Equal(t, 0.0, TeamStrengths{"A": 0.5, "B": 0.5}.Variance())

	// [0.4, 0.6]: varianza poblacional 0.01
	ts := TeamStrengths{"A": 0.4, "B": 0.6}
	assert.InDelta(t, 0.01, ts.Variance(), 1e-9)
}
