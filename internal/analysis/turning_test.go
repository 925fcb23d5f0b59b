package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTurningPoint_Basic(t *testing.T) {
	// Por encima del envelope desde la ronda 4 hasta el final.
	observed := []float64{0.1, 0.1, 0.1, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9}
	envelope := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	tp := FindTurningPoint(observed, envelope, 10, false, DefaultConfig())
	require.NotNil(t, tp)
	assert.Equal(t, 4, tp.Round)
	assert.InDelta(t, 0.4, tp.Fraction, 1e-9)
}

func TestFindTurningPoint_Competitive(t *testing.T) {
	observed := []float64{0.1, 0.2, 0.1, 0.3, 0.2, 0.1, 0.2, 0.1, 0.3, 0.2}
	envelope := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	assert.Nil(t, FindTurningPoint(observed, envelope, 10, false, DefaultConfig()))
}

// Mismo input, mismo output: cero aleatoriedad interna.
func TestFindTurningPoint_Deterministic(t *testing.T) {
	observed := []float64{0.1, 0.6, 0.7, 0.8, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9}
	envelope := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	first := FindTurningPoint(observed, envelope, 10, false, DefaultConfig())
	for i := 0; i < 5; i++ {
		again := FindTurningPoint(observed, envelope, 10, false, DefaultConfig())
		require.NotNil(t, again)
		assert.Equal(t, first.Round, again.Round)
		assert.Equal(t, first.Fraction, again.Fraction)
	}
}

func TestFindTurningPoint_BriefSpikeIgnored(t *testing.T) {
	// Tres rondas por encima y vuelta a la normalidad: la cola no sostiene
	// la persistencia mínima.
	observed := []float64{0.1, 0.1, 0.1, 0.9, 0.9, 0.9, 0.1, 0.1, 0.1, 0.1}
	envelope := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	assert.Nil(t, FindTurningPoint(observed, envelope, 10, false, DefaultConfig()))
}

func TestFindTurningPoint_RankedThresholdStricter(t *testing.T) {
	// 7 de 10 rondas por encima desde la primera: 0.70 pasa el umbral sin
	// fuerzas pero no el de 0.75 con fuerzas.
	observed := []float64{0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.1, 0.1, 0.1}
	envelope := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	unranked := FindTurningPoint(observed, envelope, 10, false, DefaultConfig())
	require.NotNil(t, unranked)
	assert.Equal(t, 1, unranked.Round)

	assert.Nil(t, FindTurningPoint(observed, envelope, 10, true, DefaultConfig()))
}

func TestFindTurningPoint_DegenerateInputs(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, FindTurningPoint(nil, nil, 10, false, cfg))
	assert.Nil(t, FindTurningPoint([]float64{1}, []float64{0.5, 0.5}, 2, false, cfg))
	assert.Nil(t, FindTurningPoint([]float64{1, 1}, []float64{0, 0}, 0, false, cfg))
}
