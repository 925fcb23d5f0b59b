package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

func TestNullModel_Run(t *testing.T) {
	season := dominantSeason(t, "dom@/d/2016/", "A", []string{"A", "B", "C", "D"})
	cfg := DefaultConfig()
	cfg.Simulations = 50

	sim := NewOutcomeSimulator(nil, cfg, testRand(3))
	ensemble, envelope, err := NewNullModel(cfg, sim).Run(context.Background(), season, season.GlobalRates())
	require.NoError(t, err)

	// Matriz S×R y envelope por ronda
	require.Len(t, ensemble, 50)
	require.Len(t, envelope, season.Rounds)
	for _, trial := range ensemble {
		require.Len(t, trial, season.Rounds)
		for _, v := range trial {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
	for _, v := range envelope {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestNullModel_ContextCancellation(t *testing.T) {
	season := dominantSeason(t, "dom@/d/2016/", "A", []string{"A", "B", "C", "D"})
	cfg := DefaultConfig()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := NewOutcomeSimulator(nil, cfg, testRand(3))
	_, _, err := NewNullModel(cfg, sim).Run(ctx, season, season.GlobalRates())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNullModel_UniformDrawRespectsRates(t *testing.T) {
	// Con tasas degeneradas (solo empates) el atajo uniforme produce curvas
	// idénticamente cero.
	season := allDrawsSeason(t, "tied@/d/2016/", []string{"A", "B", "C", "D"})
	cfg := DefaultConfig()
	cfg.Simulations = 20

	sim := NewOutcomeSimulator(nil, cfg, testRand(9))
	ensemble, envelope, err := NewNullModel(cfg, sim).Run(context.Background(), season, domain.Rates{Draw: 1})
	require.NoError(t, err)

	for _, trial := range ensemble {
		for _, v := range trial {
			assert.Equal(t, 0.0, v)
		}
	}
	for _, v := range envelope {
		assert.Equal(t, 0.0, v)
	}
}

func TestEnvelope(t *testing.T) {
	// Filas idénticas: el percentil por ronda es la propia fila, sea cual sea
	// la interpolación.
	ensemble := [][]float64{
		{0.2, 0.4, 0.6},
		{0.2, 0.4, 0.6},
		{0.2, 0.4, 0.6},
	}
	envelope, err := Envelope(ensemble, 0.05)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.2, 0.4, 0.6}, envelope, 1e-9)

	_, err = Envelope(nil, 0.05)
	assert.Error(t, err)
}

func TestMeanFinal(t *testing.T) {
	ensemble := [][]float64{
		{0.1, 1.0},
		{0.1, 2.0},
		{0.1, 3.0},
	}
	assert.InDelta(t, 2.0, MeanFinal(ensemble), 1e-9)
	assert.Equal(t, 0.0, MeanFinal(nil))
}
