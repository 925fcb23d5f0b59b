package analysis

// nullmodel.go — ensemble Monte Carlo del modelo nulo y envelope de confianza.
//
// Cada trial conserva el emparejamiento real por ronda y redibuja todos los
// marcadores. Sin señal de skill existe un atajo: basta un uniforme por
// partido mapeado a marcadores fijos 2-0 / 1-1 / 0-2 — mismo contrato
// estadístico sobre puntos, bastante más barato.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/time/rate"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// NullModel genera el ensemble S×R y su envelope superior por ronda.
type NullModel struct {
	cfg   Config
	sim   *OutcomeSimulator
	curve *CurveCalculator

	// Throttle de logs de progreso: como mucho una línea por segundo aunque
	// haya miles de trials.
	progress *rate.Limiter
}

// NewNullModel crea el modelo nulo sobre un simulador ya construido.
func NewNullModel(cfg Config, sim *OutcomeSimulator) *NullModel {
	return &NullModel{
		cfg:      cfg,
		sim:      sim,
		curve:    NewCurveCalculator(cfg),
		progress: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Run ejecuta los S trials sobre el esqueleto de fixtures de la temporada y
// devuelve la matriz de curvas (S filas, R columnas) y el envelope por ronda.
// Respeta la cancelación del contexto entre trials.
func (n *NullModel) Run(ctx context.Context, season *domain.Season, global domain.Rates) ([][]float64, []float64, error) {
	trials := n.cfg.Simulations
	if trials < 1 {
		trials = 1
	}

	// Esqueleto compartido: cada trial reescribe solo los goles.
	skeleton := make([]domain.Match, len(season.Matches))
	copy(skeleton, season.Matches)

	ensemble := make([][]float64, trials)
	for t := 0; t < trials; t++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("analysis.NullModel.Run: trial %d: %w", t, err)
		}

		if n.sim.HasStrengths() {
			n.drawStrengthBased(skeleton, global)
		} else {
			n.drawUniform(skeleton, global)
		}
		ensemble[t] = n.curve.CurveOnly(season.Teams, skeleton, season.Rounds)

		if n.progress.Allow() {
			slog.Debug("null model progress",
				"season", season.ID,
				"trial", t+1,
				"trials", trials,
			)
		}
	}

	envelope, err := Envelope(ensemble, n.cfg.Alpha)
	if err != nil {
		return nil, nil, fmt.Errorf("analysis.NullModel.Run: envelope: %w", err)
	}
	return ensemble, envelope, nil
}

// drawStrengthBased samplea cada partido individualmente con el simulador.
func (n *NullModel) drawStrengthBased(games []domain.Match, global domain.Rates) {
	for i := range games {
		hg, ag := n.sim.Score(games[i].Home, games[i].Away, global)
		games[i].HomeGoals = hg
		games[i].AwayGoals = ag
	}
}

// drawUniform es el atajo sin fuerzas: un uniforme por partido, marcadores
// fijos por categoría. La distribución de puntos resultante es idéntica.
func (n *NullModel) drawUniform(games []domain.Match, global domain.Rates) {
	for i := range games {
		u := n.sim.rng.Float64()
		switch {
		case u < global.Home:
			games[i].HomeGoals, games[i].AwayGoals = 2, 0
		case u < global.Home+global.Draw:
			games[i].HomeGoals, games[i].AwayGoals = 1, 1
		default:
			games[i].HomeGoals, games[i].AwayGoals = 0, 2
		}
	}
}

// Envelope calcula el percentil (1-alpha) del ensemble, ronda por ronda e
// independiente entre rondas.
func Envelope(ensemble [][]float64, alpha float64) ([]float64, error) {
	if len(ensemble) == 0 || len(ensemble[0]) == 0 {
		return nil, fmt.Errorf("analysis.Envelope: empty ensemble")
	}

	rounds := len(ensemble[0])
	column := make([]float64, len(ensemble))
	envelope := make([]float64, rounds)
	for r := 0; r < rounds; r++ {
		for t := range ensemble {
			column[t] = ensemble[t][r]
		}
		p, err := stats.Percentile(column, (1-alpha)*100)
		if err != nil {
			return nil, fmt.Errorf("analysis.Envelope: round %d: %w", r+1, err)
		}
		envelope[r] = p
	}
	return envelope, nil
}

// MeanFinal devuelve la media del valor final (última ronda) del ensemble.
func MeanFinal(ensemble [][]float64) float64 {
	if len(ensemble) == 0 || len(ensemble[0]) == 0 {
		return 0
	}
	last := len(ensemble[0]) - 1
	finals := make([]float64, len(ensemble))
	for t := range ensemble {
		finals[t] = ensemble[t][last]
	}
	mean, err := stats.Mean(finals)
	if err != nil {
		return 0
	}
	return mean
}
