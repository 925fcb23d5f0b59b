package analysis

// analyzer.go — pipeline completo de una temporada.
//
// Orden fijo: tasas globales -> fuerzas -> curva observada -> modelo nulo ->
// envelope -> punto de virada -> posiciones bloqueadas -> resultado inmutable.
// Todo el estado es local a la llamada: nada compartido entre temporadas.

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
	"github.com/alejandrodnm/leaguebalance/internal/ports"
)

// Analyzer ejecuta el análisis de equilibrio competitivo temporada a
// temporada. Es seguro compartirlo entre goroutines siempre que rng sea nil
// (cada análisis crea entonces su propia fuente).
type Analyzer struct {
	cfg       Config
	estimator ports.StrengthEstimator // nil = sin estimación de fuerzas
	rng       *rand.Rand              // solo para tests; nil en producción
}

// NewAnalyzer crea el analizador. estimator nil desactiva la señal de skill.
func NewAnalyzer(cfg Config, estimator ports.StrengthEstimator) *Analyzer {
	return &Analyzer{cfg: cfg, estimator: estimator}
}

// NewAnalyzerWithRand fija la fuente de aleatoriedad (tests). No usar con
// análisis concurrentes: *rand.Rand no es seguro entre goroutines.
func NewAnalyzerWithRand(cfg Config, estimator ports.StrengthEstimator, rng *rand.Rand) *Analyzer {
	return &Analyzer{cfg: cfg, estimator: estimator, rng: rng}
}

// AnalyzeSeason corre el pipeline entero para los partidos de un id.
func (a *Analyzer) AnalyzeSeason(ctx context.Context, id string, matches []domain.Match) (*domain.AnalysisResult, error) {
	season, err := domain.NewSeason(id, matches)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, season)
}

// Analyze corre el pipeline sobre una temporada ya construida.
func (a *Analyzer) Analyze(ctx context.Context, season *domain.Season) (*domain.AnalysisResult, error) {
	start := time.Now()
	rates := season.GlobalRates()

	// Fuerzas: un fallo o un mapa vacío degradan a tasas globales, nunca
	// bloquean el análisis.
	strengths := domain.TeamStrengths{}
	method := domain.MethodNone
	if a.estimator != nil {
		estimated, err := a.estimator.Estimate(season)
		if err != nil {
			slog.Warn("strength estimation failed, falling back to global rates",
				"season", season.ID,
				"err", err,
			)
		} else if len(estimated) > 0 {
			strengths = estimated
			method = a.estimator.Method()
		}
	}

	curveCalc := NewCurveCalculator(a.cfg)
	observed, tables := curveCalc.Curve(season.Teams, season.Matches, season.Rounds)

	rng := a.rng
	if rng == nil {
		rng = NewRand()
	}
	sim := NewOutcomeSimulator(strengths, a.cfg, rng)
	ensemble, envelope, err := NewNullModel(a.cfg, sim).Run(ctx, season, rates)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}

	turning := FindTurningPoint(observed, envelope, season.Rounds, sim.HasStrengths(), a.cfg)
	locks := PositionLocks(tables, season.Rounds)

	series := make([]domain.RoundPoint, len(observed))
	for i := range observed {
		series[i] = domain.RoundPoint{
			Round:          i + 1,
			Observed:       observed[i],
			EnvelopeUpper:  envelope[i],
			IsTurningPoint: turning != nil && turning.Round == i+1,
		}
	}

	result := &domain.AnalysisResult{
		SeasonID:         season.ID,
		League:           season.League,
		Season:           season.Label,
		Teams:            len(season.Teams),
		Rounds:           season.Rounds,
		Method:           method,
		StrengthVariance: strengths.Variance(),
		Rates:            rates,
		FinalImbalance:   observed[len(observed)-1],
		MeanSimFinal:     MeanFinal(ensemble),
		TurningPoint:     turning,
		PositionLocks:    locks,
		Series:           series,
		AnalyzedAt:       time.Now().UTC(),
	}

	slog.Info("season analyzed",
		"season", season.ID,
		"teams", result.Teams,
		"rounds", result.Rounds,
		"method", result.Method,
		"competitive", result.IsCompetitive(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return result, nil
}
