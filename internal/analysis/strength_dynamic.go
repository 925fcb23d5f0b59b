package analysis

// strength_dynamic.go — estimador de fuerzas por forma reciente.
//
// Mira los últimos L = (N-1)*2 partidos de cada equipo dentro de la propia
// temporada, del más reciente al más antiguo, con pesos que decaen linealmente
// de 1.0 a 0.7. La fuerza combina puntos, diferencia de gol y eficiencia
// ofensiva/defensiva, con un ajuste de ±10% a los goles según localía.

import (
	"log/slog"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// Pesos de los componentes de forma.
const (
	formPointsWeight   = 0.4
	formGoalDiffWeight = 0.2
	formOffenseWeight  = 0.2
	formDefenseWeight  = 0.2

	// homeGoalScale descuenta los goles marcados en casa (inflados por la
	// localía); awayGoalScale premia los marcados fuera.
	homeGoalScale = 0.9
	awayGoalScale = 1.1

	// goalsPerMatchRef normaliza goles y diferencias: 3 goles/partido ~ tope.
	goalsPerMatchRef = 3.0

	// oldestFormWeight es el peso del partido más antiguo de la ventana.
	oldestFormWeight = 0.7
)

// DynamicEstimator implementa ports.StrengthEstimator sobre la forma reciente.
type DynamicEstimator struct {
	cfg Config
}

// NewDynamicEstimator crea el estimador dinámico.
func NewDynamicEstimator(cfg Config) *DynamicEstimator {
	return &DynamicEstimator{cfg: cfg}
}

// Method identifica la estrategia.
func (e *DynamicEstimator) Method() domain.StrengthMethod { return domain.MethodDynamic }

// Estimate calcula fuerzas a partir de los últimos L partidos de cada equipo.
// Equipos con menos partidos que la ventana usan los que haya (warn), nunca
// es fatal.
func (e *DynamicEstimator) Estimate(season *domain.Season) (domain.TeamStrengths, error) {
	if len(season.Teams) < 2 {
		return domain.TeamStrengths{}, nil
	}
	lookback := (len(season.Teams) - 1) * 2

	strengths := make(domain.TeamStrengths, len(season.Teams))
	short := 0
	for _, team := range season.Teams {
		recent := recentMatches(season, team, lookback)
		if len(recent) == 0 {
			strengths[team] = missingStrength
			continue
		}
		if len(recent) < lookback {
			short++
		}
		strengths[team] = formScore(team, recent)
	}
	if short > 0 {
		slog.Warn("teams with fewer matches than form window",
			"teams", short,
			"window", lookback,
		)
	}

	return strengths.Normalize(), nil
}

// recentMatches devuelve hasta limit partidos del equipo, del más reciente
// (ronda más alta) al más antiguo.
func recentMatches(season *domain.Season, team string, limit int) []domain.Match {
	var out []domain.Match
	for i := len(season.Matches) - 1; i >= 0 && len(out) < limit; i-- {
		m := season.Matches[i]
		if m.Home == team || m.Away == team {
			out = append(out, m)
		}
	}
	return out
}

// formScore combina los componentes de forma con pesos decrecientes por
// antigüedad. matches llega del más reciente al más antiguo.
func formScore(team string, matches []domain.Match) float64 {
	var weightSum float64
	var points, goalDiff, scored, conceded float64

	n := len(matches)
	for i, m := range matches {
		// Decaimiento lineal 1.0 -> 0.7 a lo largo de la ventana.
		w := 1.0
		if n > 1 {
			w = 1.0 - (1.0-oldestFormWeight)*float64(i)/float64(n-1)
		}
		weightSum += w

		var pts int
		var gf, ga float64
		if m.Home == team {
			pts = m.HomePoints()
			gf = float64(m.HomeGoals) * homeGoalScale
			ga = float64(m.AwayGoals) * awayGoalScale
		} else {
			pts = m.AwayPoints()
			gf = float64(m.AwayGoals) * awayGoalScale
			ga = float64(m.HomeGoals) * homeGoalScale
		}

		points += w * float64(pts)
		goalDiff += w * (gf - ga)
		scored += w * gf
		conceded += w * ga
	}

	avgPoints := points / weightSum
	avgGoalDiff := goalDiff / weightSum
	avgScored := scored / weightSum
	avgConceded := conceded / weightSum

	pointsNorm := clamp01(avgPoints / 3.0)
	goalDiffNorm := clamp01((avgGoalDiff + goalsPerMatchRef) / (2 * goalsPerMatchRef))
	offense := clamp01(avgScored / goalsPerMatchRef)
	defense := clamp01(1 - avgConceded/goalsPerMatchRef)

	return formPointsWeight*pointsNorm +
		formGoalDiffWeight*goalDiffNorm +
		formOffenseWeight*offense +
		formDefenseWeight*defense
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
