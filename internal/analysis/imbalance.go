package analysis

// imbalance.go — curva de desequilibrio normalizado ronda a ronda.
//
// Métrica: varianza poblacional del vector de puntos acumulados, dividida por
// una varianza máxima teórica. El techo no es el escenario absurdo de "un
// equipo con todo"; se usa una distribución dos-niveles donde los
// ceil(DominantFraction*N) mejores concentran DominantShare de los puntos
// repartidos hasta esa ronda.

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// CurveCalculator calcula curvas de desequilibrio sobre cualquier conjunto de
// marcadores (reales o simulados) que comparta roster y número de rondas.
type CurveCalculator struct {
	cfg Config
}

// NewCurveCalculator crea el calculador con los parámetros de referencia dados.
func NewCurveCalculator(cfg Config) *CurveCalculator {
	return &CurveCalculator{cfg: cfg}
}

// Curve devuelve un valor de desequilibrio >= 0 por ronda, r = 1..rounds,
// junto con las clasificaciones acumuladas que alimentan el cálculo de
// posiciones bloqueadas.
func (c *CurveCalculator) Curve(teams []string, games []domain.Match, rounds int) ([]float64, []domain.RoundTable) {
	tables := domain.PointsProgression(teams, games, rounds)
	curve := make([]float64, len(tables))
	for i, table := range tables {
		curve[i] = c.normalizedVariance(table.PointsVector(), table.Round, len(teams))
	}
	return curve, tables
}

// CurveOnly es Curve sin materializar las clasificaciones (camino caliente del
// modelo nulo, que solo necesita la serie).
func (c *CurveCalculator) CurveOnly(teams []string, games []domain.Match, rounds int) []float64 {
	curve, _ := c.Curve(teams, games, rounds)
	return curve
}

func (c *CurveCalculator) normalizedVariance(points []float64, round, numTeams int) float64 {
	if len(points) < 2 {
		return 0
	}
	variance, err := stats.PopulationVariance(points)
	if err != nil {
		return 0
	}
	ceiling := c.theoreticalMaxVariance(round, numTeams)
	if ceiling <= 0 {
		return 0
	}
	return variance / ceiling
}

// theoreticalMaxVariance es la varianza de la distribución dos-niveles de
// referencia tras `round` rondas. Las divisiones enteras son deliberadas:
// los puntos de fútbol no se fraccionan.
func (c *CurveCalculator) theoreticalMaxVariance(round, numTeams int) float64 {
	if numTeams <= 1 {
		return 1.0
	}

	dominant := int(math.Ceil(c.cfg.DominantFraction * float64(numTeams)))
	if dominant < 1 {
		dominant = 1
	}
	if dominant > numTeams {
		dominant = numTeams
	}
	weak := numTeams - dominant

	totalPoints := round * 3 * numTeams / 2
	pointsDominant := int(c.cfg.DominantShare*float64(totalPoints)) / dominant
	pointsWeak := 0
	if weak > 0 {
		pointsWeak = int((1-c.cfg.DominantShare)*float64(totalPoints)) / weak
	}

	dist := make([]float64, 0, numTeams)
	for i := 0; i < dominant; i++ {
		dist = append(dist, float64(pointsDominant))
	}
	for i := 0; i < weak; i++ {
		dist = append(dist, float64(pointsWeak))
	}
	variance, err := stats.PopulationVariance(dist)
	if err != nil {
		return 0
	}
	return variance
}
