package analysis

// simulator.go — distribución de resultado por partido y sampleo de marcadores.
//
// Sin fuerzas, cada partido replica exactamente las tasas globales (ph, pd, pa).
// Con fuerzas: bonus de localía, logística sobre la diferencia, mezcla 70/30
// con la tasa global y reparto del resto en proporción pd:pa. Los marcadores
// salen de tablas condicionales fijas; no hay correlación entre partidos.

import (
	"math"
	"math/rand/v2"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// Tablas condicionales de marcador por categoría de resultado.
var (
	winnerGoals     = []int{1, 2, 3}
	winnerGoalProbs = []float64{0.4, 0.4, 0.2}
	loserGoals      = []int{0, 1}
	loserGoalProbs  = []float64{0.7, 0.3}
	drawGoals       = []int{0, 1, 2}
	drawGoalProbs   = []float64{0.3, 0.5, 0.2}
)

// maxHomeStrength limita la fuerza del local tras aplicar la ventaja de casa.
const maxHomeStrength = 0.95

// OutcomeSimulator convierte fuerzas + tasas globales en resultados sampleados.
type OutcomeSimulator struct {
	strengths domain.TeamStrengths
	cfg       Config
	rng       *rand.Rand
}

// NewOutcomeSimulator crea un simulador. strengths puede ser nil/vacío
// ("sin señal"); rng nil usa una fuente sembrada con entropía del sistema.
func NewOutcomeSimulator(strengths domain.TeamStrengths, cfg Config, rng *rand.Rand) *OutcomeSimulator {
	if rng == nil {
		rng = NewRand()
	}
	return &OutcomeSimulator{strengths: strengths, cfg: cfg, rng: rng}
}

// HasStrengths indica si el simulador tiene señal de skill.
func (s *OutcomeSimulator) HasStrengths() bool {
	return len(s.strengths) > 0
}

// Probabilities devuelve (ph, pd, pa) para un partido concreto. Sin fuerzas
// devuelve exactamente las tasas globales.
func (s *OutcomeSimulator) Probabilities(home, away string, global domain.Rates) domain.Rates {
	if !s.HasStrengths() {
		return global
	}

	homeStrength := math.Min(maxHomeStrength, s.strengths.Get(home)+s.cfg.HomeAdvantage)
	diff := homeStrength - s.strengths.Get(away)

	skillHome := logistic(diff, s.cfg.Steepness)
	ph := s.cfg.SkillBlend*skillHome + (1-s.cfg.SkillBlend)*global.Home

	// El resto se reparte en la misma proporción pd:pa del campeonato.
	remaining := 1 - ph
	var pd, pa float64
	if rest := global.Draw + global.Away; rest > 0 {
		pd = remaining * global.Draw / rest
		pa = remaining * global.Away / rest
	} else {
		pd = remaining * 0.3
		pa = remaining * 0.7
	}

	total := ph + pd + pa
	if total <= 0 {
		return global
	}
	return domain.Rates{Home: ph / total, Draw: pd / total, Away: pa / total}
}

// Score samplea un marcador (goles local, goles visitante) para el partido.
func (s *OutcomeSimulator) Score(home, away string, global domain.Rates) (int, int) {
	p := s.Probabilities(home, away, global)

	u := s.rng.Float64()
	switch {
	case u < p.Home:
		return s.sample(winnerGoals, winnerGoalProbs), s.sample(loserGoals, loserGoalProbs)
	case u < p.Home+p.Draw:
		g := s.sample(drawGoals, drawGoalProbs)
		return g, g
	default:
		return s.sample(loserGoals, loserGoalProbs), s.sample(winnerGoals, winnerGoalProbs)
	}
}

// sample elige un valor según su distribución discreta.
func (s *OutcomeSimulator) sample(values []int, probs []float64) int {
	u := s.rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if u < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func logistic(x, steepness float64) float64 {
	return 1 / (1 + math.Exp(-steepness*x))
}
