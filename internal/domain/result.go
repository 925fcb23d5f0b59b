package domain

import "time"

// StrengthMethod identifica qué estimador de fuerzas alimentó la simulación.
type StrengthMethod string

const (
	MethodNone    StrengthMethod = "none"
	MethodStatic  StrengthMethod = "static"
	MethodDynamic StrengthMethod = "dynamic"
)

// TurningPoint es la primera ronda donde el desequilibrio observado supera el
// envelope de forma persistente. Ausente (nil) = temporada competitiva.
type TurningPoint struct {
	Round    int     `json:"round"`
	Fraction float64 `json:"fraction"` // round / total_rounds
}

// RoundPoint es una muestra de la serie por ronda que consumen los dashboards.
type RoundPoint struct {
	Round          int     `json:"round"`
	Observed       float64 `json:"observed"`
	EnvelopeUpper  float64 `json:"envelope_upper"`
	IsTurningPoint bool    `json:"is_turning_point"`
}

// AnalysisResult es el agregado inmutable de una temporada analizada. Se
// construye una sola vez al final del pipeline y de ahí en adelante solo se lee.
type AnalysisResult struct {
	SeasonID string `json:"season_id"`
	League   string `json:"league"`
	Season   string `json:"season"`

	Teams  int `json:"teams"`
	Rounds int `json:"rounds"`

	Method           StrengthMethod `json:"method"`
	StrengthVariance float64        `json:"strength_variance"`

	Rates Rates `json:"rates"` // ph / pd / pa globales

	FinalImbalance float64       `json:"final_imbalance"`
	MeanSimFinal   float64       `json:"mean_sim_final"` // media del desequilibrio final simulado
	TurningPoint   *TurningPoint `json:"turning_point,omitempty"`

	// PositionLocks: slot final (1..4 y N-3..N, 1-based) -> primera ronda en
	// la que ese puesto queda matemáticamente cerrado.
	PositionLocks map[int]int `json:"position_locks"`

	Series []RoundPoint `json:"series"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// IsCompetitive indica si la temporada se mantuvo estadísticamente dentro del
// modelo nulo (sin punto de virada).
func (r *AnalysisResult) IsCompetitive() bool {
	return r.TurningPoint == nil
}

// TopSlots devuelve los slots de cabeza analizados (1..min(4, N)).
func (r *AnalysisResult) TopSlots() []int {
	n := 4
	if r.Teams < n {
		n = r.Teams
	}
	slots := make([]int, 0, n)
	for p := 1; p <= n; p++ {
		slots = append(slots, p)
	}
	return slots
}

// BottomSlots devuelve los cuatro últimos puestos (N-3..N), omitiendo los que
// ya aparecen como slot de cabeza en rosters pequeños.
func (r *AnalysisResult) BottomSlots() []int {
	var slots []int
	for p := r.Teams - 3; p <= r.Teams; p++ {
		if p > 4 && p >= 1 {
			slots = append(slots, p)
		}
	}
	return slots
}
