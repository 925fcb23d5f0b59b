package domain

import "sort"

// StandingRow es la línea de un equipo en la clasificación acumulada hasta
// una ronda dada.
type StandingRow struct {
	Team     string
	Points   int
	GoalDiff int
}

// RoundTable es la clasificación completa tras una ronda, ya ordenada:
// puntos desc, diferencia de gol desc, nombre asc. El desempate determinista
// es lo que hace estables los cálculos de posiciones bloqueadas.
type RoundTable struct {
	Round int
	Rows  []StandingRow
}

// PointsVector devuelve el vector de puntos acumulados (en el orden de la tabla).
func (t RoundTable) PointsVector() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = float64(r.Points)
	}
	return out
}

// PointsProgression acumula puntos y diferencia de gol ronda a ronda para un
// conjunto de resultados (reales o simulados) y devuelve una tabla por ronda,
// r = 1..rounds. Las rondas sin partidos arrastran la clasificación anterior.
func PointsProgression(teams []string, games []Match, rounds int) []RoundTable {
	points := make(map[string]int, len(teams))
	goalDiff := make(map[string]int, len(teams))
	for _, t := range teams {
		points[t] = 0
		goalDiff[t] = 0
	}

	byRound := make(map[int][]Match)
	for _, m := range games {
		byRound[m.Round] = append(byRound[m.Round], m)
	}

	tables := make([]RoundTable, 0, rounds)
	for r := 1; r <= rounds; r++ {
		for _, m := range byRound[r] {
			points[m.Home] += m.HomePoints()
			points[m.Away] += m.AwayPoints()
			goalDiff[m.Home] += m.HomeGoals - m.AwayGoals
			goalDiff[m.Away] += m.AwayGoals - m.HomeGoals
		}

		rows := make([]StandingRow, 0, len(teams))
		for _, t := range teams {
			rows = append(rows, StandingRow{Team: t, Points: points[t], GoalDiff: goalDiff[t]})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Points != rows[j].Points {
				return rows[i].Points > rows[j].Points
			}
			if rows[i].GoalDiff != rows[j].GoalDiff {
				return rows[i].GoalDiff > rows[j].GoalDiff
			}
			return rows[i].Team < rows[j].Team
		})
		tables = append(tables, RoundTable{Round: r, Rows: rows})
	}
	return tables
}
