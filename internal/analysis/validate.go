package analysis

// validate.go — limpieza de las tablas crudas de partidos y clasificaciones.
//
// Filosofía: una fila mala se descarta con un warn y la vida sigue; solo la
// ausencia total de una columna estructural es fatal. El batch nunca debe
// caerse por un CSV con filas sucias.

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// matchColumns son las columnas obligatorias de la tabla de partidos, con el
// nombre que produce el pipeline upstream.
var matchColumns = []string{"id", "round", "home", "away", "goal_home", "goal_away"}

// rankingColumns son las obligatorias de la tabla de clasificaciones.
var rankingColumns = []string{"season", "tournament", "position", "team"}

// CleanReport resume qué se descartó durante la validación.
type CleanReport struct {
	Total   int
	Dropped int
}

// CleanMatches valida la tabla cruda de partidos y devuelve los válidos.
// Filas con goles/ronda no numéricos o goles negativos se descartan (warn);
// una columna obligatoria ausente devuelve domain.ErrMissingColumn.
func CleanMatches(table domain.Table) ([]domain.Match, CleanReport, error) {
	idx := make(map[string]int, len(matchColumns))
	for _, col := range matchColumns {
		i := table.ColumnIndex(col)
		if i < 0 {
			return nil, CleanReport{}, fmt.Errorf("analysis.CleanMatches: %q: %w", col, domain.ErrMissingColumn)
		}
		idx[col] = i
	}

	report := CleanReport{Total: len(table.Rows)}
	matches := make([]domain.Match, 0, len(table.Rows))
	for _, row := range table.Rows {
		m, ok := parseMatchRow(row, idx)
		if !ok {
			report.Dropped++
			continue
		}
		matches = append(matches, m)
	}

	if report.Dropped > 0 {
		slog.Warn("dropped invalid match rows", "dropped", report.Dropped, "total", report.Total)
	}
	return matches, report, nil
}

func parseMatchRow(row []string, idx map[string]int) (domain.Match, bool) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	round, err := parseRoundedInt(get("round"))
	if err != nil || round < 1 {
		return domain.Match{}, false
	}
	hg, err := parseRoundedInt(get("goal_home"))
	if err != nil || hg < 0 {
		return domain.Match{}, false
	}
	ag, err := parseRoundedInt(get("goal_away"))
	if err != nil || ag < 0 {
		return domain.Match{}, false
	}

	m := domain.Match{
		SeasonID:  get("id"),
		Round:     round,
		Home:      get("home"),
		Away:      get("away"),
		HomeGoals: hg,
		AwayGoals: ag,
	}
	if m.SeasonID == "" || m.Home == "" || m.Away == "" {
		return domain.Match{}, false
	}
	return m, true
}

// CleanRankings valida la tabla de clasificaciones históricas. Filas sin
// posición numérica se descartan; los puntos son opcionales.
func CleanRankings(table domain.Table) ([]domain.RankingRow, CleanReport, error) {
	idx := make(map[string]int, len(rankingColumns))
	for _, col := range rankingColumns {
		i := table.ColumnIndex(col)
		if i < 0 {
			return nil, CleanReport{}, fmt.Errorf("analysis.CleanRankings: %q: %w", col, domain.ErrMissingColumn)
		}
		idx[col] = i
	}
	pointsIdx := table.ColumnIndex("points")

	report := CleanReport{Total: len(table.Rows)}
	rows := make([]domain.RankingRow, 0, len(table.Rows))
	for _, raw := range table.Rows {
		get := func(i int) string {
			if i < 0 || i >= len(raw) {
				return ""
			}
			return strings.TrimSpace(raw[i])
		}

		pos, err := parseRoundedInt(get(idx["position"]))
		if err != nil || pos < 1 {
			report.Dropped++
			continue
		}

		r := domain.RankingRow{
			Season:     get(idx["season"]),
			Tournament: get(idx["tournament"]),
			Position:   pos,
			Team:       get(idx["team"]),
		}
		if r.Team == "" {
			report.Dropped++
			continue
		}
		if pts := get(pointsIdx); pts != "" {
			if v, err := strconv.ParseFloat(pts, 64); err == nil {
				r.Points = v
				r.HasPoints = true
			}
		}
		rows = append(rows, r)
	}

	if report.Dropped > 0 {
		slog.Warn("dropped invalid ranking rows", "dropped", report.Dropped, "total", report.Total)
	}
	return rows, report, nil
}

// parseRoundedInt acepta "3", "3.0" y similares: el upstream a veces exporta
// enteros como floats.
func parseRoundedInt(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, strconv.ErrSyntax
	}
	return int(f), nil
}
