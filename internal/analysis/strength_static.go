package analysis

// strength_static.go — estimador de fuerzas basado en clasificaciones previas.
//
// Busca la tabla final de la temporada anterior de la liga, casa nombres de
// equipo con tolerancia a variaciones de grafía y convierte posición + puntos
// en una fuerza escalar. Opcionalmente mezcla con la clasificación de la
// temporada en curso según RankingBlend.

import (
	"log/slog"
	"strings"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// Pesos de la fuerza por ranking: 60% posición invertida, 40% puntos.
const (
	positionWeight = 0.6
	pointsWeight   = 0.4

	// missingStrength es la fuerza asignada a equipos ausentes del ranking
	// (recién ascendidos, normalmente débiles).
	missingStrength = 0.1

	// minNameSimilarity corta el matching difuso de nombres.
	minNameSimilarity = 0.6
)

// StaticEstimator implementa ports.StrengthEstimator sobre la tabla de
// clasificaciones históricas.
type StaticEstimator struct {
	rankings []domain.RankingRow
	cfg      Config
}

// NewStaticEstimator crea el estimador. rankings puede estar vacío: entonces
// toda temporada degrada a "sin señal".
func NewStaticEstimator(rankings []domain.RankingRow, cfg Config) *StaticEstimator {
	return &StaticEstimator{rankings: rankings, cfg: cfg}
}

// Method identifica la estrategia.
func (e *StaticEstimator) Method() domain.StrengthMethod { return domain.MethodStatic }

// Estimate devuelve las fuerzas del roster a partir del ranking de la
// temporada anterior. Mapa vacío (sin error) cuando no hay datos utilizables.
func (e *StaticEstimator) Estimate(season *domain.Season) (domain.TeamStrengths, error) {
	prev := season.PrevLabel()
	rows := e.lookupRankings(season.League, prev)
	if len(rows) == 0 {
		slog.Warn("no ranking data for league",
			"league", season.League,
			"season", prev,
		)
		return domain.TeamStrengths{}, nil
	}

	prior := strengthsFromRanking(rows, season.Teams)

	// Mezcla opcional con la clasificación de la temporada en curso.
	blend := e.cfg.RankingBlend
	if blend > 0 && blend < 1 {
		current := strengthsFromStandings(season)
		for team, p := range prior {
			prior[team] = blend*p + (1-blend)*current.Get(team)
		}
	}

	return prior.Normalize(), nil
}

// lookupRankings filtra la tabla por liga y temporada: primero búsqueda
// exacta, después una flexible por prefijo de temporada.
func (e *StaticEstimator) lookupRankings(league, seasonLabel string) []domain.RankingRow {
	match := func(flexible bool) []domain.RankingRow {
		var out []domain.RankingRow
		for _, r := range e.rankings {
			if !strings.Contains(strings.ToLower(r.Tournament), strings.ToLower(league)) {
				continue
			}
			if r.Season == seasonLabel || (flexible && strings.HasPrefix(r.Season, seasonLabel)) {
				out = append(out, r)
			}
		}
		return out
	}

	if rows := match(false); len(rows) > 0 {
		return rows
	}
	return match(true)
}

// strengthsFromRanking convierte filas de ranking en fuerzas sin normalizar,
// casando nombres contra el roster real.
func strengthsFromRanking(rows []domain.RankingRow, roster []string) domain.TeamStrengths {
	maxPos := 0
	minPts, maxPts := 0.0, 0.0
	havePts := false
	for _, r := range rows {
		if r.Position > maxPos {
			maxPos = r.Position
		}
		if r.HasPoints {
			if !havePts || r.Points < minPts {
				minPts = r.Points
			}
			if !havePts || r.Points > maxPts {
				maxPts = r.Points
			}
			havePts = true
		}
	}

	mapping := teamNameMapping(rows, roster)
	strengths := make(domain.TeamStrengths, len(roster))
	for _, r := range rows {
		team, ok := mapping[r.Team]
		if !ok {
			continue
		}
		position := float64(maxPos-r.Position) / float64(maxPos)
		if r.HasPoints && havePts && maxPts > minPts {
			points := (r.Points - minPts) / (maxPts - minPts)
			strengths[team] = positionWeight*position + pointsWeight*points
		} else {
			strengths[team] = position
		}
	}

	for _, team := range roster {
		if _, ok := strengths[team]; !ok {
			slog.Warn("team missing from ranking, using below-average strength", "team", team)
			strengths[team] = missingStrength
		}
	}
	return strengths
}

// strengthsFromStandings deriva fuerzas de la clasificación final de la
// propia temporada, con la misma fórmula posición/puntos.
func strengthsFromStandings(season *domain.Season) domain.TeamStrengths {
	tables := domain.PointsProgression(season.Teams, season.Matches, season.Rounds)
	if len(tables) == 0 {
		return domain.TeamStrengths{}
	}
	final := tables[len(tables)-1]

	n := len(final.Rows)
	minPts, maxPts := final.Rows[n-1].Points, final.Rows[0].Points
	strengths := make(domain.TeamStrengths, n)
	for i, row := range final.Rows {
		position := float64(n-(i+1)) / float64(n)
		if maxPts > minPts {
			points := float64(row.Points-minPts) / float64(maxPts-minPts)
			strengths[row.Team] = positionWeight*position + pointsWeight*points
		} else {
			strengths[row.Team] = position
		}
	}
	return strengths
}

// teamNameMapping casa nombres del ranking con el roster real: igualdad
// exacta primero, después similitud por contención de nombres limpios.
func teamNameMapping(rows []domain.RankingRow, roster []string) map[string]string {
	inRoster := make(map[string]bool, len(roster))
	for _, t := range roster {
		inRoster[t] = true
	}

	mapping := make(map[string]string)
	for _, r := range rows {
		if inRoster[r.Team] {
			mapping[r.Team] = r.Team
			continue
		}

		clean := cleanTeamName(r.Team)
		best := ""
		bestScore := 0.0
		for _, actual := range roster {
			actualClean := cleanTeamName(actual)
			if !strings.Contains(actualClean, clean) && !strings.Contains(clean, actualClean) {
				continue
			}
			shorter, longer := len(clean), len(actualClean)
			if shorter > longer {
				shorter, longer = longer, shorter
			}
			if longer == 0 {
				continue
			}
			score := float64(shorter) / float64(longer)
			if score > bestScore {
				bestScore = score
				best = actual
			}
		}
		if best != "" && bestScore > minNameSimilarity {
			mapping[r.Team] = best
		}
	}
	return mapping
}

// cleanTeamName baja a minúsculas y elimina todo lo que no sea letra, dígito
// o espacio, colapsando espacios repetidos.
func cleanTeamName(name string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127:
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '-' || r == '_':
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
