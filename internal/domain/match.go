package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores centinela del dominio. Los wrappea DataError cuando una temporada
// completa queda inutilizable.
var (
	ErrMissingColumn = errors.New("required column missing")
	ErrNoMatches     = errors.New("no matches for season")
)

// DataError marca una temporada irrecuperable: se reporta como skipped en el
// batch pero nunca lo aborta.
type DataError struct {
	SeasonID string
	Err      error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("season %q: %v", e.SeasonID, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// Match es un partido ya jugado, tal como llega del pipeline de fixtures.
// Entrada de solo lectura: el motor nunca la muta.
type Match struct {
	SeasonID  string
	Round     int
	Home      string
	Away      string
	HomeGoals int
	AwayGoals int
}

// HomePoints devuelve los puntos del local bajo la regla 3/1/0.
func (m Match) HomePoints() int {
	switch {
	case m.HomeGoals > m.AwayGoals:
		return 3
	case m.HomeGoals == m.AwayGoals:
		return 1
	default:
		return 0
	}
}

// AwayPoints devuelve los puntos del visitante bajo la regla 3/1/0.
func (m Match) AwayPoints() int {
	switch {
	case m.AwayGoals > m.HomeGoals:
		return 3
	case m.AwayGoals == m.HomeGoals:
		return 1
	default:
		return 0
	}
}

// Rates son las frecuencias globales de resultado de una temporada:
// victoria local, empate y victoria visitante. Suman 1 salvo temporada vacía.
type Rates struct {
	Home float64
	Draw float64
	Away float64
}

// Season agrupa todos los partidos de un campeonato (mismo id), ordenados por
// ronda. Se construye una vez y después solo se lee.
type Season struct {
	ID      string
	League  string
	Label   string // año o "YYYY-YYYY"; "unknown" si el id no lo contiene
	Matches []Match
	Teams   []string // roster ordenado (unión de locales y visitantes)
	Rounds  int      // ronda máxima presente
}

// NewSeason filtra los partidos del id dado y deriva roster, rondas y labels.
func NewSeason(id string, all []Match) (*Season, error) {
	var games []Match
	for _, m := range all {
		if m.SeasonID == id {
			games = append(games, m)
		}
	}
	if len(games) == 0 {
		return nil, &DataError{SeasonID: id, Err: ErrNoMatches}
	}

	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Round != games[j].Round {
			return games[i].Round < games[j].Round
		}
		return games[i].Home < games[j].Home
	})

	seen := make(map[string]bool)
	var teams []string
	rounds := 0
	for _, m := range games {
		if !seen[m.Home] {
			seen[m.Home] = true
			teams = append(teams, m.Home)
		}
		if !seen[m.Away] {
			seen[m.Away] = true
			teams = append(teams, m.Away)
		}
		if m.Round > rounds {
			rounds = m.Round
		}
	}
	sort.Strings(teams)

	league, label := parseSeasonID(id)
	return &Season{
		ID:      id,
		League:  league,
		Label:   label,
		Matches: games,
		Teams:   teams,
		Rounds:  rounds,
	}, nil
}

// GlobalRates calcula ph/pd/pa sobre todos los partidos reales.
func (s *Season) GlobalRates() Rates {
	total := len(s.Matches)
	if total == 0 {
		return Rates{}
	}
	var home, draw int
	for _, m := range s.Matches {
		switch {
		case m.HomeGoals > m.AwayGoals:
			home++
		case m.HomeGoals == m.AwayGoals:
			draw++
		}
	}
	away := total - home - draw
	return Rates{
		Home: float64(home) / float64(total),
		Draw: float64(draw) / float64(total),
		Away: float64(away) / float64(total),
	}
}

// RoundMatches devuelve los partidos de una ronda concreta.
func (s *Season) RoundMatches(round int) []Match {
	var out []Match
	for _, m := range s.Matches {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}

// PrevLabel devuelve el label de la temporada anterior: "2015" -> "2014",
// "2015-2016" -> "2014-2015". Si el formato no se reconoce, devuelve el
// label original sin tocar.
func (s *Season) PrevLabel() string {
	return prevSeasonLabel(s.Label)
}

// parseSeasonID separa "liga@/ruta/con/2015/" en nombre de liga y temporada.
// Los ids upstream llevan la liga antes de la arroba y un año de 4 dígitos
// en alguna parte de la ruta.
func parseSeasonID(id string) (league, label string) {
	league = id
	path := ""
	if at := strings.Index(id, "@"); at >= 0 {
		league = id[:at]
		path = id[at+1:]
	}
	label = firstYear(path)
	if label == "" {
		label = "unknown"
	}
	return league, label
}

// firstYear busca la primera secuencia de exactamente 4 dígitos.
func firstYear(s string) string {
	run := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] >= '0' && s[i] <= '9' {
			run++
			continue
		}
		if run == 4 {
			return s[i-4 : i]
		}
		run = 0
	}
	return ""
}

func prevSeasonLabel(label string) string {
	if start, end, ok := splitSpanLabel(label); ok {
		return fmt.Sprintf("%d-%d", start-1, end-1)
	}
	if len(label) == 4 && firstYear(label) == label {
		var y int
		fmt.Sscanf(label, "%d", &y)
		return fmt.Sprintf("%d", y-1)
	}
	return label
}

// splitSpanLabel parsea labels "YYYY-YYYY".
func splitSpanLabel(label string) (start, end int, ok bool) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(label, "%d-%d", &start, &end); err != nil {
		return 0, 0, false
	}
	return start, end, true
}
