package analysis

// fixtures_test.go — temporadas sintéticas compartidas por los tests del motor.

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// testRand devuelve una fuente determinista para tests.
func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// roundRobinPairings genera los emparejamientos de una vuelta completa por el
// método del círculo: n-1 rondas, cada par se cruza exactamente una vez.
// Requiere un número par de equipos.
func roundRobinPairings(teams []string) [][][2]string {
	n := len(teams)
	rest := make([]string, n-1)
	copy(rest, teams[1:])

	var rounds [][][2]string
	for r := 0; r < n-1; r++ {
		line := append([]string{teams[0]}, rest...)
		var pairs [][2]string
		for i := 0; i < n/2; i++ {
			pairs = append(pairs, [2]string{line[i], line[n-1-i]})
		}
		rounds = append(rounds, pairs)

		// Rotar todos menos el primero
		rest = append(rest[1:], rest[0])
	}
	return rounds
}

// dominantSeason construye una doble vuelta donde winner gana todos sus
// partidos 1-0 y el resto empata 1-1. El caso extremo de dominio sostenido.
func dominantSeason(t *testing.T, id, winner string, teams []string) *domain.Season {
	t.Helper()

	var matches []domain.Match
	round := 0
	for leg := 0; leg < 2; leg++ {
		for _, pairs := range roundRobinPairings(teams) {
			round++
			for _, p := range pairs {
				home, away := p[0], p[1]
				if leg == 1 {
					home, away = away, home
				}
				m := domain.Match{SeasonID: id, Round: round, Home: home, Away: away, HomeGoals: 1, AwayGoals: 1}
				switch winner {
				case home:
					m.HomeGoals, m.AwayGoals = 1, 0
				case away:
					m.HomeGoals, m.AwayGoals = 0, 1
				}
				matches = append(matches, m)
			}
		}
	}

	season, err := domain.NewSeason(id, matches)
	require.NoError(t, err)
	return season
}

// allDrawsSeason construye una doble vuelta donde todos los partidos terminan
// 1-1: todos los equipos acaban exactamente empatados.
func allDrawsSeason(t *testing.T, id string, teams []string) *domain.Season {
	t.Helper()

	var matches []domain.Match
	round := 0
	for leg := 0; leg < 2; leg++ {
		for _, pairs := range roundRobinPairings(teams) {
			round++
			for _, p := range pairs {
				home, away := p[0], p[1]
				if leg == 1 {
					home, away = away, home
				}
				matches = append(matches, domain.Match{
					SeasonID: id, Round: round, Home: home, Away: away,
					HomeGoals: 1, AwayGoals: 1,
				})
			}
		}
	}

	season, err := domain.NewSeason(id, matches)
	require.NoError(t, err)
	return season
}

// lockFixtureSeason es el campeonato mínimo de cierre anticipado: cuatro
// equipos a una vuelta, A gana sus tres partidos (2-0, 3-0, 1-0) y B/C/D
// empatan entre sí. Con 6 puntos tras la ronda 2 y solo 3 en juego, el primer
// puesto de A queda cerrado en la ronda 2.
func lockFixtureSeason(t *testing.T) *domain.Season {
	t.Helper()

	id := "liga@/data/2016/"
	matches := []domain.Match{
		{SeasonID: id, Round: 1, Home: "A", Away: "B", HomeGoals: 2, AwayGoals: 0},
		{SeasonID: id, Round: 1, Home: "C", Away: "D", HomeGoals: 1, AwayGoals: 1},
		{SeasonID: id, Round: 2, Home: "A", Away: "C", HomeGoals: 3, AwayGoals: 0},
		{SeasonID: id, Round: 2, Home: "B", Away: "D", HomeGoals: 1, AwayGoals: 1},
		{SeasonID: id, Round: 3, Home: "A", Away: "D", HomeGoals: 1, AwayGoals: 0},
		{SeasonID: id, Round: 3, Home: "B", Away: "C", HomeGoals: 1, AwayGoals: 1},
	}
	season, err := domain.NewSeason(id, matches)
	require.NoError(t, err)
	return season
}
