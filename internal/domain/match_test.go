package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_Points(t *testing.T) {
	home := Match{HomeGoals: 2, AwayGoals: 0}
	assert.Equal(t, 3, home.HomePoints())
	assert.Equal(t, 0, home.AwayPoints())

	draw := Match{HomeGoals: 1, AwayGoals: 1}
	assert.Equal(t, 1, draw.HomePoints())
	assert.Equal(t, 1, draw.AwayPoints())

	away := Match{HomeGoals: 0, AwayGoals: 3}
	assert.Equal(t, 0, away.HomePoints())
	assert.Equal(t, 3, away.AwayPoints())
}

func TestNewSeason(t *testing.T) {
	matches := []Match{
		{SeasonID: "liga@/data/2016/", Round: 2, Home: "C", Away: "A", HomeGoals: 1, AwayGoals: 1},
		{SeasonID: "liga@/data/2016/", Round: 1, Home: "A", Away: "B", HomeGoals: 2, AwayGoals: 0},
		{SeasonID: "otra@/data/2016/", Round: 1, Home: "X", Away: "Y", HomeGoals: 0, AwayGoals: 0},
		{SeasonID: "liga@/data/2016/", Round: 1, Home: "C", Away: "D", HomeGoals: 0, AwayGoals: 1},
	}

	s, err := NewSeason("liga@/data/2016/", matches)
	require.NoError(t, err)

	assert.Equal(t, "liga", s.League)
	assert.Equal(t, "2016", s.Label)
	assert.Equal(t, 2, s.Rounds)
	// Roster ordenado, solo equipos de la temporada pedida
	assert.Equal(t, []string{"A", "B", "C", "D"}, s.Teams)
	// Partidos ordenados por ronda y local
	assert.Equal(t, 3, len(s.Matches))
	assert.Equal(t, 1, s.Matches[0].Round)
	assert.Equal(t, "A", s.Matches[0].Home)
	assert.Equal(t, "C", s.Matches[1].Home)
	assert.Equal(t, 2, s.Matches[2].Round)
}

func TestNewSeason_NoMatches(t *testing.T) {
	_, err := NewSeason("missing", []Match{{SeasonID: "other", Round: 1, Home: "A", Away: "B"}})
	require.Error(t, err)

	var dataErr *DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, "missing", dataErr.SeasonID)
	assert.True(t, errors.Is(err, ErrNoMatches))
}

func TestSeason_GlobalRates(t *testing.T) {
	matches := []Match{
		{SeasonID: "s", Round: 1, Home: "A", Away: "B", HomeGoals: 2, AwayGoals: 0},
		{SeasonID: "s", Round: 1, Home: "C", Away: "D", HomeGoals: 1, AwayGoals: 1},
		{SeasonID: "s", Round: 2, Home: "B", Away: "C", HomeGoals: 0, AwayGoals: 1},
		{SeasonID: "s", Round: 2, Home: "D", Away: "A", HomeGoals: 3, AwayGoals: 1},
	}
	s, err := NewSeason("s", matches)
	require.NoError(t, err)

	rates := s.GlobalRates()
	assert.InDelta(t, 0.5, rates.Home, 1e-9)
	assert.InDelta(t, 0.25, rates.Draw, 1e-9)
	assert.InDelta(t, 0.25, rates.Away, 1e-9)
	assert.InDelta(t, 1.0, rates.Home+rates.Draw+rates.Away, 1e-9)
}

func TestSeason_RoundMatches(t *testing.T) {
	matches := []Match{
		{SeasonID: "s", Round: 1, Home: "A", Away: "B"},
		{SeasonID: "s", Round: 2, Home: "B", Away: "A"},
		{SeasonID: "s", Round: 1, Home: "C", Away: "D"},
	}
	s, err := NewSeason("s", matches)
	require.NoError(t, err)

	assert.Len(t, s.RoundMatches(1), 2)
	assert.Len(t, s.RoundMatches(2), 1)
	assert.Empty(t, s.RoundMatches(3))
}

func TestParseSeasonID(t *testing.T) {
	tests := []struct {
		id     string
		league string
		label  string
	}{
		{"brasileirao@/data/2015/serie-a/", "brasileirao", "2015"},
		{"laliga@seasons/2010", "laliga", "2010"},
		{"sin-arroba", "sin-arroba", "unknown"},
		{"liga@/sin/anio/", "liga", "unknown"},
		// Secuencias de más de 4 dígitos no son años
		{"liga@/id/123456/x2014y/", "liga", "2014"},
	}
	for _, tt := range tests {
		league, label := parseSeasonID(tt.id)
		assert.Equal(t, tt.league, league, tt.id)
		assert.Equal(t, tt.label, label, tt.id)
	}
}

func TestSeason_PrevLabel(t *testing.T) {
	assert.Equal(t, "2014", (&Season{Label: "2015"}).PrevLabel())
	assert.Equal(t, "2014-2015", (&Season{Label: "2015-2016"}).PrevLabel())
	// Formato no reconocido: se devuelve sin tocar
	assert.Equal(t, "unknown", (&Season{Label: "unknown"}).PrevLabel())
}
