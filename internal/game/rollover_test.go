package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zoesbreath/baobab-server/internal/domain"
)

func fixedIntn(v int) func(int) int {
	return func(n int) int { return v % n }
}

func TestRolloverClearsInitialFlagOnce(t *testing.T) {
	now := time.Date(2021, 8, 10, 9, 0, 0, 0, time.UTC)
	g := domain.NewGame(now)
	require.True(t, g.IsInitial)

	Rollover(&g, now, fixedIntn(0))
	require.False(t, g.IsInitial)

	Rollover(&g, now, fixedIntn(0))
	require.False(t, g.IsInitial)
}

func TestRolloverWithersAfterThreeDays(t *testing.T) {
	start := time.Date(2021, 8, 10, 23, 0, 0, 0, time.UTC)
	g := domain.NewGame(start)

	// Two days later: still fine.
	Rollover(&g, start.AddDate(0, 0, 2), fixedIntn(0))
	require.False(t, g.IsWithered)

	g.LoggedInAt = start
	Rollover(&g, start.AddDate(0, 0, 3), fixedIntn(0))
	require.True(t, g.IsWithered)

	// Withering is sticky: later logins do not clear it.
	Rollover(&g, start.AddDate(0, 0, 4), fixedIntn(0))
	require.True(t, g.IsWithered)
}

func TestRolloverUsesDayGranularityNotElapsedHours(t *testing.T) {
	// 23:30 -> 00:30 next day is one hour of wall clock but one whole day.
	lastNight := time.Date(2021, 8, 10, 23, 30, 0, 0, time.UTC)
	g := domain.NewGame(lastNight)

	Rollover(&g, time.Date(2021, 8, 11, 0, 30, 0, 0, time.UTC), fixedIntn(1))
	for planet := range domain.PlanetSeed {
		require.Equal(t, 4, g.ItemLeft[planet], planet)
	}
}

func TestRolloverRestocksPlanetsDaily(t *testing.T) {
	start := time.Date(2021, 8, 10, 9, 0, 0, 0, time.UTC)
	g := domain.NewGame(start)
	for planet := range g.ItemLeft {
		g.ItemLeft[planet] = 0
	}

	next := start.AddDate(0, 0, 1)
	Rollover(&g, next, fixedIntn(0))
	for planet := range domain.PlanetSeed {
		require.Equal(t, 3, g.ItemLeft[planet], planet)
	}
	require.Equal(t, next, g.ItemUpdatedAt)
	require.Equal(t, next, g.LoggedInAt)
}

func TestRolloverIdempotentWithinSameDay(t *testing.T) {
	start := time.Date(2021, 8, 10, 9, 0, 0, 0, time.UTC)
	g := domain.NewGame(start)

	first := start.AddDate(0, 0, 1)
	Rollover(&g, first, fixedIntn(1))
	snapshotLeft := map[string]int{}
	for p, n := range g.ItemLeft {
		snapshotLeft[p] = n
	}
	updatedAt := g.ItemUpdatedAt

	// Same calendar day, later hour: no restock, no wither change.
	later := first.Add(6 * time.Hour)
	Rollover(&g, later, fixedIntn(0))
	require.Equal(t, snapshotLeft, g.ItemLeft)
	require.Equal(t, updatedAt, g.ItemUpdatedAt)
	require.False(t, g.IsWithered)
	require.Equal(t, later, g.LoggedInAt)
}

func TestRolloverRedrawRange(t *testing.T) {
	start := time.Date(2021, 8, 10, 9, 0, 0, 0, time.UTC)
	for draw := 0; draw < 4; draw++ {
		g := domain.NewGame(start)
		Rollover(&g, start.AddDate(0, 0, 1), fixedIntn(draw))
		for planet, n := range g.ItemLeft {
			require.GreaterOrEqual(t, n, 3, planet)
			require.Less(t, n, 5, planet)
		}
	}
}
