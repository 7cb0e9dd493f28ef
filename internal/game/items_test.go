package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zoesbreath/baobab-server/internal/domain"
)

func newGame() domain.Game {
	return domain.NewGame(time.Date(2021, 8, 10, 9, 0, 0, 0, time.UTC))
}

func intRef(n int) *int { return &n }

func TestPickItem(t *testing.T) {
	g := newGame()
	g.ItemLeft["forest"] = 2

	require.NoError(t, PickItem(&g, domain.ItemCleaner, "forest"))
	require.Equal(t, 1, g.ItemHave[domain.ItemCleaner])
	require.Equal(t, 1, g.ItemLeft["forest"])
}

func TestPickItemExhaustedPlanet(t *testing.T) {
	g := newGame()
	g.ItemLeft["forest"] = 0
	before := g

	err := PickItem(&g, domain.ItemCleaner, "forest")
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, "forest", exhausted.Planet)

	// No mutation on failure.
	require.Equal(t, before.ItemHave, g.ItemHave)
	require.Equal(t, before.ItemLeft, g.ItemLeft)
}

func TestUseItemBoosterDoublesScoreAndRaisesDust(t *testing.T) {
	g := newGame()
	g.Score = 700
	g.ItemHave[domain.ItemBooster] = 2

	require.NoError(t, UseItem(&g, domain.ItemBooster, intRef(600)))
	require.Equal(t, 1900, g.Score) // 700 + 2*600
	require.Equal(t, 1, g.DustStage)
	require.Equal(t, 1, g.ItemHave[domain.ItemBooster])
}

func TestUseItemScoreWithoutItem(t *testing.T) {
	g := newGame()
	g.Score = 100

	require.NoError(t, UseItem(&g, "", intRef(250)))
	require.Equal(t, 350, g.Score)
	require.Equal(t, 0, g.DustStage)
}

func TestUseItemDustPerThousandBoundaryCapped(t *testing.T) {
	g := newGame()

	// 0 -> 3500 crosses three boundaries.
	require.NoError(t, UseItem(&g, "", intRef(3500)))
	require.Equal(t, 3, g.DustStage)

	// Further milestones cannot push past the cap.
	require.NoError(t, UseItem(&g, "", intRef(2000)))
	require.Equal(t, domain.MaxDustStage, g.DustStage)
}

func TestUseItemInsufficientGuardRunsFirst(t *testing.T) {
	g := newGame()
	g.Score = 700
	// Booster named but not held: even a scoring call must fail.
	err := UseItem(&g, domain.ItemBooster, intRef(600))
	require.ErrorIs(t, err, ErrInsufficientItems)
	require.Equal(t, 700, g.Score)
}

func TestUseItemCleaner(t *testing.T) {
	g := newGame()
	g.DustStage = 2
	g.ItemHave[domain.ItemCleaner] = 1

	require.NoError(t, UseItem(&g, domain.ItemCleaner, nil))
	require.Equal(t, 1, g.DustStage)
	require.Equal(t, 0, g.ItemHave[domain.ItemCleaner])
}

func TestUseItemCleanerWithoutDust(t *testing.T) {
	g := newGame()
	g.ItemHave[domain.ItemCleaner] = 1

	err := UseItem(&g, domain.ItemCleaner, nil)
	require.ErrorIs(t, err, ErrInvalidItemUse)
	require.Equal(t, 1, g.ItemHave[domain.ItemCleaner])
}

func TestUseItemSprinkler(t *testing.T) {
	g := newGame()
	g.IsWithered = true
	g.ItemHave[domain.ItemSprinkler] = 1

	require.NoError(t, UseItem(&g, domain.ItemSprinkler, nil))
	require.False(t, g.IsWithered)
	require.Equal(t, 0, g.ItemHave[domain.ItemSprinkler])
}

func TestUseItemSprinklerWhileHealthy(t *testing.T) {
	g := newGame()
	g.ItemHave[domain.ItemSprinkler] = 1

	require.ErrorIs(t, UseItem(&g, domain.ItemSprinkler, nil), ErrInvalidItemUse)
}

func TestUseItemNoArguments(t *testing.T) {
	g := newGame()
	require.ErrorIs(t, UseItem(&g, "", nil), ErrInvalidItemUse)
}
