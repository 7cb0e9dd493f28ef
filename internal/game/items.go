package game

import (
	"errors"
	"fmt"

	"github.com/zoesbreath/baobab-server/internal/domain"
)

var (
	// ErrInsufficientItems: the named item's held count is zero.
	ErrInsufficientItems = errors.New("no items of that kind left to use")

	// ErrInvalidItemUse: no guard in the use-item chain matched.
	ErrInvalidItemUse = errors.New("item does not apply to the current state")
)

// ExhaustedError reports a planet with no stock left to pick from.
type ExhaustedError struct {
	Planet string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no items left on planet %s", e.Planet)
}

// PickItem moves one item from a planet's stock into the gamer's inventory.
// Fails without mutation when the planet is exhausted.
func PickItem(g *domain.Game, kind, planet string) error {
	if g.ItemLeft[planet] <= 0 {
		return &ExhaustedError{Planet: planet}
	}
	g.ItemHave[kind]++
	g.ItemLeft[planet]--
	return nil
}

// UseItem multiplexes the four use-item behaviours as an ordered guard
// chain; exactly one branch executes per call.
//
//	(a) an item was named but none are held        -> ErrInsufficientItems
//	(b) plusScore present and >= 0                 -> score gain, boosted x2
//	    by a booster; each 1000-point boundary crossed raises the dust
//	    stage (capped); a named item is consumed
//	(c) cleaner while dust is present              -> dust -1, cleaner -1
//	(d) sprinkler while withered                   -> revive, sprinkler -1
//	(e) nothing matched                            -> ErrInvalidItemUse
func UseItem(g *domain.Game, kind string, plusScore *int) error {
	if kind != "" && g.ItemHave[kind] <= 0 {
		return ErrInsufficientItems
	}

	switch {
	case plusScore != nil && *plusScore >= 0:
		add := *plusScore
		if kind == domain.ItemBooster {
			add *= 2
		}
		prev := g.Score
		g.Score += add
		for crossed := g.Score/1000 - prev/1000; crossed > 0 && g.DustStage < domain.MaxDustStage; crossed-- {
			g.DustStage++
		}
		if kind != "" {
			g.ItemHave[kind]--
		}

	case kind == domain.ItemCleaner && g.DustStage > 0:
		g.DustStage--
		g.ItemHave[kind]--

	case kind == domain.ItemSprinkler && g.IsWithered:
		g.IsWithered = false
		g.ItemHave[kind]--

	default:
		return ErrInvalidItemUse
	}
	return nil
}
