// Package game holds the gamification rules: the lazy daily rollover and the
// item pick/use mutators. Everything operates on the in-memory game state;
// persistence stays with the caller.
package game

import (
	"time"

	"github.com/zoesbreath/baobab-server/internal/domain"
)

const (
	// Days without login before the rose withers.
	witherAfterDays = 3

	// Planet stock redraw range, upper bound exclusive.
	restockMin = 3
	restockMax = 5
)

const millisPerDay = 24 * 60 * 60 * 1000

// dayNumber truncates to whole days since the epoch. Day granularity, not
// elapsed hours: 23:59 to 00:01 counts as a day boundary.
func dayNumber(t time.Time) int64 {
	return t.UnixMilli() / millisPerDay
}

// Rollover reconciles time-dependent state on game entry:
//
//  1. the one-time first-launch flag is cleared,
//  2. 3+ days since the last login wither the rose (sticky, see UseItem),
//  3. a new calendar day redraws every planet's remaining stock from
//     [restockMin, restockMax),
//  4. the login timestamp moves to now.
//
// Running it again within the same calendar day changes nothing beyond
// step 1's already-cleared flag. intn supplies the randomness (math/rand
// Intn in production, fixed in tests).
func Rollover(g *domain.Game, now time.Time, intn func(n int) int) {
	if g.IsInitial {
		g.IsInitial = false
	}

	if dayNumber(now)-dayNumber(g.LoggedInAt) >= witherAfterDays {
		g.IsWithered = true
	}

	if dayNumber(now)-dayNumber(g.ItemUpdatedAt) >= 1 {
		for planet := range g.ItemLeft {
			g.ItemLeft[planet] = restockMin + intn(restockMax-restockMin)
		}
		g.ItemUpdatedAt = now
	}

	g.LoggedInAt = now
}
