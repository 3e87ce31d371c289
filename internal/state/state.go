// Package state owns the single mutable game snapshot. Every other component
// reads through GetState and writes through SetState; nothing else holds a
// writable reference to persisted fields.
package state

import (
	"time"

	"github.com/spikan/soda-clicker/internal/bignum"
	"github.com/spikan/soda-clicker/internal/config"
	"github.com/spikan/soda-clicker/internal/production"
)

// DrinkTimer tracks the drink cycle.
type DrinkTimer struct {
	Rate      time.Duration // Interval between drinks
	LastDrink time.Time     // When the last drink was awarded
	Progress  float64       // Fraction of the current cycle elapsed, in [0, 1)
}

// ClickStats tracks click and streak counters.
type ClickStats struct {
	Total      int64
	Streak     int
	BestStreak int
	LastClick  time.Time
}

// State is a complete game snapshot. It holds no maps or slices, so a copy
// returned by GetState cannot be used to mutate the store.
type State struct {
	Sips            bignum.Num
	TotalSipsEarned bignum.Num

	Counts     production.Counts
	Production production.Result // Cached derived values for display and saves
	Level      int

	Drink  DrinkTimer
	Clicks ClickStats

	Options         config.Options
	AutosaveCounter int

	PlayTime     time.Duration
	LastSaveTime time.Time
	SaveID       string
}

// New returns the starting state of a fresh game.
func New(now time.Time, drinkRate time.Duration) State {
	return State{
		Level: 1,
		Drink: DrinkTimer{
			Rate:      drinkRate,
			LastDrink: now,
		},
		Options: config.DefaultOptions(),
	}
}

// Patch is a partial update. Only non-nil fields are applied.
//
// Updates are shallow: a non-nil nested struct such as Counts or Options
// replaces the whole struct, it is not merged field by field. To change one
// count, copy the current Counts first (see WithCount) or every other count
// is reset to zero.
type Patch struct {
	Sips            *bignum.Num
	TotalSipsEarned *bignum.Num

	Counts     *production.Counts
	Production *production.Result
	Level      *int

	Drink  *DrinkTimer
	Clicks *ClickStats

	Options         *config.Options
	AutosaveCounter *int

	PlayTime     *time.Duration
	LastSaveTime *time.Time
	SaveID       *string
}

// apply returns s with the patch merged in.
func (p Patch) apply(s State) State {
	if p.Sips != nil {
		s.Sips = *p.Sips
	}
	if p.TotalSipsEarned != nil {
		s.TotalSipsEarned = *p.TotalSipsEarned
	}
	if p.Counts != nil {
		s.Counts = *p.Counts
	}
	if p.Production != nil {
		s.Production = *p.Production
	}
	if p.Level != nil {
		s.Level = *p.Level
	}
	if p.Drink != nil {
		s.Drink = *p.Drink
	}
	if p.Clicks != nil {
		s.Clicks = *p.Clicks
	}
	if p.Options != nil {
		s.Options = *p.Options
	}
	if p.AutosaveCounter != nil {
		s.AutosaveCounter = *p.AutosaveCounter
	}
	if p.PlayTime != nil {
		s.PlayTime = *p.PlayTime
	}
	if p.LastSaveTime != nil {
		s.LastSaveTime = *p.LastSaveTime
	}
	if p.SaveID != nil {
		s.SaveID = *p.SaveID
	}
	return s
}

// WithCount returns a Counts patch that copies the current counts and
// replaces only one of them.
func WithCount(cur State, id string, n int) *production.Counts {
	c := cur.Counts.With(id, n)
	return &c
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}
