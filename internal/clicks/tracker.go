// Package clicks tracks total clicks and the time-windowed click streak.
package clicks

import (
	"time"

	"github.com/spikan/soda-clicker/internal/clock"
	"github.com/spikan/soda-clicker/internal/feedback"
	"github.com/spikan/soda-clicker/internal/state"
)

// Defaults for the streak window and the recent-click ring.
const (
	DefaultStreakWindow = 3 * time.Second
	DefaultRingSize     = 32
)

// Tracker updates click counters in the store and keeps a bounded ring of
// recent click times for rate displays. The ring is informational only and is
// never persisted.
type Tracker struct {
	store  *state.Store
	clock  clock.Clock
	sounds *feedback.Dispatcher
	window time.Duration

	ring  []time.Time
	head  int
	count int
}

// NewTracker creates a tracker. Non-positive window or size use the defaults.
func NewTracker(store *state.Store, clk clock.Clock, sounds *feedback.Dispatcher, window time.Duration, ringSize int) *Tracker {
	if window <= 0 {
		window = DefaultStreakWindow
	}
	if ringSize <= 0 {
		ringSize = DefaultRingSize
	}
	return &Tracker{
		store:  store,
		clock:  clk,
		sounds: sounds,
		window: window,
		ring:   make([]time.Time, ringSize),
	}
}

// TrackClick records a click and returns the updated click stats.
func (t *Tracker) TrackClick() state.ClickStats {
	now := t.clock.Now()
	cur := t.store.GetState()
	stats := cur.Clicks

	stats.Total++
	if !stats.LastClick.IsZero() && now.Sub(stats.LastClick) <= t.window {
		stats.Streak++
	} else {
		stats.Streak = 1
	}
	if stats.Streak > stats.BestStreak {
		stats.BestStreak = stats.Streak
	}
	stats.LastClick = now

	t.store.SetState(state.Patch{Clicks: &stats})
	t.push(now)

	if cur.Options.ClickSoundsEnabled {
		t.sounds.Click()
	}
	return stats
}

// push appends to the ring, overwriting the oldest entry when full.
func (t *Tracker) push(ts time.Time) {
	t.ring[t.head] = ts
	t.head = (t.head + 1) % len(t.ring)
	if t.count < len(t.ring) {
		t.count++
	}
}

// Recent returns recorded click times, oldest first.
func (t *Tracker) Recent() []time.Time {
	out := make([]time.Time, 0, t.count)
	start := (t.head - t.count + len(t.ring)) % len(t.ring)
	for i := 0; i < t.count; i++ {
		out = append(out, t.ring[(start+i)%len(t.ring)])
	}
	return out
}

// Rate returns clicks per second over the trailing window.
func (t *Tracker) Rate(window time.Duration) float64 {
	if window <= 0 {
		return 0
	}
	cutoff := t.clock.Now().Add(-window)
	n := 0
	for _, ts := range t.Recent() {
		if ts.After(cutoff) {
			n++
		}
	}
	return float64(n) / window.Seconds()
}
