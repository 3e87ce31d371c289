package clicks

import (
	"testing"
	"time"

	"github.com/spikan/soda-clicker/internal/clock"
	"github.com/spikan/soda-clicker/internal/config"
	"github.com/spikan/soda-clicker/internal/feedback"
	"github.com/spikan/soda-clicker/internal/state"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestTracker(ringSize int, hooks feedback.Hooks) (*Tracker, *state.Store, *clock.Fake) {
	clk := clock.NewFake(epoch)
	store := state.NewStore(state.New(epoch, 5*time.Second), nil)
	tr := NewTracker(store, clk, feedback.NewDispatcher(hooks, nil), 3*time.Second, ringSize)
	return tr, store, clk
}

func TestStreakWithinWindow(t *testing.T) {
	tr, store, clk := newTestTracker(8, feedback.Hooks{})

	tr.TrackClick()
	clk.Advance(time.Second)
	tr.TrackClick()
	clk.Advance(2 * time.Second)
	stats := tr.TrackClick()

	if stats.Streak != 3 {
		t.Errorf("Streak = %d, want 3", stats.Streak)
	}
	if stats.BestStreak < 3 {
		t.Errorf("BestStreak = %d, want >= 3", stats.BestStreak)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if store.GetState().Clicks != stats {
		t.Error("store should hold the returned stats")
	}
}

func TestStreakResetsAfterWindow(t *testing.T) {
	tr, _, clk := newTestTracker(8, feedback.Hooks{})

	for i := 0; i < 3; i++ {
		tr.TrackClick()
		clk.Advance(500 * time.Millisecond)
	}

	clk.Advance(5 * time.Second)
	stats := tr.TrackClick()

	if stats.Streak != 1 {
		t.Errorf("Streak = %d, want 1 after the window", stats.Streak)
	}
	if stats.BestStreak != 3 {
		t.Errorf("BestStreak = %d, want 3 kept", stats.BestStreak)
	}
	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
}

func TestRingIsBounded(t *testing.T) {
	tr, _, clk := newTestTracker(4, feedback.Hooks{})

	for i := 0; i < 10; i++ {
		tr.TrackClick()
		clk.Advance(100 * time.Millisecond)
	}

	recent := tr.Recent()
	if len(recent) != 4 {
		t.Fatalf("len(Recent()) = %d, want 4", len(recent))
	}
	// Oldest kept is click #7 (index 6)
	if want := epoch.Add(600 * time.Millisecond); !recent[0].Equal(want) {
		t.Errorf("oldest = %v, want %v", recent[0], want)
	}
	for i := 1; i < len(recent); i++ {
		if !recent[i].After(recent[i-1]) {
			t.Error("Recent() should be ordered oldest first")
		}
	}
}

func TestRate(t *testing.T) {
	tr, _, clk := newTestTracker(16, feedback.Hooks{})

	for i := 0; i < 5; i++ {
		tr.TrackClick()
		clk.Advance(200 * time.Millisecond)
	}

	if got := tr.Rate(time.Second); got != 5 {
		t.Errorf("Rate(1s) = %v, want 5", got)
	}
	clk.Advance(10 * time.Second)
	if got := tr.Rate(time.Second); got != 0 {
		t.Errorf("Rate after idle = %v, want 0", got)
	}
}

func TestClickSoundRespectsOption(t *testing.T) {
	sounds := 0
	tr, store, _ := newTestTracker(4, feedback.Hooks{Click: func() { sounds++ }})

	tr.TrackClick()
	if sounds != 1 {
		t.Errorf("sounds = %d, want 1", sounds)
	}

	opts := config.DefaultOptions()
	opts.ClickSoundsEnabled = false
	store.SetState(state.Patch{Options: &opts})
	tr.TrackClick()
	if sounds != 1 {
		t.Errorf("sound played with click sounds disabled")
	}
}

func TestFailingSoundDoesNotBreakClick(t *testing.T) {
	tr, _, _ := newTestTracker(4, feedback.Hooks{Click: func() { panic("no audio device") }})
	if stats := tr.TrackClick(); stats.Total != 1 {
		t.Errorf("Total = %d, want 1", stats.Total)
	}
}
