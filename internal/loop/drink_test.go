package loop

import (
	"math"
	"testing"
	"time"
)

func TestCheckDrinkAwardsOnceWithRemainder(t *testing.T) {
	now := epoch.Add(time.Hour)
	last := now.Add(-2500 * time.Millisecond)

	awarded, next := CheckDrink(now, last, time.Second)
	if !awarded {
		t.Fatal("expected a drink to be awarded")
	}
	if want := now.Add(-500 * time.Millisecond); !next.Equal(want) {
		t.Errorf("nextLast = %v, want %v (500ms remainder)", next, want)
	}

	// Immediately checking again awards nothing: only 500ms into the cycle
	awarded, again := CheckDrink(now, next, time.Second)
	if awarded || !again.Equal(next) {
		t.Error("second check should not award")
	}
}

func TestCheckDrinkBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		rate    time.Duration
		award   bool
		rem     time.Duration
	}{
		{"not yet", 999 * time.Millisecond, time.Second, false, 0},
		{"exactly one interval", time.Second, time.Second, true, 0},
		{"long gap", 10*time.Minute + 250*time.Millisecond, time.Second, true, 250 * time.Millisecond},
		{"zero rate", time.Hour, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := epoch.Add(time.Hour)
			last := now.Add(-tt.elapsed)
			awarded, next := CheckDrink(now, last, tt.rate)
			if awarded != tt.award {
				t.Fatalf("awarded = %v, want %v", awarded, tt.award)
			}
			if !awarded {
				if !next.Equal(last) {
					t.Error("last drink time should be unchanged without an award")
				}
				return
			}
			if got := now.Sub(next); got != tt.rem {
				t.Errorf("remainder = %v, want %v", got, tt.rem)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	now := epoch.Add(time.Hour)

	if got := Progress(now, now.Add(-250*time.Millisecond), time.Second); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("Progress = %v, want 0.25", got)
	}
	if got := Progress(now, now.Add(-3500*time.Millisecond), time.Second); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Progress past interval = %v, want 0.5", got)
	}
	if got := Progress(now, now.Add(time.Second), time.Second); got != 0 {
		t.Errorf("Progress with future last = %v, want 0", got)
	}
	if got := Progress(now, now, 0); got != 0 {
		t.Errorf("Progress with zero rate = %v, want 0", got)
	}
}
