package tui

import (
	"sync"
	"time"

	"github.com/spikan/soda-clicker/internal/clock"
	"github.com/spikan/soda-clicker/internal/feedback"
)

const (
	flashDuration = 1500 * time.Millisecond
	pulseDuration = 150 * time.Millisecond
)

// Flash holds short-lived visual feedback: a banner message and a pulse
// shown on the cup after clicks and drinks. Feedback hooks write to it from
// inside game calls, the view reads it.
type Flash struct {
	mu         sync.Mutex
	clock      clock.Clock
	text       string
	textUntil  time.Time
	pulseUntil time.Time
}

// NewFlash creates an empty flash.
func NewFlash(clk clock.Clock) *Flash {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Flash{clock: clk}
}

// Show displays text for the flash duration.
func (f *Flash) Show(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	f.textUntil = f.clock.Now().Add(flashDuration)
}

// Pulse highlights the cup briefly.
func (f *Flash) Pulse() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pulseUntil = f.clock.Now().Add(pulseDuration)
}

// Text returns the active banner, or "" once it has expired.
func (f *Flash) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clock.Now().After(f.textUntil) {
		return ""
	}
	return f.text
}

// Pulsing reports whether the cup highlight is active.
func (f *Flash) Pulsing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.clock.Now().After(f.pulseUntil)
}

// Hooks returns feedback hooks that render into this flash.
func (f *Flash) Hooks() feedback.Hooks {
	return feedback.Hooks{
		Click:         f.Pulse,
		CriticalClick: func() { f.Show("CRITICAL SIP!") },
		Purchase:      func() { f.Show("Upgrade bought") },
		Drink:         f.Pulse,
		LevelUp:       func() { f.Show("LEVEL UP!") },
		Saved:         func() { f.Show("Game saved") },
		Deleted:       func() { f.Show("Save deleted") },
	}
}
