package loop

import (
	"sync"
	"time"
)

// ManualHost queues frames until Fire is called. The Bubble Tea model fires
// it on every tick message, the idle command from a ticker, tests directly.
type ManualHost struct {
	mu      sync.Mutex
	pending func(now time.Time)
	seq     uint64
}

// NewManualHost creates a host with no pending frame.
func NewManualHost() *ManualHost {
	return &ManualHost{}
}

// RequestFrame implements Host.
func (h *ManualHost) RequestFrame(fn func(now time.Time)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	seq := h.seq
	h.pending = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.seq == seq {
			h.pending = nil
		}
	}
}

// Pending reports whether a frame is queued.
func (h *ManualHost) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending != nil
}

// Fire runs the queued frame, if any, and reports whether one ran.
func (h *ManualHost) Fire(now time.Time) bool {
	h.mu.Lock()
	fn := h.pending
	h.pending = nil
	h.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(now)
	return true
}
