// Package loop implements the drink-tick scheduler: a cooperative,
// frame-driven loop that runs progress, production and refresh callbacks in a
// fixed order on every frame delivered by a Host.
package loop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spikan/soda-clicker/internal/clock"
)

// DefaultRefreshInterval is the wall-clock cadence of refresh callbacks.
const DefaultRefreshInterval = time.Second

// Callback is invoked with the frame time.
type Callback func(now time.Time) error

// Host delivers frames. RequestFrame queues fn to run on the next frame and
// returns a function that cancels it. At most one frame is queued at a time.
type Host interface {
	RequestFrame(fn func(now time.Time)) (cancel func())
}

type namedCallback struct {
	name string
	fn   Callback
}

// Loop is the drink-tick scheduler.
//
// Start and Stop assume a single controller; they are not meant to be called
// from competing goroutines.
type Loop struct {
	host   Host
	clock  clock.Clock
	logger *log.Logger

	progress   []namedCallback
	production []namedCallback
	refresh    []namedCallback

	refreshEvery time.Duration
	lastRefresh  time.Time

	running bool
	cancel  func()
	frames  uint64
}

// Option configures a Loop.
type Option func(*Loop)

// WithRefreshInterval overrides the refresh cadence.
func WithRefreshInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.refreshEvery = d
		}
	}
}

// WithLogger sets the logger used for callback failures.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a stopped loop.
func New(host Host, clk clock.Clock, opts ...Option) *Loop {
	l := &Loop{
		host:         host,
		clock:        clk,
		logger:       log.New(io.Discard),
		refreshEvery: DefaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OnProgress registers a callback that runs first on every frame.
func (l *Loop) OnProgress(name string, fn Callback) {
	l.progress = append(l.progress, namedCallback{name: name, fn: fn})
}

// OnProduction registers a callback that runs after progress on every frame.
func (l *Loop) OnProduction(name string, fn Callback) {
	l.production = append(l.production, namedCallback{name: name, fn: fn})
}

// OnRefresh registers a callback that runs last, once per refresh interval.
func (l *Loop) OnRefresh(name string, fn Callback) {
	l.refresh = append(l.refresh, namedCallback{name: name, fn: fn})
}

// Start runs one synchronous pass of every callback, then begins requesting
// frames. Calling Start on a running loop does nothing.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true

	now := l.clock.Now()
	l.runAll(l.progress, now)
	l.runAll(l.production, now)
	l.runAll(l.refresh, now)
	l.lastRefresh = now

	l.logger.Debug("loop started", "refresh", l.refreshEvery)
	l.schedule()
}

// Stop cancels the pending frame. Stopping a stopped loop does nothing.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.logger.Debug("loop stopped", "frames", l.frames)
}

// Running reports whether the loop is active.
func (l *Loop) Running() bool {
	return l.running
}

// Frames returns how many frames have run since creation.
func (l *Loop) Frames() uint64 {
	return l.frames
}

func (l *Loop) schedule() {
	l.cancel = l.host.RequestFrame(l.frame)
}

// frame runs progress, then production, then refresh when due. The next
// frame is requested only after this one completes, so frames never overlap.
func (l *Loop) frame(now time.Time) {
	if !l.running {
		return
	}
	l.frames++

	l.runAll(l.progress, now)
	l.runAll(l.production, now)

	if now.Sub(l.lastRefresh) >= l.refreshEvery {
		l.runAll(l.refresh, now)
		l.lastRefresh = now
	}

	if l.running {
		l.schedule()
	}
}

func (l *Loop) runAll(cbs []namedCallback, now time.Time) {
	for _, cb := range cbs {
		l.run(cb, now)
	}
}

// run isolates one callback: errors and panics are logged, never propagated.
func (l *Loop) run(cb namedCallback, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop callback panicked", "callback", cb.name, "error", fmt.Sprint(r))
		}
	}()
	if err := cb.fn(now); err != nil {
		l.logger.Error("loop callback failed", "callback", cb.name, "error", err)
	}
}
