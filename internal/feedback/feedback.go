// Package feedback carries the optional audio/visual hooks the game fires on
// gameplay and save events. Any hook may be nil.
package feedback

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Hooks is a set of optional no-argument feedback functions.
type Hooks struct {
	Click         func()
	CriticalClick func()
	Purchase      func()
	Drink         func()
	LevelUp       func()
	Saved         func()
	Deleted       func()
}

// Dispatcher fires hooks, swallowing panics so feedback can never break
// gameplay.
type Dispatcher struct {
	hooks  Hooks
	logger *log.Logger
}

// NewDispatcher wraps hooks. A nil logger discards output.
func NewDispatcher(hooks Hooks, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{hooks: hooks, logger: logger}
}

// Click, CriticalClick, Purchase, Drink, LevelUp, Saved and Deleted fire the
// matching hook. They are safe on a nil Dispatcher.
func (d *Dispatcher) Click()         { d.fire("click", d.hooks.Click) }
func (d *Dispatcher) CriticalClick() { d.fire("critical_click", d.hooks.CriticalClick) }
func (d *Dispatcher) Purchase()      { d.fire("purchase", d.hooks.Purchase) }
func (d *Dispatcher) Drink()         { d.fire("drink", d.hooks.Drink) }
func (d *Dispatcher) LevelUp()       { d.fire("level_up", d.hooks.LevelUp) }
func (d *Dispatcher) Saved()         { d.fire("saved", d.hooks.Saved) }
func (d *Dispatcher) Deleted()       { d.fire("deleted", d.hooks.Deleted) }

func (d *Dispatcher) fire(name string, fn func()) {
	if d == nil || fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("feedback hook panicked", "hook", name, "error", fmt.Sprint(r))
		}
	}()
	fn()
}
