package game

import (
	"errors"
	"time"

	"github.com/spikan/soda-clicker/internal/config"
	"github.com/spikan/soda-clicker/internal/save"
	"github.com/spikan/soda-clicker/internal/state"
)

// ErrNoSaveSystem is returned by persistence actions on a game built without
// a save system.
var ErrNoSaveSystem = errors.New("game: no save system")

// Load restores the persisted game and recomputes production.
func (g *Game) Load() (save.LoadReport, error) {
	if g.saves == nil {
		return save.LoadReport{}, ErrNoSaveSystem
	}
	rep, err := g.saves.Load()
	if err != nil {
		return rep, err
	}
	g.afterReplace()
	return rep, nil
}

// Save writes the game immediately.
func (g *Game) Save() error {
	if g.saves == nil {
		return ErrNoSaveSystem
	}
	_, err := g.saves.PerformSaveSnapshot()
	return err
}

// Reset deletes the save and starts over, keeping options.
func (g *Game) Reset() error {
	if g.saves == nil {
		return ErrNoSaveSystem
	}
	if err := g.saves.DeleteSave(); err != nil {
		return err
	}
	g.afterReplace()
	return nil
}

// Export returns a portable code for the current game.
func (g *Game) Export() (string, error) {
	return save.Export(save.BuildRecord(g.store.GetState(), g.clock.Now()))
}

// Import replaces the current game with the one in code and saves it.
func (g *Game) Import(code string) (save.LoadReport, error) {
	if g.saves == nil {
		return save.LoadReport{}, ErrNoSaveSystem
	}
	rec, rep, err := save.Import(code)
	if err != nil {
		return rep, err
	}
	if err := g.saves.Restore(rec); err != nil {
		return rep, err
	}
	g.afterReplace()
	return rep, nil
}

func (g *Game) afterReplace() {
	g.Recalculate()
	g.mu.Lock()
	g.lastRefresh = time.Time{}
	g.mu.Unlock()
}

// ToggleAutosave flips autosave and persists the options.
func (g *Game) ToggleAutosave() error {
	return g.updateOptions(func(o *config.Options) {
		o.AutosaveEnabled = !o.AutosaveEnabled
	})
}

// ToggleClickSounds flips click sounds and persists the options.
func (g *Game) ToggleClickSounds() error {
	return g.updateOptions(func(o *config.Options) {
		o.ClickSoundsEnabled = !o.ClickSoundsEnabled
	})
}

// ToggleMusic flips music and persists the options.
func (g *Game) ToggleMusic() error {
	return g.updateOptions(func(o *config.Options) {
		o.MusicEnabled = !o.MusicEnabled
	})
}

// SetAutosaveInterval sets the autosave interval in seconds, clamped to the
// supported range, and persists the options.
func (g *Game) SetAutosaveInterval(sec int) error {
	return g.updateOptions(func(o *config.Options) {
		o.AutosaveInterval = sec
	})
}

func (g *Game) updateOptions(fn func(*config.Options)) error {
	opts := g.store.GetState().Options
	fn(&opts)
	opts = opts.Normalize()

	patch := state.Patch{Options: &opts}
	if !opts.AutosaveEnabled {
		patch.AutosaveCounter = state.Ptr(0)
	}
	g.store.SetState(patch)

	if g.saves == nil {
		return nil
	}
	return g.saves.SaveOptions(opts)
}
