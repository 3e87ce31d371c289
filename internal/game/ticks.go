package game

import (
	"time"

	"github.com/spikan/soda-clicker/internal/loop"
	"github.com/spikan/soda-clicker/internal/save"
	"github.com/spikan/soda-clicker/internal/state"
)

// Attach registers the game's tick callbacks on l.
func (g *Game) Attach(l *loop.Loop) {
	l.OnProgress("drink-progress", g.ProgressTick)
	l.OnProduction("drink", g.DrinkTick)
	l.OnRefresh("play-time", g.RefreshTick)
}

// ProgressTick updates the drink progress fraction.
func (g *Game) ProgressTick(now time.Time) error {
	s := g.store.GetState()
	drink := s.Drink
	drink.Progress = loop.Progress(now, drink.LastDrink, drink.Rate)
	g.store.SetState(state.Patch{Drink: &drink})
	return nil
}

// DrinkTick awards one drink of production when the drink timer is due and
// advances the autosave counter.
func (g *Game) DrinkTick(now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.store.GetState()
	awarded, last := loop.CheckDrink(now, s.Drink.LastDrink, s.Drink.Rate)
	if !awarded {
		return nil
	}

	spd := s.Production.SPD
	drink := s.Drink
	drink.LastDrink = last
	drink.Progress = loop.Progress(now, last, drink.Rate)

	auto := save.ComputeAutosaveCounter(save.AutosaveInput{
		Enabled:     s.Options.AutosaveEnabled,
		Counter:     s.AutosaveCounter,
		IntervalSec: s.Options.AutosaveInterval,
		DrinkRateMs: drink.Rate.Milliseconds(),
	})

	g.store.SetState(state.Patch{
		Sips:            state.Ptr(s.Sips.Add(spd)),
		TotalSipsEarned: state.Ptr(s.TotalSipsEarned.Add(spd)),
		Drink:           &drink,
		AutosaveCounter: &auto.NextCounter,
	})
	g.fx.Drink()
	g.checkLevel()

	if auto.ShouldSave && g.saves != nil {
		g.saves.RequestSave()
	}
	return nil
}

// RefreshTick accumulates play time and writes any debounced save.
func (g *Game) RefreshTick(now time.Time) error {
	g.mu.Lock()
	last := g.lastRefresh
	g.lastRefresh = now
	g.mu.Unlock()

	if !last.IsZero() && now.After(last) {
		played := g.store.GetState().PlayTime + now.Sub(last)
		g.store.SetState(state.Patch{PlayTime: &played})
	}

	if g.saves == nil {
		return nil
	}
	return g.saves.Flush(false)
}
