// Package game wires the store, production engine, click tracker, save
// system and feedback hooks into the playable Soda Clicker rules.
package game

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spikan/soda-clicker/internal/bignum"
	"github.com/spikan/soda-clicker/internal/clicks"
	"github.com/spikan/soda-clicker/internal/clock"
	"github.com/spikan/soda-clicker/internal/config"
	"github.com/spikan/soda-clicker/internal/feedback"
	"github.com/spikan/soda-clicker/internal/production"
	"github.com/spikan/soda-clicker/internal/save"
	"github.com/spikan/soda-clicker/internal/state"
)

// clickRateWindow is the trailing window for the clicks-per-second display.
const clickRateWindow = 5 * time.Second

// Deps are the collaborators of a Game. Only Balance is required.
type Deps struct {
	Balance  config.Balance
	Store    *state.Store
	Saves    *save.System
	Feedback *feedback.Dispatcher
	Clock    clock.Clock
	Seed     int64 // 0 seeds from the current time
	Logger   *log.Logger
}

// ClickResult describes one click.
type ClickResult struct {
	Value     bignum.Num
	Critical  bool
	Stats     state.ClickStats
	LeveledUp bool
}

// Offer is an upgrade with its current price.
type Offer struct {
	production.Upgrade
	Owned      int
	Cost       bignum.Num
	Affordable bool
}

// Game applies player actions and timed production to the store.
type Game struct {
	balance config.Balance
	rates   production.Rates
	catalog []production.Upgrade

	store   *state.Store
	saves   *save.System
	tracker *clicks.Tracker
	fx      *feedback.Dispatcher
	clock   clock.Clock
	logger  *log.Logger

	mu          sync.Mutex
	rng         *rand.Rand
	lastRefresh time.Time
}

// FreshState returns a constructor for the state of a new game under b.
func FreshState(b config.Balance) func(now time.Time) state.State {
	rates := production.RatesFromBalance(b)
	return func(now time.Time) state.State {
		s := state.New(now, rates.BaseDrinkRate)
		s.Production = production.Recalc(s.Counts, rates, production.MultipliersFromBalance(b, s.Level))
		s.Drink.Rate = s.Production.DrinkRate
		return s
	}
}

// New creates a game and brings the store's derived production up to date.
func New(d Deps) *Game {
	if d.Clock == nil {
		d.Clock = clock.Real{}
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Store == nil {
		d.Store = state.NewStore(FreshState(d.Balance)(d.Clock.Now()), d.Logger)
	}
	if d.Feedback == nil {
		d.Feedback = feedback.NewDispatcher(feedback.Hooks{}, d.Logger)
	}
	if d.Seed == 0 {
		d.Seed = time.Now().UnixNano()
	}

	window := time.Duration(d.Balance.Streak.WindowMs) * time.Millisecond
	g := &Game{
		balance: d.Balance,
		rates:   production.RatesFromBalance(d.Balance),
		catalog: production.Catalog(d.Balance),
		store:   d.Store,
		saves:   d.Saves,
		tracker: clicks.NewTracker(d.Store, d.Clock, d.Feedback, window, d.Balance.Streak.RingSize),
		fx:      d.Feedback,
		clock:   d.Clock,
		logger:  d.Logger,
		rng:     rand.New(rand.NewSource(d.Seed)),
	}
	g.Recalculate()
	return g
}

// Store returns the game's state store.
func (g *Game) Store() *state.Store { return g.store }

// State returns the current snapshot.
func (g *Game) State() state.State { return g.store.GetState() }

// Balance returns the economy the game was built with.
func (g *Game) Balance() config.Balance { return g.balance }

// Recalculate writes production derived from the current holdings and level
// into the store.
func (g *Game) Recalculate() {
	s := g.store.GetState()
	res := production.Recalc(s.Counts, g.rates, production.MultipliersFromBalance(g.balance, s.Level))
	drink := s.Drink
	drink.Rate = res.DrinkRate
	g.store.SetState(state.Patch{Production: &res, Drink: &drink})
}

// Click adds the click value, rolling for a critical, and updates the
// streak.
func (g *Game) Click() ClickResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.store.GetState()
	value := s.Production.ClickValue
	critical := s.Production.CriticalChance > 0 && g.rng.Float64() < s.Production.CriticalChance
	if critical {
		value = value.MulFloat(s.Production.CriticalMultiplier)
	}

	g.store.SetState(state.Patch{
		Sips:            state.Ptr(s.Sips.Add(value)),
		TotalSipsEarned: state.Ptr(s.TotalSipsEarned.Add(value)),
	})
	stats := g.tracker.TrackClick()
	if critical {
		g.fx.CriticalClick()
	}

	return ClickResult{
		Value:     value,
		Critical:  critical,
		Stats:     stats,
		LeveledUp: g.checkLevel(),
	}
}

// Buy purchases one unit of an upgrade. It reports false, changing nothing,
// when the upgrade is unknown, already at save.MaxCount or unaffordable.
func (g *Game) Buy(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, ok := production.Find(g.catalog, id)
	if !ok {
		return false
	}
	s := g.store.GetState()
	owned := s.Counts.Get(id)
	if owned >= save.MaxCount {
		return false
	}
	cost := u.Cost(owned)
	if s.Sips.LT(cost) {
		return false
	}

	patch := state.Patch{
		Sips:   state.Ptr(s.Sips.Sub(cost)),
		Counts: state.WithCount(s, id, owned+1),
	}
	if id == config.UpgradeFasterDrink {
		patch.Drink = &state.DrinkTimer{Rate: s.Drink.Rate, LastDrink: g.clock.Now()}
	}
	g.store.SetState(patch)
	g.Recalculate()

	g.logger.Debug("upgrade bought", "upgrade", id, "owned", owned+1, "cost", cost.String())
	g.fx.Purchase()
	if g.saves != nil {
		g.saves.RequestSave()
	}
	return true
}

// Costs lists every upgrade with the price of its next unit.
func (g *Game) Costs() []Offer {
	s := g.store.GetState()
	out := make([]Offer, 0, len(g.catalog))
	for _, u := range g.catalog {
		owned := s.Counts.Get(u.ID)
		cost := u.Cost(owned)
		out = append(out, Offer{
			Upgrade:    u,
			Owned:      owned,
			Cost:       cost,
			Affordable: s.Sips.GTE(cost),
		})
	}
	return out
}

// NextLevelAt returns the total sips earned needed for the next level.
func (g *Game) NextLevelAt() bignum.Num {
	return production.LevelThreshold(g.balance.Level, g.store.GetState().Level)
}

// ClickRate returns recent clicks per second.
func (g *Game) ClickRate() float64 {
	return g.tracker.Rate(clickRateWindow)
}

// checkLevel raises the level when total earnings cross thresholds.
func (g *Game) checkLevel() bool {
	s := g.store.GetState()
	next := min(production.LevelFor(g.balance.Level, s.TotalSipsEarned, s.Level), save.MaxLevel)
	if next <= s.Level {
		return false
	}
	g.store.SetState(state.Patch{Level: &next})
	g.Recalculate()
	g.logger.Info("level up", "level", next)
	g.fx.LevelUp()
	return true
}
