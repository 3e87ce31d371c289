package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spikan/soda-clicker/internal/clock"
	"github.com/spikan/soda-clicker/internal/config"
	"github.com/spikan/soda-clicker/internal/feedback"
	"github.com/spikan/soda-clicker/internal/game"
	"github.com/spikan/soda-clicker/internal/save"
	"github.com/spikan/soda-clicker/internal/state"
	"github.com/spikan/soda-clicker/internal/storage"
)

// runtime is an opened database with a loaded game.
type runtime struct {
	db     *storage.Store
	saves  *save.System
	game   *game.Game
	clock  clock.Clock
	logger *log.Logger
}

// newLogger creates the command logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "soda",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// openLogFile opens ~/.soda/soda.log for appending.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, ".soda")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "soda.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// loadBalance resolves the balance file and applies the pace preset.
func loadBalance() (config.Balance, error) {
	pace := config.PacePreset(flagPace)
	if !config.IsKnownPace(pace) {
		return config.Balance{}, fmt.Errorf("unknown pace %q (want relaxed, normal or hard)", flagPace)
	}
	bal, err := config.LoadBalance(flagConfig)
	if err != nil {
		return config.Balance{}, err
	}
	config.ApplyPacePreset(&bal, pace)
	return bal, nil
}

// openRuntime opens the database and loads the saved game. A save that
// cannot be read is reported and the game starts fresh; it is overwritten
// only by the next save.
func openRuntime(logger *log.Logger, hooks feedback.Hooks) (*runtime, error) {
	bal, err := loadBalance()
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}

	clk := clock.Real{}
	fx := feedback.NewDispatcher(hooks, logger.WithPrefix("feedback"))
	fresh := game.FreshState(bal)
	store := state.NewStore(fresh(clk.Now()), logger.WithPrefix("store"))

	saves := save.NewSystem(save.Deps{
		Store:     store,
		Persister: db,
		History:   db,
		Clock:     clk,
		Logger:    logger.WithPrefix("save"),
		Debounce:  time.Duration(bal.Save.DebounceMs) * time.Millisecond,
		Fresh:     fresh,
		OnSaved:   func(save.Record) { fx.Saved() },
		OnDeleted: fx.Deleted,
	})

	g := game.New(game.Deps{
		Balance:  bal,
		Store:    store,
		Saves:    saves,
		Feedback: fx,
		Clock:    clk,
		Seed:     flagSeed,
		Logger:   logger.WithPrefix("game"),
	})

	rep, err := g.Load()
	switch {
	case err != nil:
		logger.Warn("could not load save, starting fresh", "error", err)
	case rep.Fresh:
		logger.Info("starting a new game")
	default:
		logger.Debug("save loaded", "sips", g.State().Sips.Short(), "level", g.State().Level)
	}

	return &runtime{db: db, saves: saves, game: g, clock: clk, logger: logger}, nil
}

// Close closes the database.
func (r *runtime) Close() {
	if err := r.db.Close(); err != nil {
		r.logger.Warn("closing database", "error", err)
	}
}
