// Package save persists the game: the autosave counter, the save record and
// its lenient decoder, debounced writes, options and export codes.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/spikan/soda-clicker/internal/clock"
	"github.com/spikan/soda-clicker/internal/config"
	"github.com/spikan/soda-clicker/internal/state"
)

// DefaultDebounceWindow is the minimum spacing between coalesced writes.
const DefaultDebounceWindow = time.Second

const fallbackDrinkRate = 5 * time.Second

// Deps configures a System.
type Deps struct {
	Store     *state.Store
	Persister Persister
	History   History // Optional
	Clock     clock.Clock
	Logger    *log.Logger

	// Debounce is the coalescing window for RequestSave. Zero uses
	// DefaultDebounceWindow.
	Debounce time.Duration

	// Fresh builds the state of a new game. Nil uses state.New with a
	// five-second drink rate.
	Fresh func(now time.Time) state.State

	OnSaved   func(Record)
	OnDeleted func()
}

// System reads and writes the game save.
type System struct {
	store     *state.Store
	persister Persister
	history   History
	clock     clock.Clock
	logger    *log.Logger
	debounce  time.Duration
	fresh     func(now time.Time) state.State
	onSaved   func(Record)
	onDeleted func()

	writeMu sync.Mutex // Serializes snapshots

	mu        sync.Mutex
	pending   bool
	lastWrite time.Time
}

// NewSystem creates a save system.
func NewSystem(d Deps) *System {
	if d.Clock == nil {
		d.Clock = clock.Real{}
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Debounce <= 0 {
		d.Debounce = DefaultDebounceWindow
	}
	if d.Fresh == nil {
		d.Fresh = func(now time.Time) state.State { return state.New(now, fallbackDrinkRate) }
	}
	return &System{
		store:     d.Store,
		persister: d.Persister,
		history:   d.History,
		clock:     d.Clock,
		logger:    d.Logger,
		debounce:  d.Debounce,
		fresh:     d.Fresh,
		onSaved:   d.OnSaved,
		onDeleted: d.OnDeleted,
	}
}

// PerformSaveSnapshot writes the current state immediately. Failures are
// logged and returned wrapped in ErrSaveSerialization; the game keeps running
// either way.
func (s *System) PerformSaveSnapshot() (Record, error) {
	s.writeMu.Lock()
	rec, err := s.snapshot()
	s.writeMu.Unlock()

	if err != nil {
		s.logger.Error("save failed", "error", err)
		return Record{}, err
	}
	if s.onSaved != nil {
		s.onSaved(rec)
	}
	return rec, nil
}

func (s *System) snapshot() (Record, error) {
	now := s.clock.Now()
	cur := s.store.GetState()
	if cur.SaveID == "" {
		cur.SaveID = uuid.NewString()
		s.store.SetState(state.Patch{SaveID: &cur.SaveID})
	}

	rec := BuildRecord(cur, now)
	data, err := EncodeRecord(rec)
	if err != nil {
		return Record{}, err
	}
	if err := s.persister.Put(KeyGame, data); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrSaveSerialization, err)
	}

	s.store.SetState(state.Patch{LastSaveTime: &now})

	s.mu.Lock()
	s.pending = false
	s.lastWrite = now
	s.mu.Unlock()

	if s.history != nil {
		entry := HistoryEntry{
			SaveID:      rec.SaveID,
			Sips:        rec.Sips.String(),
			Level:       rec.Level,
			TotalClicks: rec.TotalClicks,
			SavedAt:     now,
		}
		if err := s.history.AppendHistory(entry); err != nil {
			s.logger.Warn("save history not recorded", "error", err)
		}
	}

	s.logger.Debug("game saved", "sips", rec.Sips.String(), "level", rec.Level)
	return rec, nil
}

// RequestSave asks for a save. A request outside the debounce window is
// written at once; requests inside it are coalesced into one write performed
// by a later Flush.
func (s *System) RequestSave() {
	s.mu.Lock()
	s.pending = true
	s.mu.Unlock()

	_ = s.Flush(false)
}

// Flush writes a pending request once the debounce window has passed, or
// immediately when force is set.
func (s *System) Flush(force bool) error {
	s.mu.Lock()
	due := s.pending && (force || s.lastWrite.IsZero() || s.clock.Now().Sub(s.lastWrite) >= s.debounce)
	s.mu.Unlock()

	if !due {
		return nil
	}
	_, err := s.PerformSaveSnapshot()
	return err
}

// Pending reports whether a requested save has not been written yet.
func (s *System) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Load replaces the store contents with the persisted game. A missing save
// starts a fresh game. A corrupt save returns ErrSaveDeserialization and
// leaves the in-memory state untouched.
func (s *System) Load() (LoadReport, error) {
	now := s.clock.Now()

	opts, err := s.LoadOptions()
	if err != nil {
		s.logger.Warn("options unreadable, using defaults", "error", err)
	}

	data, err := s.persister.Get(KeyGame)
	if errors.Is(err, ErrNotFound) {
		fresh := s.fresh(now)
		fresh.Options = opts
		fresh.SaveID = uuid.NewString()
		s.store.Reset(fresh)
		return LoadReport{Fresh: true}, nil
	}
	if err != nil {
		return LoadReport{}, fmt.Errorf("%w: %w", ErrSaveDeserialization, err)
	}

	rec, rep, err := DecodeRecord(data)
	if err != nil {
		s.logger.Error("save is corrupt, keeping current state", "error", err)
		return rep, err
	}
	if !rep.Clean() {
		s.logger.Warn("save loaded with defaults", "missing", rep.Missing, "reset", rep.Reset)
	}

	s.restore(rec, opts, now)
	return rep, nil
}

// Restore replaces the game with rec, for example from an import code, and
// writes it out immediately.
func (s *System) Restore(rec Record) error {
	now := s.clock.Now()
	s.restore(rec, s.store.GetState().Options, now)
	_, err := s.PerformSaveSnapshot()
	return err
}

func (s *System) restore(rec Record, opts config.Options, now time.Time) {
	base := s.fresh(now)
	base.Options = opts
	next := ApplyRecord(rec, base)
	if next.SaveID == "" {
		next.SaveID = uuid.NewString()
	}
	s.store.Reset(next)

	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

// DeleteSave removes the persisted game and resets the store to a new game,
// keeping the player's options. Deleting when no save exists is not an error.
func (s *System) DeleteSave() error {
	s.writeMu.Lock()
	err := s.persister.Delete(KeyGame)
	s.writeMu.Unlock()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("save: delete: %w", err)
	}

	fresh := s.fresh(s.clock.Now())
	fresh.Options = s.store.GetState().Options
	s.store.Reset(fresh)

	s.mu.Lock()
	s.pending = false
	s.lastWrite = time.Time{}
	s.mu.Unlock()

	s.logger.Info("save deleted")
	if s.onDeleted != nil {
		s.onDeleted()
	}
	return nil
}

// SaveOptions persists o, clamped, under its own key.
func (s *System) SaveOptions(o config.Options) error {
	data, err := json.Marshal(o.Normalize())
	if err != nil {
		return fmt.Errorf("%w: options: %w", ErrSaveSerialization, err)
	}
	if err := s.persister.Put(KeyOptions, data); err != nil {
		return fmt.Errorf("%w: options: %w", ErrSaveSerialization, err)
	}
	return nil
}

// LoadOptions reads the options record. Missing options are the defaults;
// unreadable options are the defaults plus an error.
func (s *System) LoadOptions() (config.Options, error) {
	data, err := s.persister.Get(KeyOptions)
	if errors.Is(err, ErrNotFound) {
		return config.DefaultOptions(), nil
	}
	if err != nil {
		return config.DefaultOptions(), fmt.Errorf("%w: options: %w", ErrSaveDeserialization, err)
	}
	opts, _, err := DecodeOptions(data)
	return opts, err
}
