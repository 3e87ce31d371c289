package state

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Listener receives the full snapshot after every change.
type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

// Store holds the live state and notifies subscribers synchronously.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []subscription
	nextID    int
	logger    *log.Logger
}

// NewStore creates a store seeded with initial. A nil logger discards output.
func NewStore(initial State, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		state:  initial,
		logger: logger,
	}
}

// GetState returns the current snapshot.
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetState merges a partial update and notifies listeners in subscription
// order with the new snapshot.
func (s *Store) SetState(p Patch) {
	s.mu.Lock()
	s.state = p.apply(s.state)
	snap := s.state
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.notify(listeners, snap)
}

// Reset replaces the whole state, e.g. after loading or deleting a save.
func (s *Store) Reset(next State) {
	s.mu.Lock()
	s.state = next
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.notify(listeners, next)
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.listeners {
		if sub.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// snapshotListeners copies the listener list. Caller must hold mu.
func (s *Store) snapshotListeners() []subscription {
	out := make([]subscription, len(s.listeners))
	copy(out, s.listeners)
	return out
}

// notify runs outside the lock so listeners may read or write the store.
func (s *Store) notify(listeners []subscription, snap State) {
	for _, sub := range listeners {
		s.dispatch(sub, snap)
	}
}

// dispatch isolates a single listener; a panic is logged and swallowed.
func (s *Store) dispatch(sub subscription, snap State) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("state listener panicked", "listener", sub.id, "error", fmt.Sprint(r))
		}
	}()
	sub.fn(snap)
}
