package save

import (
	"sync"
	"time"
)

// Keys under which records are persisted.
const (
	KeyGame    = "save"
	KeyOptions = "options"
)

// Persister is a key/value byte store. Get returns ErrNotFound for a missing
// key; Delete of a missing key is not an error.
type Persister interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
}

// HistoryEntry summarizes one successful save.
type HistoryEntry struct {
	SaveID      string
	Sips        string
	Level       int
	TotalClicks int64
	SavedAt     time.Time
}

// History receives an entry after every successful save.
type History interface {
	AppendHistory(e HistoryEntry) error
}

// MemoryPersister keeps records in memory.
type MemoryPersister struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: make(map[string][]byte)}
}

// Put implements Persister.
func (m *MemoryPersister) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Get implements Persister.
func (m *MemoryPersister) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Delete implements Persister.
func (m *MemoryPersister) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Writes returns the number of Put calls so far.
func (m *MemoryPersister) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
