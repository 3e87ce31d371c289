// Package storage provides SQLite-based persistence for saves, options and
// save history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/spikan/soda-clicker/internal/save"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// HistoryStats aggregates the save history of one game.
type HistoryStats struct {
	Saves     int
	MaxLevel  int
	FirstSave time.Time
	LastSave  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
		// Expand ~ to home directory
		if dbPath != "" && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS save_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			save_id TEXT NOT NULL,
			sips TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			total_clicks INTEGER NOT NULL DEFAULT 0,
			saved_at_ms INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_save_history_save_id ON save_history(save_id, saved_at_ms DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put implements save.Persister.
func (s *Store) Put(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// Get implements save.Persister.
func (s *Store) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, save.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return data, nil
}

// Delete implements save.Persister.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}

// AppendHistory implements save.History.
func (s *Store) AppendHistory(e save.HistoryEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO save_history (save_id, sips, level, total_clicks, saved_at_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		e.SaveID, e.Sips, e.Level, e.TotalClicks, e.SavedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append save history: %w", err)
	}
	return nil
}

// RecentHistory returns the newest history entries for a save, newest first.
func (s *Store) RecentHistory(saveID string, limit int) ([]save.HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT save_id, sips, level, total_clicks, saved_at_ms
		 FROM save_history
		 WHERE save_id = ?
		 ORDER BY saved_at_ms DESC, id DESC
		 LIMIT ?`,
		saveID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save history: %w", err)
	}
	defer rows.Close()

	var entries []save.HistoryEntry
	for rows.Next() {
		var e save.HistoryEntry
		var savedAt int64
		if err := rows.Scan(&e.SaveID, &e.Sips, &e.Level, &e.TotalClicks, &savedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.SavedAt = time.UnixMilli(savedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HistoryStats returns aggregated history for a save. A save with no history
// yields zero stats.
func (s *Store) HistoryStats(saveID string) (HistoryStats, error) {
	var stats HistoryStats
	var first, last sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(level), 0), MIN(saved_at_ms), MAX(saved_at_ms)
		 FROM save_history WHERE save_id = ?`,
		saveID,
	).Scan(&stats.Saves, &stats.MaxLevel, &first, &last)
	if err != nil {
		return HistoryStats{}, fmt.Errorf("storage: cannot get history stats: %w", err)
	}
	if first.Valid {
		stats.FirstSave = time.UnixMilli(first.Int64)
	}
	if last.Valid {
		stats.LastSave = time.UnixMilli(last.Int64)
	}
	return stats, nil
}

// ClearHistory deletes all history rows for a save.
func (s *Store) ClearHistory(saveID string) error {
	if _, err := s.db.Exec("DELETE FROM save_history WHERE save_id = ?", saveID); err != nil {
		return fmt.Errorf("storage: cannot clear save history: %w", err)
	}
	return nil
}

// Ensure Store implements the save interfaces
var (
	_ save.Persister = (*Store)(nil)
	_ save.History   = (*Store)(nil)
)
