package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spikan/soda-clicker/internal/save"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenMemory(t *testing.T) {
	store, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	if err := store.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	got, err := store.Get("k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get() = %q, %v; want v", got, err)
	}
}

func TestStorePutGetOverwrite(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put(save.KeyGame, []byte(`{"sips":"1"}`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put(save.KeyGame, []byte(`{"sips":"2"}`)); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}

	got, err := store.Get(save.KeyGame)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != `{"sips":"2"}` {
		t.Errorf("Get() = %s, want the overwritten value", got)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get("nothing")
	if !errors.Is(err, save.ErrNotFound) {
		t.Errorf("Get() error = %v, want save.ErrNotFound", err)
	}
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	store := openTestStore(t)

	store.Put(save.KeyGame, []byte("{}"))
	store.Put(save.KeyOptions, []byte("{}"))

	if err := store.Delete(save.KeyGame); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := store.Delete(save.KeyGame); err != nil {
		t.Fatalf("second Delete() failed: %v", err)
	}

	if _, err := store.Get(save.KeyGame); !errors.Is(err, save.ErrNotFound) {
		t.Errorf("save should be gone, got %v", err)
	}
	if _, err := store.Get(save.KeyOptions); err != nil {
		t.Errorf("options should not be affected by deleting the save: %v", err)
	}
}

func TestStoreHistory(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		err := store.AppendHistory(save.HistoryEntry{
			SaveID:      "a",
			Sips:        "100",
			Level:       i + 1,
			TotalClicks: int64(i * 10),
			SavedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("AppendHistory() failed: %v", err)
		}
	}
	store.AppendHistory(save.HistoryEntry{SaveID: "b", Sips: "1", Level: 9, SavedAt: base})

	entries, err := store.RecentHistory("a", 3)
	if err != nil {
		t.Fatalf("RecentHistory() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries with limit, got %d", len(entries))
	}
	// Newest first
	if entries[0].Level != 5 || entries[1].Level != 4 || entries[2].Level != 3 {
		t.Errorf("Entries not in expected order: %v", entries)
	}
	if !entries[0].SavedAt.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("SavedAt = %v, want %v", entries[0].SavedAt, base.Add(4*time.Minute))
	}

	stats, err := store.HistoryStats("a")
	if err != nil {
		t.Fatalf("HistoryStats() failed: %v", err)
	}
	if stats.Saves != 5 || stats.MaxLevel != 5 {
		t.Errorf("HistoryStats() = %+v, want 5 saves and max level 5", stats)
	}
	if !stats.FirstSave.Equal(base) {
		t.Errorf("FirstSave = %v, want %v", stats.FirstSave, base)
	}

	if err := store.ClearHistory("a"); err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}
	stats, _ = store.HistoryStats("a")
	if stats.Saves != 0 || !stats.LastSave.IsZero() {
		t.Errorf("Expected empty stats after clear, got %+v", stats)
	}

	other, _ := store.RecentHistory("b", 10)
	if len(other) != 1 {
		t.Errorf("History of other saves should not be affected by clearing")
	}
}

func TestStoreBacksSaveSystem(t *testing.T) {
	store := openTestStore(t)

	opts := []byte(`{"autosaveEnabled":false}`)
	if err := store.Put(save.KeyOptions, opts); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	data, err := store.Get(save.KeyOptions)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	got, _, err := save.DecodeOptions(data)
	if err != nil {
		t.Fatalf("DecodeOptions() failed: %v", err)
	}
	if got.AutosaveEnabled {
		t.Error("AutosaveEnabled should round-trip through sqlite as false")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
