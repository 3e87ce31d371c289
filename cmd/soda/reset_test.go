package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spikan/soda-clicker/internal/feedback"
	"github.com/spikan/soda-clicker/internal/save"
	"github.com/spikan/soda-clicker/internal/storage"
)

func TestResetReportsDeletion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "soda.db")
	oldDB, oldYes := flagDBPath, flagResetYes
	t.Cleanup(func() { flagDBPath, flagResetYes = oldDB, oldYes })
	flagDBPath = dbPath
	flagResetYes = true

	logger, err := newLogger(&bytes.Buffer{})
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	rt, err := openRuntime(logger, feedback.Hooks{})
	if err != nil {
		t.Fatalf("openRuntime failed: %v", err)
	}
	if err := rt.game.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	rt.Close()

	var out bytes.Buffer
	resetCmd.SetOut(&out)
	t.Cleanup(func() { resetCmd.SetOut(nil) })
	if err := runReset(resetCmd, nil); err != nil {
		t.Fatalf("runReset failed: %v", err)
	}
	if !strings.Contains(out.String(), "Save deleted") {
		t.Errorf("output = %q, want the deletion notice", out.String())
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()
	if _, err := db.Get(save.KeyGame); !errors.Is(err, save.ErrNotFound) {
		t.Errorf("Get after reset error = %v, want ErrNotFound", err)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	old := flagResetYes
	t.Cleanup(func() { flagResetYes = old })
	flagResetYes = false

	if err := runReset(resetCmd, nil); err == nil {
		t.Error("runReset without --yes should fail")
	}
}
