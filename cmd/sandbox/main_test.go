package main

import (
	"bytes"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"trafficsandbox.ai/internal/persistence/indexdb"
	"trafficsandbox.ai/internal/sim/world"
)

func TestPlay_InitialModeFailureReturnsError(t *testing.T) {
	dir := t.TempDir()
	if err := world.NewMapStore(dir).Save(world.Synthetic("grid_4x4", 4, 1)); err != nil {
		t.Fatalf("save map: %v", err)
	}

	var logs bytes.Buffer
	root := newRootCmd(log.New(&logs, "", 0))
	root.SetIn(strings.NewReader(""))
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"play", "--data", dir, "--map", "grid_4x4", "--mode", "play_scenario:missing"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "initial mode") {
		t.Fatalf("err=%v want initial mode failure", err)
	}

	// The index was closed on the way out, so it reopens cleanly and holds
	// no session for the mode that never started.
	idx, err := indexdb.OpenSQLite(filepath.Join(dir, "index", "sessions.sqlite"))
	if err != nil {
		t.Fatalf("reopen index: %v", err)
	}
	defer idx.Close()
	got, err := idx.Sessions("grid_4x4")
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("sessions=%+v want none", got)
	}
}
