//go:build sqlite

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRunCommandSQLitePersistsRun(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ratchet.db")

	args := []string{
		"run",
		"--store", "sqlite",
		"--db-path", dbPath,
		"--shape", "adjacent",
		"--s", "0.1",
		"--s-right", "0.1",
		"--size", "4",
		"--size-right", "4",
		"--pop", "50",
		"--gens", "5",
		"--u-del", "0.2",
		"--seed", "11",
	}
	if err := run(ctx, args); err != nil {
		t.Fatalf("run command: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected sqlite db at %s: %v", dbPath, err)
	}

	// The persisted run is queryable from a fresh process-style invocation.
	if err := run(ctx, []string{"runs", "--store", "sqlite", "--db-path", dbPath}); err != nil {
		t.Fatalf("runs command: %v", err)
	}
	if err := run(ctx, []string{"series", "--store", "sqlite", "--db-path", dbPath, "--latest", "--name", "counts_right"}); err != nil {
		t.Fatalf("series command: %v", err)
	}
	if err := run(ctx, []string{"counts", "--store", "sqlite", "--db-path", dbPath, "--latest"}); err != nil {
		t.Fatalf("counts command: %v", err)
	}
}

func TestSeriesCommandRequiresTarget(t *testing.T) {
	if err := run(context.Background(), []string{"series"}); err == nil {
		t.Fatal("expected error without --run-id or --latest")
	}
}
