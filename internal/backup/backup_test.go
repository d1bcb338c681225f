package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotCopiesAndPrunes(t *testing.T) {
	src := filepath.Join(t.TempDir(), "expenses.db")
	if err := os.WriteFile(src, []byte("db-content"), 0644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	stale := filepath.Join(dir, "expenses_20240101.db")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	// Non-snapshot files are left alone.
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	dst, err := Snapshot(src, dir)
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "db-content" {
		t.Fatalf("snapshot content = %q, %v", data, err)
	}
	if !strings.HasPrefix(filepath.Base(dst), "expenses_") || !strings.HasSuffix(dst, ".db") {
		t.Fatalf("unexpected snapshot name: %s", dst)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale snapshot should have been pruned")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("non-snapshot file should survive pruning")
	}
}

func TestSnapshotMissingDatabase(t *testing.T) {
	_, err := Snapshot(filepath.Join(t.TempDir(), "missing.db"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing database file")
	}
}

func TestSnapshotSameDayOverwrites(t *testing.T) {
	src := filepath.Join(t.TempDir(), "expenses.db")
	if err := os.WriteFile(src, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	if _, err := Snapshot(src, dir); err != nil {
		t.Fatalf("first snapshot: %v", err)
	}
	if err := os.WriteFile(src, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}
	dst, err := Snapshot(src, dir)
	if err != nil {
		t.Fatalf("second snapshot: %v", err)
	}

	data, _ := os.ReadFile(dst)
	if string(data) != "v2" {
		t.Fatalf("snapshot content = %q, want v2", data)
	}

	entries, _ := os.ReadDir(dir)
	dbCount := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".db") {
			dbCount++
		}
	}
	if dbCount != 1 {
		t.Fatalf("expected exactly one snapshot, got %d", dbCount)
	}
}
