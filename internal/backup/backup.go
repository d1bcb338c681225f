// Package backup implements the startup snapshot side channel: the store
// file is copied to a dated snapshot and older snapshots are pruned, keeping
// only the newest.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot copies the database file into dir as <name>_<YYYYMMDD>.db, removes
// every other .db file in dir, and returns the snapshot path. Running twice
// on the same day overwrites the day's snapshot.
func Snapshot(dbPath, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	timestamp := time.Now().Format("20060102")
	base := filepath.Base(dbPath)
	name := strings.TrimSuffix(base, ".db") + "_" + timestamp + ".db"
	dst := filepath.Join(dir, name)

	if err := copyFile(dbPath, dst); err != nil {
		return "", fmt.Errorf("copy database: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read backup directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".db") && entry.Name() != name {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				return "", fmt.Errorf("prune old snapshot %s: %w", entry.Name(), err)
			}
		}
	}

	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
