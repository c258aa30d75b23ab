// Package storage persists the inventory to pipe-delimited text
// files, one logical record per line.  Loading is deliberately
// tolerant: a missing file is treated as an empty store and a line
// that does not parse into the expected shape is skipped with a log
// message, never aborting the load, so a single corrupt record cannot
// take every other valid record down with it.  Saving rewrites the
// whole file through a temp-file-and-rename so a crash mid-write
// never leaves a truncated store behind.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// TimeLayout is the fixed timestamp format shared by every store.
// Persisted timestamps must round-trip through this exact pattern.
const TimeLayout = "2006-01-02 15:04:05"

// writeAtomic writes data to path by writing a temp file in the same
// directory and renaming it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
