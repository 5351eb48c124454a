// ABOUTME: File names and atomic write helpers for the archive data directory
// ABOUTME: All persisted artifacts go through write-temp-then-rename
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File names inside the data directory.
const (
	MetadataFile = "metadata.json"
	IndexFile    = "index.bin"
	InsightsFile = "insights.json"
	TimelineFile = "timeline.json"
)

// atomicWrite writes via a temp file in the target directory and renames it
// into place, so readers never observe a partially written file.
func atomicWrite(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// writeJSON marshals v with indentation and writes it atomically.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	return atomicWrite(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteJSON exposes atomic JSON writing for derived artifacts such as the
// timeline index.
func WriteJSON(path string, v interface{}) error {
	return writeJSON(path, v)
}
