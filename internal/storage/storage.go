// Package storage holds the flat-file JSON codec shared by the
// file-backed repositories. Each collection lives in a single UTF-8
// JSON file that is read whole and rewritten whole on every mutation.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// EnsureDir creates the data directory if it does not exist yet.
// Failure here is unrecoverable and should terminate startup.
func EnsureDir(dir string) error {
	err := os.MkdirAll(dir, 0o755)

	if err != nil {
		return fmt.Errorf("create data dir %s: %w", dir, err)
	}

	return nil
}

// Exists reports whether the backing file has been created.
func Exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// Load reads a whole collection. A missing file is not an error, the
// collection simply does not exist yet and loads as empty.
func Load[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var items []T

	err = json.Unmarshal(raw, &items)

	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

// Save rewrites the whole collection. Indented output keeps the files
// hand-inspectable, which is half the point of flat-file storage.
func Save[T any](path string, items []T) error {
	raw, err := json.MarshalIndent(items, "", "  ")

	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	err = os.WriteFile(path, raw, 0o644)

	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
