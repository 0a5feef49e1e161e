package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

// Store persists one JSON document as a whole-file snapshot. Save writes to
// a temp file in the same directory and renames it over the target, so a
// crash mid-write never leaves a truncated store behind.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load unmarshals the snapshot into dest. A missing file is not an error;
// dest is left as-is and the caller starts from its zero value.
func (s *Store) Load(dest interface{}) error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}

	if len(raw) == 0 {
		return nil
	}

	if err := jsoniter.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode snapshot %s: %w", s.path, err)
	}

	return nil
}

// Save atomically overwrites the snapshot with src.
func (s *Store) Save(src interface{}) error {
	raw, err := jsoniter.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot %s: %w", s.path, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot %s: %w", s.path, err)
	}

	return nil
}
