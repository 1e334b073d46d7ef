package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Store reads and writes the catalog document at a fixed path. Saves are
// atomic (temp file + rename) and serialized through a sibling lock file so
// an overlapping run can never interleave a partial write.
type Store struct {
	Path string
}

// Load returns the persisted document. The boolean is false when no catalog
// has ever been written; that is not an error.
func (s Store) Load() (Document, bool, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, fmt.Errorf("catalog load: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, false, fmt.Errorf("catalog load: %w", err)
	}
	return doc, true, nil
}

// Save writes the document. A failed save leaves the previous file intact.
func (s Store) Save(doc Document) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("catalog save: %w", err)
	}
	lock := flock.New(s.Path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("catalog save: lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog save: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("catalog save: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("catalog save: %w", err)
	}
	return nil
}
