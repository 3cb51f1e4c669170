package storage

import (
	"encoding/json"
	"fmt"
	"os"
)

// Store writes transcript documents into a single output directory.
// It is not idempotency-aware: Save overwrites unconditionally, and callers
// own the skip-if-exists policy via Exists.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: output directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create output directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the derived document path for a video within this store.
func (s *Store) Path(title, videoID string) string {
	return DocumentPath(s.dir, title, videoID)
}

// Exists reports whether a document already exists at path.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Save writes the document as indented UTF-8 JSON at path, atomically
// (temp file + rename) so a crashed run never leaves a truncated resume
// marker behind. Non-ASCII and HTML characters are preserved verbatim.
func (s *Store) Save(doc *Document, path string) error {
	w, err := NewAtomicWriter(path)
	if err != nil {
		return fmt.Errorf("storage: save %s: %w", doc.VideoID, err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		w.Abort()
		return fmt.Errorf("storage: encode %s: %w", doc.VideoID, err)
	}

	if err := w.Commit(); err != nil {
		return fmt.Errorf("storage: save %s: %w", doc.VideoID, err)
	}
	return nil
}
