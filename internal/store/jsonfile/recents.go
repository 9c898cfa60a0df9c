// Package jsonfile implements file-backed stores using a single JSON file
// with atomic writes.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/shelf/internal/core/recents"
)

// RecentsFile is the root JSON structure stored on disk.
type RecentsFile struct {
	Entries []recents.Entry `json:"entries"`
}

// RecentsStore implements recents.Store using a JSON file for persistence.
type RecentsStore struct {
	path string
	mu   sync.RWMutex
}

var _ recents.Store = (*RecentsStore)(nil)

// NewRecentsStore creates a new JSON file recents store at the given path.
func NewRecentsStore(path string) *RecentsStore {
	return &RecentsStore{path: path}
}

// List returns all entries, newest first.
func (s *RecentsStore) List() ([]recents.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return file.Entries, nil
}

// Get returns the entry for the given locator. Returns recents.ErrNotFound
// if not present.
func (s *RecentsStore) Get(locator string) (recents.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return recents.Entry{}, err
	}

	for _, entry := range file.Entries {
		if entry.Locator == locator {
			return entry, nil
		}
	}

	return recents.Entry{}, recents.ErrNotFound
}

// Touch records an open, replacing any previous entry for the same locator
// and pruning to maxEntries.
func (s *RecentsStore) Touch(entry recents.Entry, maxEntries int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	// Drop any previous entry for the same document
	kept := file.Entries[:0]
	for _, e := range file.Entries {
		if e.Locator != entry.Locator {
			kept = append(kept, e)
		}
	}

	// Prepend new entry (newest first)
	file.Entries = append([]recents.Entry{entry}, kept...)

	// Prune to max entries
	if maxEntries > 0 && len(file.Entries) > maxEntries {
		file.Entries = file.Entries[:maxEntries]
	}

	return s.save(file)
}

// Clear removes all entries.
func (s *RecentsStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(RecentsFile{Entries: []recents.Entry{}})
}

// load reads the recents file from disk.
// Returns an empty RecentsFile if the file doesn't exist.
func (s *RecentsStore) load() (RecentsFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return RecentsFile{}, nil
		}
		return RecentsFile{}, err
	}

	if len(data) == 0 {
		return RecentsFile{}, nil
	}

	var file RecentsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return RecentsFile{}, err
	}

	return file, nil
}

// save writes the recents file to disk atomically.
func (s *RecentsStore) save(file RecentsFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
