// Package recents defines the recently-opened document records kept across
// runs so the shell can restore a document's last page and feed the
// "opened" sort field.
package recents

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no entry exists for a locator.
var ErrNotFound = errors.New("recents entry not found")

// Entry records one opened document.
type Entry struct {
	Locator  string    `json:"locator"`
	Name     string    `json:"name"`
	Page     int       `json:"page"` // last viewed page, >= 1
	OpenedAt time.Time `json:"opened_at"`
}

// Store persists recently-opened entries.
type Store interface {
	// List returns all entries, newest first.
	List() ([]Entry, error)

	// Get returns the entry for the given locator.
	// Returns ErrNotFound if not present.
	Get(locator string) (Entry, error)

	// Touch records an open, replacing any previous entry for the same
	// locator and pruning to maxEntries (0 keeps everything).
	Touch(entry Entry, maxEntries int) error

	// Clear removes all entries.
	Clear() error
}
