// Package item defines the document and folder domain types for a
// processed library.
package item

import (
	"math"
	"time"
)

// Kind classifies a document by how the viewer should treat it.
type Kind string

// Supported document kinds.
const (
	KindPlain    Kind = "plain"    // plain PDF without page structure metadata
	KindEbook    Kind = "ebook"    // paginated ebook backed by a source PDF/EPUB
	KindNotebook Kind = "notebook" // hand-written notebook rendered to pages
)

// IsValid reports whether the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case KindPlain, KindEbook, KindNotebook:
		return true
	default:
		return false
	}
}

// Timestamps carries the raw timestamp strings attached to an item.
//
// Values stay unparsed at the domain boundary: the processor that emits the
// library index is not under our control and malformed values are an accepted
// edge case. Parsing happens on demand via EpochMillis, which degrades to NaN
// instead of repairing or rejecting.
type Timestamps struct {
	Modified string `json:"last_modified"`
	Opened   string `json:"last_opened"`
	Created  string `json:"date_created"`
}

// EpochMillis parses a raw timestamp into an epoch-millisecond key.
// Returns NaN when the value cannot be parsed; NaN keys compare as
// "neither greater nor less" during sorting, leaving malformed items in
// no particular position.
func EpochMillis(raw string) float64 {
	if raw == "" {
		return math.NaN()
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return math.NaN()
	}
	return float64(t.UnixMilli())
}

// Document is a single viewable document in the library.
type Document struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"kind"`
	Name      string `json:"name"`
	Parent    string `json:"parent"`
	Locator   string `json:"locator"`   // opaque handle to the viewable content
	Thumbnail string `json:"thumbnail"` // locator for the preview image, may be empty

	CurrentPage int   `json:"current_page"` // >= 1
	PageCount   int   `json:"page_count"`   // >= CurrentPage
	FileSize    int64 `json:"file_size"`    // bytes

	Timestamps

	// Navigation intent attached by the shell when opening this document.
	// Zero values mean "no intent".
	OpenAtPage   int    `json:"open_at_page,omitempty"`
	OpenAtSearch string `json:"open_at_search,omitempty"`
}

// Folder groups documents and other folders in the library tree.
type Folder struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Parent string `json:"parent"`

	ItemCount int   `json:"item_count"` // direct children
	TotalSize int64 `json:"total_size"` // bytes, recursive

	Timestamps
}
