// Package sorting implements the pure, copy-on-sort ordering engine for
// library folders and documents.
package sorting

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/colonyops/shelf/internal/core/item"
)

// Field selects the ordering key for folders and documents.
type Field string

// Supported sort fields.
const (
	FieldModified Field = "modified"
	FieldOpened   Field = "opened"
	FieldCreated  Field = "created"
	FieldSize     Field = "size"
	FieldPages    Field = "pages"
	FieldAlpha    Field = "alpha"
)

// Fields lists all supported fields in cycling order for the UI.
var Fields = []Field{FieldModified, FieldOpened, FieldCreated, FieldSize, FieldPages, FieldAlpha}

// IsValid reports whether the field is one of the supported values.
// An unknown field is never an error: it sorts nothing (see compare).
func (f Field) IsValid() bool {
	return slices.Contains(Fields, f)
}

// State is the user-selected sort criteria. It is owned by whoever renders
// the collection (TUI model, ls command) and passed in explicitly.
type State struct {
	Field      Field `yaml:"field" json:"field"`
	Descending bool  `yaml:"descending" json:"descending"`
}

// DefaultState returns the initial sort selection: most-recently-modified
// ordering is the UI default, ascending direction.
func DefaultState() State {
	return State{Field: FieldModified, Descending: false}
}

// keys holds the precomputed ordering keys for one item. Timestamp keys are
// epoch milliseconds and may be NaN for malformed source values; NaN keys
// compare equal to everything, so malformed items keep their relative input
// order under the stable sort.
type keys struct {
	name     string
	modified float64
	opened   float64
	created  float64
	size     float64
	pages    float64
}

func folderKeys(f item.Folder) keys {
	return keys{
		name:     f.Name,
		modified: item.EpochMillis(f.Modified),
		opened:   item.EpochMillis(f.Opened),
		created:  item.EpochMillis(f.Created),
		size:     float64(f.TotalSize),
		pages:    float64(f.ItemCount),
	}
}

func documentKeys(d item.Document) keys {
	return keys{
		name:     d.Name,
		modified: item.EpochMillis(d.Modified),
		opened:   item.EpochMillis(d.Opened),
		created:  item.EpochMillis(d.Created),
		size:     float64(d.FileSize),
		pages:    float64(d.PageCount),
	}
}

// Folders returns a new slice of folders ordered by the given field and
// direction. The input slice is left untouched.
func Folders(items []item.Folder, field Field, descending bool) []item.Folder {
	return sortBy(items, folderKeys, field, descending)
}

// Documents returns a new slice of documents ordered by the given field and
// direction. The input slice is left untouched.
func Documents(items []item.Document, field Field, descending bool) []item.Document {
	return sortBy(items, documentKeys, field, descending)
}

func sortBy[T any](items []T, keyOf func(T) keys, field Field, descending bool) []T {
	out := slices.Clone(items)
	coll := collate.New(language.Und, collate.Loose)
	slices.SortStableFunc(out, func(x, y T) int {
		a, b := keyOf(x), keyOf(y)
		// Direction is applied by swapping operands, never by negating the
		// result: ties must compare as 0 in both directions.
		if descending {
			a, b = b, a
		}
		return compare(coll, a, b, field)
	})
	return out
}

// compare orders two key sets for the given field.
//
// The alpha branch returns the collation result directly; locale comparison
// is never combined with a numeric subtraction. An unknown field always
// compares 0, leaving the input order intact under the stable sort.
func compare(coll *collate.Collator, a, b keys, field Field) int {
	switch field {
	case FieldAlpha:
		return coll.CompareString(a.name, b.name)
	case FieldModified:
		return numeric(a.modified, b.modified)
	case FieldOpened:
		return numeric(a.opened, b.opened)
	case FieldCreated:
		return numeric(a.created, b.created)
	case FieldSize:
		return numeric(a.size, b.size)
	case FieldPages:
		return numeric(a.pages, b.pages)
	default:
		return 0
	}
}

// numeric orders two float64 keys. NaN on either side takes the final branch
// and reports 0: malformed values are neither greater nor less than anything.
func numeric(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
