// Package library loads a processed document library from the index files
// an external processor leaves behind (metadata.json, errors.json).
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/shelf/internal/core/item"
	"github.com/colonyops/shelf/internal/core/recents"
)

// IndexFile is the name of the library index within the library directory.
const IndexFile = "metadata.json"

// ErrorsFile lists items the processor failed to convert.
const ErrorsFile = "errors.json"

// trashParent marks items the source device moved to its trash; they are
// never shown.
const trashParent = "trash"

// indexEntry is one record of the metadata.json index.
type indexEntry struct {
	Type string `json:"type"` // "folder" or "document"

	item.Document // documents carry the full field set; folders use the shared subset
}

// ItemError describes an item the processor could not convert.
type ItemError struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// LoadOptions controls which items make it into the tree.
type LoadOptions struct {
	// Ignore holds doublestar glob patterns matched against the
	// slash-separated name path of each item (e.g. "Archive/**").
	Ignore []string
}

// Library is the immutable in-memory tree of folders and documents.
// Collections returned by its methods are fresh slices; the sort engine
// copies again before ordering, so nothing here is ever mutated per render.
type Library struct {
	folders   map[string]item.Folder
	documents map[string]item.Document

	childFolders   map[string][]string // parent id -> folder ids
	childDocuments map[string][]string // parent id -> document ids

	errors []ItemError
}

// Load reads the library index from dir and builds the tree.
func Load(dir string, opts LoadOptions) (*Library, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, fmt.Errorf("read library index: %w", err)
	}

	var entries []indexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse library index: %w", err)
	}

	lib := &Library{
		folders:        map[string]item.Folder{},
		documents:      map[string]item.Document{},
		childFolders:   map[string][]string{},
		childDocuments: map[string][]string{},
	}

	byID := make(map[string]indexEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	for _, e := range entries {
		if trashed(byID, e.ID) {
			continue
		}
		if ignored(opts.Ignore, namePath(byID, e.ID)) {
			continue
		}

		switch e.Type {
		case "folder":
			lib.folders[e.ID] = item.Folder{
				ID:         e.ID,
				Name:       e.Name,
				Parent:     e.Parent,
				Timestamps: e.Timestamps,
			}
			lib.childFolders[e.Parent] = append(lib.childFolders[e.Parent], e.ID)
		case "document", "book": // "book" is the legacy processor spelling
			doc := e.Document
			if doc.Kind == "" || !doc.Kind.IsValid() {
				doc.Kind = item.KindPlain
			}
			if doc.FileSize < 0 {
				doc.FileSize = 0
			}
			if doc.CurrentPage < 1 {
				doc.CurrentPage = 1
			}
			if doc.PageCount < doc.CurrentPage {
				doc.PageCount = doc.CurrentPage
			}
			lib.documents[e.ID] = doc
			lib.childDocuments[e.Parent] = append(lib.childDocuments[e.Parent], e.ID)
		default:
			return nil, fmt.Errorf("library index: item %q has unknown type %q", e.ID, e.Type)
		}
	}

	lib.aggregate()

	if err := lib.loadErrors(dir); err != nil {
		return nil, err
	}

	return lib, nil
}

// trashed reports whether the item or any ancestor lives in the trash.
// A parent cycle in the index terminates the walk; cyclic items count as
// not trashed and stay visible rather than hanging the load.
func trashed(byID map[string]indexEntry, id string) bool {
	seen := map[string]bool{}
	for id != "" && !seen[id] {
		seen[id] = true
		e, ok := byID[id]
		if !ok {
			return false
		}
		if e.Parent == trashParent {
			return true
		}
		id = e.Parent
	}
	return false
}

// namePath builds the slash-separated path of display names from the root
// down to the item. The walk stops at a parent cycle, yielding the path of
// the ancestors visited so far.
func namePath(byID map[string]indexEntry, id string) string {
	seen := map[string]bool{}
	var parts []string
	for id != "" && !seen[id] {
		seen[id] = true
		e, ok := byID[id]
		if !ok {
			break
		}
		parts = append([]string{e.Name}, parts...)
		id = e.Parent
	}
	return path.Join(parts...)
}

func ignored(patterns []string, namePath string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, namePath); err == nil && ok {
			return true
		}
	}
	return false
}

// aggregate fills each folder's direct item count and recursive total size.
func (l *Library) aggregate() {
	for id, f := range l.folders {
		f.ItemCount = len(l.childFolders[id]) + len(l.childDocuments[id])
		f.TotalSize = l.totalSize(id, map[string]bool{})
		l.folders[id] = f
	}
}

func (l *Library) totalSize(folderID string, seen map[string]bool) int64 {
	if seen[folderID] {
		return 0
	}
	seen[folderID] = true

	var size int64
	for _, docID := range l.childDocuments[folderID] {
		size += l.documents[docID].FileSize
	}
	for _, subID := range l.childFolders[folderID] {
		size += l.totalSize(subID, seen)
	}
	return size
}

func (l *Library) loadErrors(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, ErrorsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read library errors: %w", err)
	}
	if err := json.Unmarshal(data, &l.errors); err != nil {
		return fmt.Errorf("parse library errors: %w", err)
	}
	return nil
}

// Children returns the folders and documents directly under parentID.
// The root of the tree is the empty parent id.
func (l *Library) Children(parentID string) ([]item.Folder, []item.Document) {
	folders := make([]item.Folder, 0, len(l.childFolders[parentID]))
	for _, id := range l.childFolders[parentID] {
		folders = append(folders, l.folders[id])
	}
	documents := make([]item.Document, 0, len(l.childDocuments[parentID]))
	for _, id := range l.childDocuments[parentID] {
		documents = append(documents, l.documents[id])
	}
	return folders, documents
}

// Folder returns the folder with the given id.
func (l *Library) Folder(id string) (item.Folder, bool) {
	f, ok := l.folders[id]
	return f, ok
}

// Document returns the document with the given id.
func (l *Library) Document(id string) (item.Document, bool) {
	d, ok := l.documents[id]
	return d, ok
}

// Documents returns every document in the library.
func (l *Library) Documents() []item.Document {
	out := make([]item.Document, 0, len(l.documents))
	for _, d := range l.documents {
		out = append(out, d)
	}
	return out
}

// Breadcrumb returns the chain of folders from the root down to folderID.
// An empty id yields an empty chain (the root itself has no crumb). The
// walk stops at a parent cycle.
func (l *Library) Breadcrumb(folderID string) []item.Folder {
	seen := map[string]bool{}
	var chain []item.Folder
	for folderID != "" && !seen[folderID] {
		seen[folderID] = true
		f, ok := l.folders[folderID]
		if !ok {
			break
		}
		chain = append([]item.Folder{f}, chain...)
		folderID = f.Parent
	}
	return chain
}

// Errors returns the items the processor failed to convert.
func (l *Library) Errors() []ItemError {
	return l.errors
}

// ApplyRecents overlays recently-opened state onto matching documents: the
// opened timestamp feeds the "opened" sort field and the recorded page
// restores the reading position. Called once at startup, before any render
// cycle observes the collections.
func (l *Library) ApplyRecents(entries []recents.Entry) {
	byLocator := make(map[string]recents.Entry, len(entries))
	for _, e := range entries {
		byLocator[e.Locator] = e
	}

	for id, d := range l.documents {
		e, ok := byLocator[d.Locator]
		if !ok {
			continue
		}
		d.Opened = e.OpenedAt.UTC().Format(time.RFC3339)
		if e.Page >= 1 {
			d.CurrentPage = e.Page
			if d.PageCount < d.CurrentPage {
				d.PageCount = d.CurrentPage
			}
		}
		l.documents[id] = d
	}
}
