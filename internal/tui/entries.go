package tui

import (
	"github.com/colonyops/shelf/internal/core/item"
	"github.com/colonyops/shelf/internal/core/library"
	"github.com/colonyops/shelf/internal/core/sorting"
)

// entry is one row of the browser: either a folder or a document.
type entry struct {
	folder   *item.Folder
	document *item.Document
}

func (e entry) isFolder() bool {
	return e.folder != nil
}

func (e entry) name() string {
	if e.folder != nil {
		return e.folder.Name
	}
	return e.document.Name
}

// buildEntries is the view-refresh routine: it pulls the current folder's
// children and orders them with the sort engine. Folders always list before
// documents; each group is sorted independently with the same criteria.
func buildEntries(lib *library.Library, folderID string, state sorting.State) []entry {
	folders, documents := lib.Children(folderID)

	folders = sorting.Folders(folders, state.Field, state.Descending)
	documents = sorting.Documents(documents, state.Field, state.Descending)

	entries := make([]entry, 0, len(folders)+len(documents))
	for i := range folders {
		entries = append(entries, entry{folder: &folders[i]})
	}
	for i := range documents {
		entries = append(entries, entry{document: &documents[i]})
	}
	return entries
}
