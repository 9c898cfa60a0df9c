package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/shelf/internal/core/item"
)

const testIndex = `[
  {"type": "folder", "id": "f-books", "name": "Books", "parent": ""},
  {"type": "folder", "id": "f-notes", "name": "Notes", "parent": ""},
  {"type": "folder", "id": "f-old", "name": "Archive", "parent": "f-books"},
  {"type": "document", "id": "d-1", "name": "Fair Play", "parent": "f-books",
   "kind": "ebook", "locator": "Books/Fair Play/out.pdf", "file_size": 1000,
   "current_page": 3, "page_count": 210, "last_modified": "2024-01-02T00:00:00Z"},
  {"type": "book", "id": "d-2", "name": "Colours", "parent": "f-old",
   "locator": "Books/Archive/Colours/out.pdf", "file_size": 500},
  {"type": "document", "id": "d-3", "name": "Scratch", "parent": "",
   "kind": "notebook", "locator": "Scratch/out.pdf", "file_size": 250},
  {"type": "document", "id": "d-gone", "name": "Deleted", "parent": "trash",
   "locator": "x", "file_size": 9999},
  {"type": "folder", "id": "f-trash", "name": "Old Trash", "parent": "trash"},
  {"type": "document", "id": "d-gone-2", "name": "Nested Deleted", "parent": "f-trash",
   "locator": "y", "file_size": 9999}
]`

func writeLibrary(t *testing.T, index string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte(index), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	lib, err := Load(writeLibrary(t, testIndex), LoadOptions{})
	require.NoError(t, err)

	folders, documents := lib.Children("")
	assert.Len(t, folders, 2)
	require.Len(t, documents, 1)
	assert.Equal(t, "Scratch", documents[0].Name)

	_, booksDocs := lib.Children("f-books")
	require.Len(t, booksDocs, 1)
	assert.Equal(t, "Fair Play", booksDocs[0].Name)
}

func TestLoad_TrashedItemsSkipped(t *testing.T) {
	lib, err := Load(writeLibrary(t, testIndex), LoadOptions{})
	require.NoError(t, err)

	_, ok := lib.Document("d-gone")
	assert.False(t, ok, "direct trash child must be skipped")

	_, ok = lib.Document("d-gone-2")
	assert.False(t, ok, "items under trashed folders must be skipped")

	_, ok = lib.Folder("f-trash")
	assert.False(t, ok)
}

func TestLoad_FolderAggregates(t *testing.T) {
	lib, err := Load(writeLibrary(t, testIndex), LoadOptions{})
	require.NoError(t, err)

	books, ok := lib.Folder("f-books")
	require.True(t, ok)
	assert.Equal(t, 2, books.ItemCount, "direct children: Archive folder + Fair Play")
	assert.Equal(t, int64(1500), books.TotalSize, "recursive size includes Archive")

	old, ok := lib.Folder("f-old")
	require.True(t, ok)
	assert.Equal(t, 1, old.ItemCount)
	assert.Equal(t, int64(500), old.TotalSize)
}

func TestLoad_LegacyBookEntries(t *testing.T) {
	lib, err := Load(writeLibrary(t, testIndex), LoadOptions{})
	require.NoError(t, err)

	d, ok := lib.Document("d-2")
	require.True(t, ok)
	assert.Equal(t, item.KindPlain, d.Kind, "missing kind defaults to plain")
	assert.Equal(t, 1, d.CurrentPage, "pages clamp to the valid range")
	assert.Equal(t, 1, d.PageCount)
}

func TestLoad_IgnoreGlobs(t *testing.T) {
	lib, err := Load(writeLibrary(t, testIndex), LoadOptions{
		Ignore: []string{"Books/Archive/**", "Scratch"},
	})
	require.NoError(t, err)

	_, ok := lib.Document("d-2")
	assert.False(t, ok, "documents under ignored folders are dropped")

	_, ok = lib.Document("d-3")
	assert.False(t, ok, "root-level ignore pattern applies")

	_, ok = lib.Document("d-1")
	assert.True(t, ok)
}

func TestLoad_ParentCycle(t *testing.T) {
	// A corrupt index with a parent cycle must still load; cyclic items
	// stay visible as orphans instead of wedging every command at startup.
	cyclic := `[
	  {"type": "folder", "id": "f-a", "name": "A", "parent": "f-b"},
	  {"type": "folder", "id": "f-b", "name": "B", "parent": "f-a"},
	  {"type": "document", "id": "d-1", "name": "Doc", "parent": "f-a",
	   "locator": "A/Doc/out.pdf", "file_size": 100}
	]`

	dir := writeLibrary(t, cyclic)

	done := make(chan *Library, 1)
	go func() {
		lib, err := Load(dir, LoadOptions{})
		assert.NoError(t, err)
		done <- lib
	}()

	var lib *Library
	select {
	case lib = <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Load did not return: parent cycle wedged the index walk")
	}

	_, ok := lib.Folder("f-a")
	assert.True(t, ok, "cyclic folders are kept, not treated as trashed")

	d, ok := lib.Document("d-1")
	require.True(t, ok)
	assert.Equal(t, int64(100), d.FileSize)

	a, _ := lib.Folder("f-a")
	assert.Equal(t, int64(100), a.TotalSize, "aggregation terminates at the cycle")

	crumb := lib.Breadcrumb("f-a")
	assert.NotEmpty(t, crumb, "breadcrumb walk terminates at the cycle")
}

func TestLoad_SelfParent(t *testing.T) {
	selfRef := `[
	  {"type": "folder", "id": "f-x", "name": "X", "parent": "f-x"}
	]`

	dir := writeLibrary(t, selfRef)

	done := make(chan struct{})
	var lib *Library
	var err error
	go func() {
		lib, err = Load(dir, LoadOptions{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Load did not return for a self-referential parent")
	}

	require.NoError(t, err)
	_, ok := lib.Folder("f-x")
	assert.True(t, ok)
}

func TestLoad_NegativeSizeClamped(t *testing.T) {
	index := `[
	  {"type": "folder", "id": "f-1", "name": "Stuff", "parent": ""},
	  {"type": "document", "id": "d-1", "name": "Corrupt", "parent": "f-1",
	   "locator": "Stuff/Corrupt/out.pdf", "file_size": -4096}
	]`

	lib, err := Load(writeLibrary(t, index), LoadOptions{})
	require.NoError(t, err)

	d, ok := lib.Document("d-1")
	require.True(t, ok)
	assert.Equal(t, int64(0), d.FileSize, "negative sizes from a corrupt index clamp to zero")

	f, ok := lib.Folder("f-1")
	require.True(t, ok)
	assert.Equal(t, int64(0), f.TotalSize)
}

func TestLoad_UnknownType(t *testing.T) {
	_, err := Load(writeLibrary(t, `[{"type": "wat", "id": "x", "name": "X"}]`), LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestLoad_MissingIndex(t *testing.T) {
	_, err := Load(t.TempDir(), LoadOptions{})
	require.Error(t, err)
}

func TestBreadcrumb(t *testing.T) {
	lib, err := Load(writeLibrary(t, testIndex), LoadOptions{})
	require.NoError(t, err)

	crumb := lib.Breadcrumb("f-old")
	require.Len(t, crumb, 2)
	assert.Equal(t, "Books", crumb[0].Name)
	assert.Equal(t, "Archive", crumb[1].Name)

	assert.Empty(t, lib.Breadcrumb(""))
}

func TestErrorsFile(t *testing.T) {
	dir := writeLibrary(t, testIndex)
	errsJSON := `[{"id": "d-bad", "name": "Broken", "error": "conversion failed"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ErrorsFile), []byte(errsJSON), 0o644))

	lib, err := Load(dir, LoadOptions{})
	require.NoError(t, err)

	require.Len(t, lib.Errors(), 1)
	assert.Equal(t, "Broken", lib.Errors()[0].Name)
}
