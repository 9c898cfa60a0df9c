package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/shelf/internal/core/library"
)

const lsTestIndex = `[
  {"type": "folder", "id": "f-1", "name": "Books", "parent": "",
   "last_modified": "2024-01-01T00:00:00Z"},
  {"type": "document", "id": "d-1", "name": "Alpha", "parent": "",
   "kind": "ebook", "locator": "Alpha/out.pdf", "file_size": 2048,
   "page_count": 12, "last_modified": "2024-02-01T00:00:00Z"},
  {"type": "document", "id": "d-2", "name": "Beta", "parent": "f-1",
   "kind": "notebook", "locator": "Books/Beta/out.pdf", "file_size": 512,
   "page_count": 3}
]`

func runLs(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, library.IndexFile), []byte(lsTestIndex), 0o644))

	lib, err := library.Load(dir, library.LoadOptions{})
	require.NoError(t, err)

	flags := &Flags{Library: lib}

	var buf bytes.Buffer
	app := &cli.Command{Name: "shelf", Writer: &buf}
	app = NewLsCmd(flags).Register(app)

	err = app.Run(context.Background(), append([]string{"shelf", "ls"}, args...))
	return buf.String(), err
}

func TestLs_Table(t *testing.T) {
	out, err := runLs(t)
	require.NoError(t, err)

	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "Books")
	assert.Contains(t, out, "Alpha")
	assert.NotContains(t, out, "Beta", "nested documents are not listed at the root")
}

func TestLs_JSONLines(t *testing.T) {
	out, err := runLs(t, "--json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first entryInfo
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "folder", first.Type)
	assert.Equal(t, "Books", first.Name)
}

func TestLs_FolderPath(t *testing.T) {
	out, err := runLs(t, "Books")
	require.NoError(t, err)

	assert.Contains(t, out, "Beta")
	assert.NotContains(t, out, "Alpha")
}

func TestLs_UnknownFolder(t *testing.T) {
	_, err := runLs(t, "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLs_UnknownSortField(t *testing.T) {
	_, err := runLs(t, "--sort", "color")
	require.Error(t, err)
}

func TestLs_SortAlphaDescending(t *testing.T) {
	out, err := runLs(t, "--json", "--sort", "alpha", "--desc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	// Folders still list before documents; sort applies within each group.
	var first entryInfo
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "folder", first.Type)
}
