package viewerpane

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/shelf/internal/core/viewer"
)

func newTestPane(t *testing.T) *Pane {
	t.Helper()
	p := New(t.TempDir(), zerolog.Nop())
	p.SetSize(80, 24)
	return p
}

func loaded(id int64, pages ...string) DocLoadedMsg {
	return DocLoadedMsg{SessionID: id, Title: "doc", Pages: pages}
}

func TestPane_OpenAndClose(t *testing.T) {
	p := newTestPane(t)

	p.Open("a/out.pdf", 1, true)
	assert.True(t, p.Visible())

	p.Close(1)
	assert.False(t, p.Visible())
}

func TestPane_CloseOfSupersededSessionKeepsCurrent(t *testing.T) {
	p := newTestPane(t)

	// The controller opens the new session before closing the old one.
	p.Open("a/out.pdf", 1, true)
	p.Open("b/out.pdf", 2, true)
	p.Close(1)

	assert.True(t, p.Visible(), "closing the superseded session must not hide the new one")
	p.Update(loaded(2, "page one"))
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPane_StaleLoadDropped(t *testing.T) {
	p := newTestPane(t)

	p.Open("a/out.pdf", 1, true)
	p.Open("b/out.pdf", 2, true)
	p.Close(1)

	// Late content for the superseded session must not clobber the new one.
	p.Update(loaded(1, "old content"))
	assert.Equal(t, 0, p.CurrentPage(), "session 2 has not loaded yet")

	p.Update(loaded(2, "new content"))
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPane_LayoutReadyEmittedAfterLoad(t *testing.T) {
	p := newTestPane(t)

	var events []int64
	cancel := p.OnLayoutReady(func(ev viewer.LayoutEvent) {
		events = append(events, ev.DocumentID)
	})
	defer cancel()

	p.Open("a/out.pdf", 1, true)
	assert.Empty(t, events, "layout is not ready before content loads")

	p.Update(loaded(1, "page"))
	assert.Equal(t, []int64{1}, events)
}

func TestPane_ObserverCancel(t *testing.T) {
	p := newTestPane(t)

	fired := false
	cancel := p.OnLayoutReady(func(viewer.LayoutEvent) { fired = true })
	cancel()
	cancel() // cancelling twice is safe

	p.Open("a/out.pdf", 1, true)
	p.Update(loaded(1, "page"))
	assert.False(t, fired)
}

func TestPane_ScrollToPageClamps(t *testing.T) {
	p := newTestPane(t)

	p.Open("a/out.pdf", 1, true)
	p.Update(loaded(1, "one", "two", "three"))

	p.ScrollToPage(1, 2, viewer.ScrollInstant)
	assert.Equal(t, 2, p.CurrentPage())

	p.ScrollToPage(1, 99, viewer.ScrollInstant)
	assert.Equal(t, 3, p.CurrentPage())

	// Requests for other sessions are ignored.
	p.ScrollToPage(42, 1, viewer.ScrollInstant)
	assert.Equal(t, 3, p.CurrentPage())
}

func TestPane_SearchAllPages(t *testing.T) {
	p := newTestPane(t)

	p.Open("a/out.pdf", 1, true)
	p.Update(loaded(1, "nothing here", "all you need is Love", "love again"))

	p.SearchAllPages(1, "love")
	p.RevealSearchPanel(1)

	assert.Equal(t, []int{2, 3}, p.searchMatches)
	assert.Equal(t, 2, p.CurrentPage(), "jumps to the first match")
	assert.True(t, p.searchOpen)
}

func TestReadPages_TextFallback(t *testing.T) {
	dir := t.TempDir()
	docDir := filepath.Join(dir, "Fair Play")
	require.NoError(t, os.MkdirAll(docDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(docDir, "out.txt"),
		[]byte("page one\fpage two\fpage three"),
		0o644,
	))

	title, pages, err := readPages(dir, "Fair Play/out.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Fair Play", title)
	assert.Len(t, pages, 3)
	assert.Equal(t, "page two", pages[1])
}

func TestReadPages_PagesDir(t *testing.T) {
	dir := t.TempDir()
	pagesDir := filepath.Join(dir, "Notes", "pages")
	require.NoError(t, os.MkdirAll(pagesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pagesDir, "001.txt"), []byte("first"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pagesDir, "002.txt"), []byte("second"), 0o644))

	title, pages, err := readPages(dir, "Notes/out.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Notes", title)
	require.Len(t, pages, 2)
	assert.Equal(t, "first", pages[0])
	assert.Equal(t, "second", pages[1])
}

func TestReadPages_Missing(t *testing.T) {
	_, _, err := readPages(t.TempDir(), "Nope/out.pdf")
	require.Error(t, err)
}
