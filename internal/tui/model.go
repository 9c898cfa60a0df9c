// Package tui implements the themed file-browser shell: a folder/document
// grid over the library and the embedded viewer pane.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/shelf/internal/core/config"
	"github.com/colonyops/shelf/internal/core/item"
	"github.com/colonyops/shelf/internal/core/library"
	"github.com/colonyops/shelf/internal/core/recents"
	"github.com/colonyops/shelf/internal/core/sorting"
	"github.com/colonyops/shelf/internal/core/viewer"
	"github.com/colonyops/shelf/internal/tui/viewerpane"
)

// focus identifies which surface receives key input.
type focus int

const (
	focusBrowser focus = iota
	focusSearchInput
	focusViewer
)

// Model is the root Bubble Tea model for the browser shell.
type Model struct {
	lib     *library.Library
	cfg     *config.Config
	recents recents.Store
	logger  zerolog.Logger

	ctrl *viewer.Controller
	pane *viewerpane.Pane

	keys keyMap

	sortState sorting.State
	folderID  string
	entries   []entry
	cursor    int
	columns   int

	searchInput textinput.Model
	focus       focus

	width  int
	height int
}

// New creates the browser model over a loaded library.
func New(lib *library.Library, cfg *config.Config, store recents.Store, logger zerolog.Logger) Model {
	pane := viewerpane.New(cfg.LibraryDir, logger)
	ctrl := viewer.NewController(pane.Capabilities(), logger)

	input := textinput.New()
	input.Placeholder = "search term..."
	input.CharLimit = 100

	m := Model{
		lib:         lib,
		cfg:         cfg,
		recents:     store,
		logger:      logger,
		ctrl:        ctrl,
		pane:        pane,
		keys:        defaultKeyMap(),
		sortState:   cfg.Sort,
		columns:     cfg.Grid.Columns,
		searchInput: input,
	}
	m.refreshEntries()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// refreshEntries rebuilds the visible collection for the current folder and
// sort state, clamping the cursor.
func (m *Model) refreshEntries() {
	m.entries = buildEntries(m.lib, m.folderID, m.sortState)
	if m.cursor >= len(m.entries) {
		m.cursor = max(len(m.entries)-1, 0)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pane.SetSize(msg.Width, msg.Height)
		return m, nil

	case viewerpane.DocLoadedMsg:
		return m, m.pane.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusSearchInput:
		return m.handleSearchInputKey(msg)
	case focusViewer:
		return m.handleViewerKey(msg)
	default:
		return m.handleBrowserKey(msg)
	}
}

func (m Model) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.columns)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.columns)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Back):
		m.ascend()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortState.Field = nextField(m.sortState.Field)
		m.refreshEntries()
	case key.Matches(msg, m.keys.Reverse):
		m.sortState.Descending = !m.sortState.Descending
		m.refreshEntries()

	case key.Matches(msg, m.keys.GridGrow):
		if m.columns < 6 {
			m.columns++
		}
	case key.Matches(msg, m.keys.GridShrk):
		if m.columns > 1 {
			m.columns--
		}

	case key.Matches(msg, m.keys.Search):
		if e, ok := m.selected(); ok && !e.isFolder() {
			m.focus = focusSearchInput
			m.searchInput.SetValue("")
			return m, m.searchInput.Focus()
		}

	case key.Matches(msg, m.keys.Open):
		return m.openSelected("")
	}

	return m, nil
}

func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		term := m.searchInput.Value()
		m.focus = focusBrowser
		m.searchInput.Blur()
		return m.openSelected(term)
	case "esc":
		m.focus = focusBrowser
		m.searchInput.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
}

func (m Model) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.ctrl.Close()
		m.focus = focusBrowser
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, m.pane.Update(msg)
}

func (m *Model) moveCursor(delta int) {
	if len(m.entries) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.entries) {
		return
	}
	m.cursor = next
}

func (m *Model) ascend() {
	if m.folderID == "" {
		return
	}
	crumb := m.lib.Breadcrumb(m.folderID)
	if len(crumb) < 2 {
		m.folderID = ""
	} else {
		m.folderID = crumb[len(crumb)-2].ID
	}
	m.cursor = 0
	m.refreshEntries()
}

func (m Model) selected() (entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return entry{}, false
	}
	return m.entries[m.cursor], true
}

// openSelected descends into a folder or opens a document session. A
// non-empty searchTerm requests search-and-reveal; otherwise the last read
// page is restored.
func (m Model) openSelected(searchTerm string) (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	if e.isFolder() {
		m.folderID = e.folder.ID
		m.cursor = 0
		m.refreshEntries()
		return m, nil
	}

	return m.openDocument(*e.document, searchTerm)
}

func (m Model) openDocument(d item.Document, searchTerm string) (tea.Model, tea.Cmd) {
	opts := viewer.OpenOptions{SearchTerm: searchTerm}
	if d.OpenAtSearch != "" && opts.SearchTerm == "" {
		opts.SearchTerm = d.OpenAtSearch
	}
	switch {
	case d.OpenAtPage > 0:
		opts.Page = d.OpenAtPage
	case d.CurrentPage > 1:
		opts.Page = d.CurrentPage
	}

	m.ctrl.OpenDocument(d.Locator, opts)
	if m.ctrl.State() == viewer.StateClosed {
		// No manager available; stay in the browser.
		return m, nil
	}

	m.focus = focusViewer
	m.pane.SetSize(m.width, m.height)

	cmds := []tea.Cmd{m.pane.LoadPending()}
	cmds = append(cmds, m.recordOpened(d))
	return m, tea.Batch(cmds...)
}

// recordOpened persists the open in the recents store off the Update loop.
func (m Model) recordOpened(d item.Document) tea.Cmd {
	if m.recents == nil {
		return nil
	}
	store := m.recents
	maxEntries := m.cfg.Recents.MaxEntries
	logger := m.logger
	entry := recents.Entry{
		Locator:  d.Locator,
		Name:     d.Name,
		Page:     d.CurrentPage,
		OpenedAt: time.Now(),
	}
	return func() tea.Msg {
		if err := store.Touch(entry, maxEntries); err != nil {
			logger.Warn().Err(err).Str("locator", d.Locator).Msg("tui: record recents failed")
		}
		return nil
	}
}

// nextField cycles through the sort fields in UI order.
func nextField(f sorting.Field) sorting.Field {
	for i, field := range sorting.Fields {
		if field == f {
			return sorting.Fields[(i+1)%len(sorting.Fields)]
		}
	}
	return sorting.Fields[0]
}
