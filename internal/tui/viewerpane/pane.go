// Package viewerpane implements the embedded document viewer as a Bubble Tea
// component. It supplies the full collaborator surface the session controller
// consumes: document manager, scroll, search, and UI control.
package viewerpane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/shelf/internal/core/styles"
	"github.com/colonyops/shelf/internal/core/viewer"
)

// DocLoadedMsg is emitted when a document's pages have been read from disk.
type DocLoadedMsg struct {
	SessionID int64
	Title     string
	Pages     []string
	Err       error
}

// docState is the content of one open session.
type docState struct {
	sessionID int64
	locator   string
	title     string
	pages     []string
	page      int // 0-indexed current page
	loaded    bool
}

// Pane is the embedded viewer component. At most one session is displayed;
// superseded sessions are dropped when the manager closes them.
type Pane struct {
	libraryDir string
	logger     zerolog.Logger

	vp      viewport.Model
	visible bool
	width   int
	height  int

	current *docState
	open    map[int64]string // session id -> locator, for every un-closed session

	observers map[int]func(viewer.LayoutEvent)
	nextObs   int

	searchOpen    bool
	searchTerm    string
	searchMatches []int // 1-indexed page numbers containing the term
	searchIndex   int
}

// New creates a viewer pane reading page content under libraryDir.
func New(libraryDir string, logger zerolog.Logger) *Pane {
	return &Pane{
		libraryDir: libraryDir,
		logger:     logger,
		vp:         viewport.New(0, 0),
		open:       map[int64]string{},
		observers:  map[int]func(viewer.LayoutEvent){},
	}
}

// Interface checks: the pane is the whole collaborator surface.
var (
	_ viewer.DocumentManager  = (*Pane)(nil)
	_ viewer.ScrollController = (*Pane)(nil)
	_ viewer.SearchController = (*Pane)(nil)
	_ viewer.UIController     = (*Pane)(nil)
)

// Capabilities returns the collaborator surface backed by this pane.
func (p *Pane) Capabilities() viewer.Capabilities {
	return viewer.Capabilities{Manager: p, Scroll: p, Search: p, UI: p}
}

// Open starts displaying the document behind locator under the given
// session id. Content is read asynchronously; callers follow up with
// LoadPending to obtain the read command.
func (p *Pane) Open(locator string, sessionID int64, autoActivate bool) {
	p.open[sessionID] = locator
	if autoActivate {
		p.current = &docState{sessionID: sessionID, locator: locator}
		p.visible = true
		p.searchOpen = false
		p.searchTerm = ""
		p.searchMatches = nil
	}
}

// Close tears down the session with the given id. Closing a superseded
// session never disturbs the currently displayed one.
func (p *Pane) Close(sessionID int64) {
	delete(p.open, sessionID)
	if p.current != nil && p.current.sessionID == sessionID {
		p.current = nil
		p.visible = false
	}
}

// OnLayoutReady registers an observer for layout-ready events.
func (p *Pane) OnLayoutReady(fn func(viewer.LayoutEvent)) viewer.CancelFunc {
	p.nextObs++
	key := p.nextObs
	p.observers[key] = fn
	return func() {
		delete(p.observers, key)
	}
}

// ScrollToPage moves the session's view to the given 1-indexed page.
// Requests for sessions other than the displayed one are ignored.
func (p *Pane) ScrollToPage(sessionID int64, page int, behavior viewer.ScrollBehavior) {
	if p.current == nil || p.current.sessionID != sessionID {
		return
	}
	p.setPage(page - 1)
	_ = behavior // a terminal viewport has no smooth scrolling
}

// SearchAllPages records the term and computes matching pages for the
// session. Results surface once RevealSearchPanel shows the bar.
func (p *Pane) SearchAllPages(sessionID int64, term string) {
	if p.current == nil || p.current.sessionID != sessionID {
		return
	}
	p.searchTerm = term
	p.searchMatches = nil
	p.searchIndex = 0

	needle := strings.ToLower(term)
	for i, page := range p.current.pages {
		if strings.Contains(strings.ToLower(page), needle) {
			p.searchMatches = append(p.searchMatches, i+1)
		}
	}

	// Jump to the first hit so the reveal shows it in context.
	if len(p.searchMatches) > 0 {
		p.setPage(p.searchMatches[0] - 1)
	}
}

// RevealSearchPanel shows the search bar for the session.
func (p *Pane) RevealSearchPanel(sessionID int64) {
	if p.current == nil || p.current.sessionID != sessionID {
		return
	}
	p.searchOpen = true
}

// Visible reports whether the pane currently displays a document.
func (p *Pane) Visible() bool {
	return p.visible && p.current != nil
}

// CurrentPage returns the 1-indexed page of the displayed document, or 0
// when nothing is shown.
func (p *Pane) CurrentPage() int {
	if p.current == nil {
		return 0
	}
	return p.current.page + 1
}

// LoadPending returns the command that reads the displayed document's pages
// from disk, or nil when nothing is waiting to load.
func (p *Pane) LoadPending() tea.Cmd {
	if p.current == nil || p.current.loaded {
		return nil
	}
	id := p.current.sessionID
	locator := p.current.locator
	dir := p.libraryDir
	return func() tea.Msg {
		title, pages, err := readPages(dir, locator)
		return DocLoadedMsg{SessionID: id, Title: title, Pages: pages, Err: err}
	}
}

// SetSize updates the pane dimensions.
func (p *Pane) SetSize(width, height int) {
	p.width = width
	p.height = height

	chrome := 2 // title + status line
	if p.searchOpen {
		chrome++
	}
	p.vp.Width = width
	p.vp.Height = max(height-chrome, 1)
	p.refresh()
}

// Update handles pane messages: loaded content and page navigation keys.
func (p *Pane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DocLoadedMsg:
		return p.handleLoaded(msg)
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *Pane) handleLoaded(msg DocLoadedMsg) tea.Cmd {
	// Content for a superseded session arrives after its close; drop it.
	if p.current == nil || p.current.sessionID != msg.SessionID {
		return nil
	}

	if msg.Err != nil {
		p.logger.Error().Err(msg.Err).Str("locator", p.current.locator).Msg("viewerpane: load failed")
		p.current.pages = []string{styles.ErrorStyle.Render("failed to load document: " + msg.Err.Error())}
		p.current.loaded = true
		p.refresh()
		return nil
	}

	p.current.title = msg.Title
	p.current.pages = msg.Pages
	p.current.loaded = true
	p.refresh()

	// Initial layout is done; let observers navigate or search.
	p.emitLayoutReady(msg.SessionID)
	return nil
}

// emitLayoutReady notifies registered observers. A snapshot is taken first:
// observers deregister themselves while we iterate.
func (p *Pane) emitLayoutReady(sessionID int64) {
	fns := make([]func(viewer.LayoutEvent), 0, len(p.observers))
	for _, fn := range p.observers {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(viewer.LayoutEvent{DocumentID: sessionID})
	}
}

func (p *Pane) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.current == nil {
		return nil
	}

	switch msg.String() {
	case "left", "h", "pgup":
		p.setPage(p.current.page - 1)
	case "right", "l", "pgdown", " ":
		p.setPage(p.current.page + 1)
	case "g", "home":
		p.setPage(0)
	case "G", "end":
		p.setPage(len(p.current.pages) - 1)
	case "n":
		p.jumpMatch(1)
	case "N":
		p.jumpMatch(-1)
	default:
		var cmd tea.Cmd
		p.vp, cmd = p.vp.Update(msg)
		return cmd
	}
	return nil
}

// setPage clamps and applies a 0-indexed page, refreshing the viewport.
func (p *Pane) setPage(page int) {
	if p.current == nil || len(p.current.pages) == 0 {
		return
	}
	if page < 0 {
		page = 0
	}
	if page >= len(p.current.pages) {
		page = len(p.current.pages) - 1
	}
	p.current.page = page
	p.refresh()
}

// jumpMatch moves to the next or previous page with a search hit.
func (p *Pane) jumpMatch(dir int) {
	if len(p.searchMatches) == 0 {
		return
	}
	n := len(p.searchMatches)
	p.searchIndex = ((p.searchIndex+dir)%n + n) % n
	p.setPage(p.searchMatches[p.searchIndex] - 1)
}

func (p *Pane) refresh() {
	if p.current == nil || len(p.current.pages) == 0 {
		p.vp.SetContent("")
		return
	}
	p.vp.SetContent(p.current.pages[p.current.page])
	p.vp.GotoTop()
}

// View renders the pane: title bar, page content, optional search bar, and
// a status line.
func (p *Pane) View() string {
	if !p.Visible() {
		return ""
	}

	var b strings.Builder

	title := p.current.title
	if title == "" {
		title = p.current.locator
	}
	b.WriteString(styles.ViewerTitle.Render(title))
	b.WriteString("\n")

	if !p.current.loaded {
		b.WriteString(styles.MutedStyle.Render("loading..."))
		return b.String()
	}

	b.WriteString(p.vp.View())
	b.WriteString("\n")

	if p.searchOpen {
		b.WriteString(p.renderSearchBar())
		b.WriteString("\n")
	}

	status := fmt.Sprintf("page %d/%d", p.current.page+1, len(p.current.pages))
	b.WriteString(styles.StatusBarStyle.Width(p.width).Render(status))

	return b.String()
}

func (p *Pane) renderSearchBar() string {
	if len(p.searchMatches) == 0 {
		return styles.SearchBarStyle.Render(fmt.Sprintf("/%s  no matches", p.searchTerm))
	}
	return styles.SearchBarStyle.Render(fmt.Sprintf(
		"/%s  match %d/%d (n/N to cycle)",
		p.searchTerm, p.searchIndex+1, len(p.searchMatches),
	))
}
