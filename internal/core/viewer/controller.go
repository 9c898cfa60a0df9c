package viewer

import (
	"github.com/rs/zerolog"
)

// State is the lifecycle state of the current session.
// ENUM(closed, opening, open).
type State string

// Session lifecycle states.
const (
	StateClosed  State = "closed"
	StateOpening State = "opening"
	StateOpen    State = "open"
)

// Session is one instance of a document open inside the embedded viewer.
type Session struct {
	ID      int64  // monotonically allocated, never reused
	Locator string // opaque handle of the opened document
}

// OpenOptions carries the optional navigation intent for an open request.
type OpenOptions struct {
	// Page scrolls to the given page after layout is ready. Page 1 is the
	// initial view and needs no navigation.
	Page int
	// SearchTerm triggers a search-and-reveal after layout is ready. When
	// both Page and SearchTerm are set, search wins and the page jump is
	// suppressed.
	SearchTerm string
}

// Controller coordinates at most one active embedded-viewer session.
//
// It is the sole writer of the current session id and locator. All methods
// must be called from the same goroutine that delivers layout-ready events;
// the controller holds no locks.
type Controller struct {
	caps   Capabilities
	logger zerolog.Logger

	nextID  int64
	current Session
	state   State

	// cancelPending removes the layout-ready observer of an unresolved
	// open. Invoked exactly once: when the observer fires, or when a later
	// open supersedes it.
	cancelPending CancelFunc
}

// NewController creates a session controller over the given capabilities.
func NewController(caps Capabilities, logger zerolog.Logger) *Controller {
	return &Controller{
		caps:   caps,
		logger: logger,
		state:  StateClosed,
	}
}

// State returns the lifecycle state of the current session.
func (c *Controller) State() State {
	return c.state
}

// CurrentSessionID returns the id of the current session, or 0 when no
// session has ever been opened.
func (c *Controller) CurrentSessionID() int64 {
	return c.current.ID
}

// CurrentLocator returns the locator of the current session's document.
// This is the download target for any download action exposed by the shell.
func (c *Controller) CurrentLocator() string {
	return c.current.Locator
}

// OpenDocument opens the document behind locator in the embedded viewer,
// superseding and closing any previous session.
//
// The new session becomes current before the previous one is torn down, so
// the shell never observes a moment with zero open sessions. Without a
// document manager the call is a silent no-op: no session is created and the
// previous one stays untouched, keeping the browsing UI usable when the
// viewer subsystem failed to initialize.
func (c *Controller) OpenDocument(locator string, opts OpenOptions) {
	if c.caps.Manager == nil {
		c.logger.Debug().Str("locator", locator).Msg("viewer: no document manager, open ignored")
		return
	}

	previousID := c.current.ID
	hadPrevious := c.state != StateClosed

	// A pending observer from an unresolved open can never match again once
	// superseded; cancel it now instead of leaking the registration.
	c.cancelSuperseded()

	c.nextID++
	id := c.nextID
	c.current = Session{ID: id, Locator: locator}
	c.state = StateOpening

	c.logger.Info().
		Int64("session_id", id).
		Str("locator", locator).
		Msg("viewer: opening document")

	c.caps.Manager.Open(locator, id, true)
	if hadPrevious {
		// Fire and forget: the controller does not wait for confirmation
		// that the close completed.
		c.caps.Manager.Close(previousID)
	}

	action := c.resolveIntent(id, opts)
	if action == nil {
		// Nothing to wait for; the session counts as open immediately.
		c.state = StateOpen
		return
	}

	c.awaitLayout(id, action)
}

// Close tears down the current session explicitly.
func (c *Controller) Close() {
	if c.state == StateClosed {
		return
	}
	c.cancelSuperseded()
	if c.caps.Manager != nil {
		c.caps.Manager.Close(c.current.ID)
	}
	c.state = StateClosed
	c.logger.Info().Int64("session_id", c.current.ID).Msg("viewer: session closed")
}

// resolveIntent returns the deferred navigation action for an open request,
// or nil when there is nothing to do after layout.
//
// Precedence: a search term with both search and UI collaborators available
// wins over page navigation; a caller supplying both gets search behavior
// only. Page navigation requires a page greater than 1 and a scroll
// collaborator.
func (c *Controller) resolveIntent(id int64, opts OpenOptions) func() {
	if opts.SearchTerm != "" && c.caps.Search != nil && c.caps.UI != nil {
		term := opts.SearchTerm
		return func() {
			c.caps.Search.SearchAllPages(id, term)
			c.caps.UI.RevealSearchPanel(id)
		}
	}

	if opts.Page > 1 && c.caps.Scroll != nil {
		page := opts.Page
		return func() {
			c.caps.Scroll.ScrollToPage(id, page, ScrollInstant)
		}
	}

	return nil
}

// awaitLayout registers a one-shot observer that runs action once the
// layout-ready event for exactly this session id arrives. Events for other
// sessions are ignored. The observer deregisters itself after firing.
func (c *Controller) awaitLayout(id int64, action func()) {
	if c.caps.Scroll == nil {
		// No event source; the session is usable as-is.
		c.state = StateOpen
		return
	}

	var cancel CancelFunc
	fired := false
	cancel = c.caps.Scroll.OnLayoutReady(func(ev LayoutEvent) {
		if ev.DocumentID != id || fired {
			return
		}
		fired = true
		action()
		if c.current.ID == id {
			c.state = StateOpen
			c.cancelPending = nil
		}
		if cancel != nil {
			cancel()
		}
	})
	c.cancelPending = cancel
}

// cancelSuperseded cancels the pending layout-ready observer, if any.
func (c *Controller) cancelSuperseded() {
	if c.cancelPending != nil {
		c.cancelPending()
		c.cancelPending = nil
	}
}
