// Package viewer manages the lifecycle of a single embedded-viewer document
// session and defines the capability surface the embedded viewer supplies.
package viewer

// ScrollBehavior controls how the viewer animates a page jump.
type ScrollBehavior string

// Supported scroll behaviors.
const (
	ScrollInstant ScrollBehavior = "instant"
	ScrollSmooth  ScrollBehavior = "smooth"
)

// LayoutEvent signals that a session's content finished initial layout and
// can be safely navigated or searched.
type LayoutEvent struct {
	DocumentID int64
}

// CancelFunc removes a layout-ready observer. Safe to call more than once.
type CancelFunc func()

// DocumentManager opens and closes documents inside the embedded viewer.
type DocumentManager interface {
	// Open loads the document behind locator under the given session id.
	// When autoActivate is true the document becomes the visible one.
	Open(locator string, sessionID int64, autoActivate bool)
	// Close tears down the session with the given id.
	Close(sessionID int64)
}

// ScrollController exposes layout readiness and page navigation.
type ScrollController interface {
	// OnLayoutReady registers an observer for layout-ready events and
	// returns a cancel function that removes it.
	OnLayoutReady(fn func(LayoutEvent)) CancelFunc
	// ScrollToPage moves the given session's view to a page.
	ScrollToPage(sessionID int64, page int, behavior ScrollBehavior)
}

// SearchController runs a text search across all pages of a session.
type SearchController interface {
	SearchAllPages(sessionID int64, term string)
}

// UIController drives presentational viewer chrome.
type UIController interface {
	RevealSearchPanel(sessionID int64)
}

// Capabilities bundles the collaborator surface granted to the session
// controller. Any field may be nil when the corresponding viewer subsystem
// has not been initialized; each call site checks before invoking.
type Capabilities struct {
	Manager DocumentManager
	Scroll  ScrollController
	Search  SearchController
	UI      UIController
}
