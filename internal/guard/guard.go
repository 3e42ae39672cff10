// Package guard models the unsaved-changes navigation guard used by
// the admin form clients: a Clean/Dirty state machine behind a small
// capability interface, independent of any UI framework's event
// system.
package guard

import "sync"

// State is the form edit state
type State int

const (
	// Clean means no unsaved edits; navigation is unrestricted
	Clean State = iota
	// Dirty means unsaved edits exist; navigation needs confirmation
	Dirty
)

func (s State) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "clean"
}

// Navigation describes an attempted navigation from the guarded form
type Navigation struct {
	// Internal is true for in-page navigation links. External links
	// are exempt from interception.
	Internal bool
	// NewTab is true for new-tab or modifier-click navigations, which
	// are exempt: the form stays open in the current tab.
	NewTab bool
}

// ConfirmFunc asks the user whether to discard unsaved edits
type ConfirmFunc func() bool

// Guard is the navigation guard. The zero state is Clean.
type Guard struct {
	mu      sync.Mutex
	state   State
	confirm ConfirmFunc
}

// New creates a guard with the given confirmation prompt
func New(confirm ConfirmFunc) *Guard {
	return &Guard{confirm: confirm}
}

// MarkDirty records a form-field change. Idempotent: a Dirty guard
// stays Dirty.
func (g *Guard) MarkDirty() {
	g.mu.Lock()
	g.state = Dirty
	g.mu.Unlock()
}

// MarkClean records a successful submit
func (g *Guard) MarkClean() {
	g.mu.Lock()
	g.state = Clean
	g.mu.Unlock()
}

// State returns the current edit state
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// ShouldBlockUnload reports whether a browser-level unload needs the
// native confirmation prompt.
func (g *Guard) ShouldBlockUnload() bool {
	return g.State() == Dirty
}

// Navigate runs navigate under the guard's policy and reports whether
// the navigation proceeded. While Dirty, an internal same-tab
// navigation requires confirmation; a declined prompt cancels the
// navigation and the state stays Dirty. Confirming abandons the edits,
// so the guard resets to Clean before navigating. External-link and
// new-tab navigations always proceed and leave the state alone.
func (g *Guard) Navigate(nav Navigation, navigate func()) bool {
	if !nav.Internal || nav.NewTab {
		navigate()
		return true
	}

	g.mu.Lock()
	dirty := g.state == Dirty
	g.mu.Unlock()

	if dirty {
		if g.confirm == nil || !g.confirm() {
			return false
		}
		g.MarkClean()
	}

	navigate()
	return true
}
