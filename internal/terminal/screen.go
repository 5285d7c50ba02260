// Package terminal provides the character-cell drawing surface the chat
// windows render into: a Screen owning the draw lock and color pairs, and
// Panes holding rows of styled cells.
package terminal

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/colorprofile"
)

// Screen is the shared drawing surface. Every pane drawn on it is guarded
// by the same lock so attribute toggles from different subsystems never
// interleave.
type Screen struct {
	mu sync.Mutex

	rows, cols int
	profile    colorprofile.Profile
	pairs      *PairTable

	// HasNewOutput is set whenever a pane on this screen changes. The UI
	// swaps it to decide whether a repaint is needed.
	HasNewOutput atomic.Bool

	// OnBell is invoked by Bell. Nil means bells are dropped.
	OnBell func()
}

// NewScreen creates a screen of the given geometry whose color pairs are
// initialized for the given color profile.
func NewScreen(rows, cols int, profile colorprofile.Profile) *Screen {
	return &Screen{
		rows:    max(rows, 0),
		cols:    max(cols, 0),
		profile: profile,
		pairs:   NewPairTable(profile),
	}
}

// DetectProfile detects the color capabilities of w using the given
// environment. It handles TERM, COLORTERM, NO_COLOR and tmux.
func DetectProfile(w io.Writer, env []string) colorprofile.Profile {
	if env == nil {
		env = os.Environ()
	}
	return colorprofile.Detect(w, env)
}

// Lock acquires the draw lock.
func (s *Screen) Lock() { s.mu.Lock() }

// Unlock releases the draw lock.
func (s *Screen) Unlock() { s.mu.Unlock() }

// Size returns the screen geometry.
func (s *Screen) Size() (rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows, s.cols
}

// Resize records new geometry. Panes are resized by their owners.
func (s *Screen) Resize(rows, cols int) {
	s.mu.Lock()
	s.rows, s.cols = max(rows, 0), max(cols, 0)
	s.mu.Unlock()
	s.HasNewOutput.Store(true)
}

// Profile returns the color profile the screen was created with.
func (s *Screen) Profile() colorprofile.Profile {
	return s.profile
}

// Pairs returns the color pair table.
func (s *Screen) Pairs() *PairTable {
	return s.pairs
}

// Bell signals the user.
func (s *Screen) Bell() {
	if s.OnBell != nil {
		s.OnBell()
	}
}

// NewPane creates a pane of the given size. Scrollable panes scroll their
// content up when output reaches the bottom row.
func (s *Screen) NewPane(rows, cols int, scrollable bool) *Pane {
	p := &Pane{screen: s, scrollable: scrollable}
	p.resize(rows, cols)
	return p
}
