// Package window manages the chat windows: their registry, scrollback,
// scroll mode and the title and status bars drawn around them.
package window

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/tuirc/internal/printtext"
	"github.com/Gaurav-Gosain/tuirc/internal/scrollback"
	"github.com/Gaurav-Gosain/tuirc/internal/terminal"
)

// StatusLabel is the label of the status window. It always has refnum 1
// and cannot be destroyed.
const StatusLabel = "(status)"

// Limits of the window count.
const (
	DefaultMaxWindows = 60
	MinMaxWindows     = 10
	MaxMaxWindows     = 200
)

// ClampMaxWindows limits n to [MinMaxWindows, MaxMaxWindows]; non-positive
// values give DefaultMaxWindows.
func ClampMaxWindows(n int) int {
	if n <= 0 {
		return DefaultMaxWindows
	}
	return min(max(n, MinMaxWindows), MaxMaxWindows)
}

// Window is one conversation pane and its scrollback.
type Window struct {
	ID     uuid.UUID
	Label  string
	Title  string
	Refnum int

	buf  *scrollback.Buffer
	pane *terminal.Pane

	ScrollMode  bool
	SavedSize   int
	ScrollCount int

	ChanModes     string
	ReceivedModes bool
}

// Info is a snapshot of a window.
type Info struct {
	ID     uuid.UUID
	Label  string
	Title  string
	Refnum int
	Active bool

	ScrollMode  bool
	SavedSize   int
	ScrollCount int
	Lines       int

	ChanModes string
	Members   Counts
}

// Config holds the settings a registry is created with.
type Config struct {
	// MaxWindows limits the number of windows, status included.
	MaxWindows int
	// BufferSize is the scrollback capacity of every window. It is used
	// as given; see scrollback.ClampSize.
	BufferSize int
	// BellOnInvalidScroll rings the bell when a scroll cannot move.
	BellOnInvalidScroll bool
}

// Registry owns every window. It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	screen     *terminal.Screen
	rows, cols int

	windows []*Window // status first, then creation order
	byLabel map[string]*Window
	byID    map[uuid.UUID]*Window
	active  *Window
	status  *Window

	members *Members

	maxWindows int
	bufferSize int
	bell       bool

	titlePane  *terminal.Pane
	statusPane *terminal.Pane
	nick       string
	userModes  string
	server     string
}

// NewRegistry creates a registry drawing on screen, with the status window
// spawned and active.
func NewRegistry(screen *terminal.Screen, cfg Config) *Registry {
	if cfg.MaxWindows <= 0 {
		cfg.MaxWindows = DefaultMaxWindows
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = scrollback.DefaultSize
	}
	rows, cols := screen.Size()

	r := &Registry{
		screen:     screen,
		rows:       rows,
		cols:       cols,
		byLabel:    make(map[string]*Window),
		byID:       make(map[uuid.UUID]*Window),
		members:    NewMembers(),
		maxWindows: cfg.MaxWindows,
		bufferSize: cfg.BufferSize,
		bell:       cfg.BellOnInvalidScroll,
		titlePane:  screen.NewPane(1, cols, false),
		statusPane: screen.NewPane(1, cols, false),
	}

	r.mu.Lock()
	r.status = r.install(StatusLabel, "")
	r.activate(r.status)
	r.mu.Unlock()
	return r
}

func labelKey(label string) string { return strings.ToLower(label) }

// paneRows is the height of a chat pane: everything between the title bar
// and the status bar, leaving the last row to the input line.
func (r *Registry) paneRows() int {
	return max(r.rows-3, 1)
}

// install creates a window and links it in. Callers hold r.mu.
func (r *Registry) install(label, title string) *Window {
	w := &Window{
		ID:     uuid.New(),
		Label:  label,
		Title:  title,
		Refnum: len(r.windows) + 1,
		buf:    scrollback.New(r.bufferSize),
		pane:   r.screen.NewPane(r.paneRows(), r.cols, true),
	}
	w.buf.SetOnEvict(func(n int) {
		// Keep a paged view anchored on the same record.
		if w.ScrollMode {
			w.SavedSize = max(w.SavedSize-n, 0)
		}
	})

	r.windows = append(r.windows, w)
	r.byLabel[labelKey(label)] = w
	r.byID[w.ID] = w
	log.Debug("window: spawned", "label", label, "refnum", w.Refnum, "total", len(r.windows))
	return w
}

// Spawn creates a window and makes it active. Spawning a label that
// already exists activates the existing window.
func (r *Registry) Spawn(label, title string) (uuid.UUID, error) {
	if label == "" {
		return uuid.Nil, fmt.Errorf("%w: empty label", ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.byLabel[labelKey(label)]; ok {
		r.activate(w)
		return w.ID, nil
	}
	if len(r.windows)+1 > r.maxWindows {
		return uuid.Nil, fmt.Errorf("%w: limit is %d", ErrCapacityExceeded, r.maxWindows)
	}

	w := r.install(label, title)
	r.activate(w)
	return w.ID, nil
}

// Destroy removes the window with the given label, releases its scrollback
// and members, and activates the window with the highest refnum.
func (r *Registry) Destroy(label string) error {
	if label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidArgument)
	}
	if strings.EqualFold(label, StatusLabel) {
		return fmt.Errorf("%w: %s", ErrProtected, StatusLabel)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.byLabel[labelKey(label)]
	if !ok {
		return fmt.Errorf("%w: window %q", ErrNotFound, label)
	}

	r.windows = slices.DeleteFunc(r.windows, func(x *Window) bool { return x == w })
	delete(r.byLabel, labelKey(label))
	delete(r.byID, w.ID)

	r.screen.Lock()
	w.pane.Close()
	r.screen.Unlock()
	w.buf.Clear()
	r.members.RemoveAll(w.ID)

	r.reassignRefnums()
	log.Debug("window: destroyed", "label", label, "total", len(r.windows))

	r.activate(r.windows[len(r.windows)-1])
	return nil
}

// reassignRefnums renumbers the windows 1..N in registry order. Callers
// hold r.mu.
func (r *Registry) reassignRefnums() {
	for i, w := range r.windows {
		w.Refnum = i + 1
	}
	if r.status.Refnum != 1 || r.windows[0] != r.status {
		panic("window: status window lost refnum 1")
	}
	if len(r.byLabel) != len(r.windows) || len(r.byID) != len(r.windows) {
		panic(fmt.Sprintf("window: registry out of sync: %d windows, %d labels, %d ids",
			len(r.windows), len(r.byLabel), len(r.byID)))
	}
}

// activate makes w the active window and refreshes the bars. Callers hold
// r.mu.
func (r *Registry) activate(w *Window) {
	if r.active != w {
		r.active = w
		r.screen.HasNewOutput.Store(true)
	}
	r.updateTitlebar()
	r.updateStatusbar()
}

// Len returns the number of windows, status included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.windows)
}

// ByLabel returns the ID of the window with the given label, compared
// case-insensitively.
func (r *Registry) ByLabel(label string) (uuid.UUID, error) {
	if label == "" {
		return uuid.Nil, fmt.Errorf("%w: empty label", ErrInvalidArgument)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byLabel[labelKey(label)]
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: window %q", ErrNotFound, label)
	}
	return w.ID, nil
}

// ByRefnum returns the ID of the window with the given refnum.
func (r *Registry) ByRefnum(refnum int) (uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w := r.byRefnum(refnum)
	if w == nil {
		return uuid.Nil, fmt.Errorf("%w: refnum %d", ErrNotFound, refnum)
	}
	return w.ID, nil
}

func (r *Registry) byRefnum(refnum int) *Window {
	if refnum < 1 || refnum > len(r.windows) {
		return nil
	}
	for _, w := range r.windows {
		if w.Refnum == refnum {
			return w
		}
	}
	return nil
}

// Window returns a snapshot of the window with the given ID.
func (r *Registry) Window(id uuid.UUID) (Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byID[id]
	if !ok {
		return Info{}, fmt.Errorf("%w: window %s", ErrNotFound, id)
	}
	return r.info(w), nil
}

func (r *Registry) info(w *Window) Info {
	return Info{
		ID:          w.ID,
		Label:       w.Label,
		Title:       w.Title,
		Refnum:      w.Refnum,
		Active:      w == r.active,
		ScrollMode:  w.ScrollMode,
		SavedSize:   w.SavedSize,
		ScrollCount: w.ScrollCount,
		Lines:       w.buf.Len(),
		ChanModes:   w.ChanModes,
		Members:     r.members.Counts(w.ID),
	}
}

// List returns snapshots of every window in refnum order.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Info, len(r.windows))
	for i, w := range r.windows {
		out[i] = r.info(w)
	}
	return out
}

// Active returns the ID of the active window.
func (r *Registry) Active() uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active.ID
}

// Status returns the ID of the status window.
func (r *Registry) Status() uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status.ID
}

// Members returns the membership store of the channel windows.
func (r *Registry) Members() *Members {
	return r.members
}

// Records returns a copy of the window's scrollback, oldest first.
func (r *Registry) Records(id uuid.UUID) ([]scrollback.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: window %s", ErrNotFound, id)
	}
	return w.buf.Records(), nil
}

// Select activates the window with the given refnum.
func (r *Registry) Select(refnum int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.byRefnum(refnum)
	if w == nil {
		return fmt.Errorf("%w: refnum %d", ErrNotFound, refnum)
	}
	r.activate(w)
	return nil
}

// SelectLabel activates the window with the given label.
func (r *Registry) SelectLabel(label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byLabel[labelKey(label)]
	if !ok {
		return fmt.Errorf("%w: window %q", ErrNotFound, label)
	}
	r.activate(w)
	return nil
}

// SelectPrev activates the window before the active one, wrapping to the
// last.
func (r *Registry) SelectPrev() {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.active.Refnum - 1
	if n < 1 {
		n = len(r.windows)
	}
	r.activate(r.byRefnum(n))
}

// SelectNext activates the window after the active one, wrapping to the
// status window.
func (r *Registry) SelectNext() {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.active.Refnum + 1
	if n > len(r.windows) {
		n = 1
	}
	r.activate(r.byRefnum(n))
}

// SetTitle changes a window's title. An empty title is ignored.
func (r *Registry) SetTitle(label, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byLabel[labelKey(label)]
	if !ok {
		return fmt.Errorf("%w: window %q", ErrNotFound, label)
	}
	if title == "" {
		return nil
	}
	w.Title = title
	if w == r.active {
		r.updateTitlebar()
	}
	return nil
}

// SetChanModes records the mode string of a channel window.
func (r *Registry) SetChanModes(label, modes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byLabel[labelKey(label)]
	if !ok {
		return fmt.Errorf("%w: window %q", ErrNotFound, label)
	}
	w.ChanModes = modes
	w.ReceivedModes = true
	if w == r.active {
		r.updateStatusbar()
	}
	return nil
}

// SetIdentity sets the nick, user modes and server shown on the status
// bar.
func (r *Registry) SetIdentity(nick, userModes, server string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nick, r.userModes, r.server = nick, userModes, server
	r.updateStatusbar()
}

// Deliver appends a message to a window's scrollback and draws it unless
// the window is in scroll mode. uuid.Nil addresses the active window.
func (r *Registry) Deliver(id uuid.UUID, text string, indent int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.active
	if id != uuid.Nil {
		var ok bool
		if w, ok = r.byID[id]; !ok {
			return fmt.Errorf("%w: window %s", ErrNotFound, id)
		}
	}

	w.buf.Append(scrollback.Record{Text: text, Indent: indent})
	if !w.ScrollMode {
		printtext.Puts(w.pane, text, indent, -1)
	}
	return nil
}

// Clear empties a window's scrollback and pane.
func (r *Registry) Clear(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: window %s", ErrNotFound, id)
	}
	w.buf.Clear()
	w.ScrollMode, w.SavedSize, w.ScrollCount = false, 0, 0
	r.erase(w.pane)
	r.updateStatusbar()
	return nil
}

// SetBufferSize changes the scrollback capacity of every window. Shrinking
// drops the oldest records.
func (r *Registry) SetBufferSize(n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bufferSize = n
	for _, w := range r.windows {
		w.buf.SetCapacity(r.bufferSize)
	}
}

// SetMaxWindows changes the window limit. Existing windows are kept.
func (r *Registry) SetMaxWindows(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > 0 {
		r.maxWindows = n
	}
}

// SetBellOnInvalidScroll turns the scroll bell on or off.
func (r *Registry) SetBellOnInvalidScroll(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bell = on
}

func (r *Registry) erase(p *terminal.Pane) {
	r.screen.Lock()
	p.Erase()
	r.screen.Unlock()
}
