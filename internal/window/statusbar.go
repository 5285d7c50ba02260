package window

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/tuirc/internal/markup"
	"github.com/Gaurav-Gosain/tuirc/internal/printtext"
	"github.com/Gaurav-Gosain/tuirc/internal/theme"
)

// IsChannel reports whether label names a channel rather than a query or
// the status window.
func IsChannel(label string) bool {
	return label != "" && strings.ContainsRune("#&+!", rune(label[0]))
}

// identity is the nick(modes)@server part of the status bar. Callers hold
// r.mu.
func (r *Registry) identity() string {
	if r.nick == "" {
		return ""
	}
	if r.server == "" {
		return r.nick
	}
	return fmt.Sprintf("%s(%s)@%s", r.nick, strings.TrimPrefix(r.userModes, ":"), r.server)
}

// chanModes is the window part of the status bar. Callers hold r.mu.
func (r *Registry) chanModes() string {
	w := r.active
	switch {
	case w == r.status:
		return theme.CurrentStrings().Slogan
	case IsChannel(w.Label):
		return fmt.Sprintf("%s(%s)", w.Label, w.ChanModes)
	}
	return w.Label
}

// statusLine builds the status bar text. Callers hold r.mu.
func (r *Registry) statusLine() string {
	strs := theme.CurrentStrings()
	lb, rb := strs.LeftBracket, strs.RightBracket

	more := ""
	if r.active.ScrollMode {
		more = "-- MORE --"
	}
	return fmt.Sprintf("%s %s%d/%d%s %s%s%s %s%s%s %s",
		strs.StatusbarSpec,
		lb, r.active.Refnum, len(r.windows), rb,
		lb, r.identity(), rb,
		lb, r.chanModes(), rb,
		more)
}

// updateStatusbar redraws the status bar. Callers hold r.mu.
func (r *Registry) updateStatusbar() {
	text := r.statusLine()
	if printtext.NoColors() {
		text = markup.Strip(text)
	}
	r.erase(r.statusPane)
	printtext.Puts(r.statusPane, text, 0, -1)
}

// updateTitlebar redraws the title bar with the active window's title.
// Callers hold r.mu.
func (r *Registry) updateTitlebar() {
	r.erase(r.titlePane)
	printtext.Puts(r.titlePane, " "+r.active.Title+" ", 0, -1)
}

// StatusLine returns the status bar text without markup.
func (r *Registry) StatusLine() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return strings.TrimRight(markup.Strip(r.statusLine()), " ")
}

// View is the rendered state of the screen: the title bar, the active
// window's pane and the status bar.
type View struct {
	Title  string
	Body   string
	Status string
}

// BarStyle returns the theme's style for the title and status bars.
func BarStyle() lipgloss.Style {
	fg, bg := theme.BarColors()
	return lipgloss.NewStyle().Foreground(fg).Background(bg)
}

// Render renders the title bar, the active pane and the status bar, with
// both bars in BarStyle.
func (r *Registry) Render() View {
	bar := BarStyle()
	return r.RenderWith(bar, bar)
}

// RenderWith renders like Render with the given bar styles.
func (r *Registry) RenderWith(title, status lipgloss.Style) View {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.screen.Lock()
	defer r.screen.Unlock()
	return View{
		Title:  r.titlePane.RenderWith(title),
		Body:   r.active.pane.Render(),
		Status: r.statusPane.RenderWith(status),
	}
}

// PlainLines returns the active pane's rows as text, for tests and
// screen dumps.
func (r *Registry) PlainLines() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.screen.Lock()
	defer r.screen.Unlock()
	return r.active.pane.PlainLines()
}
