// Package printtext renders decorated chat text. Puts draws a decorated
// string onto a pane, Format assembles a message with its timestamp and
// specifiers, and Printer ties both to a window's scrollback.
package printtext

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding"

	"github.com/Gaurav-Gosain/tuirc/internal/markup"
	"github.com/Gaurav-Gosain/tuirc/internal/terminal"
	"github.com/Gaurav-Gosain/tuirc/internal/theme"
)

var (
	charsetsMu sync.RWMutex
	charsets   = markup.DefaultCharsets()
)

// SetFallbackCharsets sets the charsets tried, in order, for text that is
// not valid UTF-8. Unknown names are reported but do not prevent the known
// ones from being used. An empty list restores the defaults.
func SetFallbackCharsets(names []string) error {
	if len(names) == 0 {
		charsetsMu.Lock()
		charsets = markup.DefaultCharsets()
		charsetsMu.Unlock()
		return nil
	}

	encs, err := markup.LookupCharsets(names)
	if len(encs) == 0 {
		encs = markup.DefaultCharsets()
	}
	charsetsMu.Lock()
	charsets = encs
	charsetsMu.Unlock()
	return err
}

func fallbackCharsets() []encoding.Encoding {
	charsetsMu.RLock()
	defer charsetsMu.RUnlock()
	return charsets
}

// decoration tracks which toggles the text has turned on.
type decoration struct {
	blink, bold, color, reverse, underline bool
}

// toggle flips a text attribute and applies the new state to the pane.
func toggle(pane *terminal.Pane, on *bool, a terminal.Attr) {
	*on = !*on
	if *on {
		pane.AttrOn(a)
	} else {
		pane.AttrOff(a)
	}
}

// Puts draws text onto pane and returns how many line breaks it emitted.
//
// Scrollable panes get a trailing newline, word-aware wrapping and
// continuation lines indented by indent blank columns. If maxLines is
// positive, drawing stops once that many line breaks were emitted. Other
// panes are drawn verbatim until they are full.
//
// Puts holds the pane's screen lock while drawing.
func Puts(pane *terminal.Pane, text string, indent, maxLines int) int {
	if pane == nil || text == "" {
		return 0
	}

	decoded, err := markup.Decode([]byte(text), fallbackCharsets()...)
	if err != nil {
		log.Warn("printtext: lossy conversion", "err", err)
	}

	screen := pane.Screen()
	screen.Lock()
	defer screen.Unlock()

	w := &writer{
		pane:     pane,
		strs:     theme.CurrentStrings(),
		indent:   indent,
		maxLines: maxLines,
	}
	w.run(decoded)
	pane.SetStyle(terminal.AttrNormal, 0)
	return w.repCount
}

type writer struct {
	pane *terminal.Pane
	strs theme.Strings
	deco decoration

	indent   int
	maxLines int

	insertCount int
	lineCount   int
	repCount    int

	// stop ends the walk early: the line cap was hit or the pane failed.
	stop bool
}

func (w *writer) run(text string) {
	scrollable := w.pane.Scrollable()
	if scrollable {
		text += "\n"
		// Continuation lines must leave room for content.
		w.indent = min(w.indent, max(w.pane.Cols()-3, 0))
	}
	runes := []rune(strings.Map(func(r rune) rune {
		switch r {
		case '\f', '\t', '\v':
			return ' '
		}
		return r
	}, text))

	for i := 0; i < len(runes) && !w.stop; i++ {
		r := runes[i]
		switch r {
		case markup.Blink:
			toggle(w.pane, &w.deco.blink, terminal.AttrReverse)
		case markup.Bold:
			toggle(w.pane, &w.deco.bold, terminal.AttrBold)
		case markup.Color:
			i += w.color(runes, i+1)
		case markup.Normal:
			w.deco = decoration{}
			w.pane.SetStyle(terminal.AttrNormal, 0)
		case markup.Reverse:
			toggle(w.pane, &w.deco.reverse, terminal.AttrReverse)
		case markup.Underline:
			toggle(w.pane, &w.deco.underline, terminal.AttrUnderline)
		default:
			if !unicode.IsPrint(r) && r != '\n' {
				continue
			}
			if !scrollable {
				w.draw(r)
				continue
			}
			w.literal(runes, i)
		}

		if scrollable && w.maxLines > 0 && w.lineCount >= w.maxLines {
			w.stop = true
		}
	}
}

// color applies the spec that starts at runes[start] and returns how many
// runes it consumed.
func (w *writer) color(runes []rune, start int) int {
	if w.deco.color {
		a, _ := w.pane.Style()
		w.pane.SetStyle(a, 0)
		w.deco.color = false
	}

	spec, n := markup.ParseColor(runes, start)
	if spec.Kind != markup.ColorSet {
		return n
	}

	fg := markup.Resolve(spec.Fg)
	bg := terminal.DefaultColor
	switch {
	case spec.Bg != markup.DefaultBackground:
		bg = markup.Resolve(spec.Bg).Color
	case !w.strs.TermUseDefaultColors:
		bg = markup.Resolve(w.strs.TermBackground).Color
	}

	pair, ok := w.pane.Screen().Pairs().Find(fg.Color, bg)
	if !ok {
		a, _ := w.pane.Style()
		w.pane.SetStyle(a, 0)
		return n
	}

	attr := terminal.AttrDim
	if fg.Bold {
		attr = terminal.AttrBold
	}
	w.pane.SetStyle(attr, pair)
	w.deco.color = true
	return n
}

// literal draws runes[i] on a scrollable pane, breaking the line first when
// the word that follows a space would not fit.
func (w *writer) literal(runes []rune, i int) {
	r := runes[i]

	if r == '\n' {
		w.newline()
		if w.stop {
			return
		}
		if i+1 < len(runes) && w.indent > 0 {
			w.doIndent()
		}
		return
	}

	diff := 0
	if r == ' ' {
		diff = nextWordWidth(runes, i+1)
	}

	if w.insertCount+diff+1 < w.pane.Cols()-1 {
		w.draw(r)
		w.insertCount += runewidth.RuneWidth(r)
		return
	}

	w.newline()
	if w.stop {
		return
	}
	if w.indent > 0 {
		w.doIndent()
	}
	if diff > 0 && r == ' ' {
		return
	}
	w.draw(r)
	w.insertCount += runewidth.RuneWidth(r)
}

func (w *writer) newline() {
	w.draw('\n')
	w.insertCount = 0
	w.repCount++
	if w.maxLines > 0 {
		w.lineCount++
		if w.lineCount >= w.maxLines {
			w.stop = true
		}
	}
}

// doIndent writes indent blanks with every attribute suspended.
func (w *writer) doIndent() {
	a, pair := w.pane.Style()
	w.pane.SetStyle(terminal.AttrNormal, 0)
	for range w.indent {
		w.draw(' ')
		w.insertCount++
	}
	w.pane.SetStyle(a, pair)
}

func (w *writer) draw(r rune) {
	if w.stop {
		return
	}
	err := w.pane.AddRune(r)
	switch {
	case err == nil:
	case errors.Is(err, terminal.ErrPaneFull) && !w.pane.Scrollable():
		w.stop = true
	default:
		log.Error("printtext: render failed", "err", err)
		w.stop = true
	}
}

// nextWordWidth returns the display width from runes[start] up to and
// including the next space, ignoring markup. It is 0 when no space follows.
func nextWordWidth(runes []rune, start int) int {
	width := 0
	for i := start; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == ' ':
			return width + 1
		case r == markup.Color:
			_, n := markup.ParseColor(runes, i+1)
			i += n
		case markup.IsAttribute(r):
		default:
			width += runewidth.RuneWidth(r)
		}
	}
	return 0
}
