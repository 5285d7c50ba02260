package terminal

import (
	"errors"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mattn/go-runewidth"
)

var (
	// ErrPaneClosed is returned when drawing on a pane that was closed.
	ErrPaneClosed = errors.New("pane closed")
	// ErrPaneFull is returned when a non-scrollable pane has no room left.
	ErrPaneFull = errors.New("pane full")
)

// Attr is a set of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrReverse
	AttrUnderline

	AttrNormal Attr = 0
)

// Pane is a grid of uv cells with a cursor and a current drawing style.
// Blank cells hold uv.EmptyCell; the columns covered by a wide cell hold
// the zero cell.
//
// Pane methods do not lock; callers hold the Screen lock around any
// sequence of calls.
type Pane struct {
	screen *Screen

	rows, cols int
	cells      []uv.Line
	y, x       int
	scrollable bool
	closed     bool

	// pendingScroll is set when a line feed reached the bottom row of a
	// scrollable pane. The scroll happens before the next rune is drawn.
	pendingScroll bool

	// lastY and lastX locate the most recently drawn cell, which zero-width
	// runes join. lastX is -1 when there is none.
	lastY, lastX int

	attr  Attr
	pair  int
	style uv.Style
}

// Screen returns the screen the pane draws on.
func (p *Pane) Screen() *Screen { return p.screen }

// Rows returns the pane height.
func (p *Pane) Rows() int { return p.rows }

// Cols returns the pane width.
func (p *Pane) Cols() int { return p.cols }

// Scrollable reports whether output scrolls the pane.
func (p *Pane) Scrollable() bool { return p.scrollable }

// Closed reports whether Close was called.
func (p *Pane) Closed() bool { return p.closed }

// Cursor returns the cursor position.
func (p *Pane) Cursor() (y, x int) { return p.y, p.x }

// Close releases the cell grid. Further drawing fails with ErrPaneClosed.
func (p *Pane) Close() {
	p.closed = true
	p.cells = nil
}

// Resize recreates the grid at the new size. Content is discarded; owners
// replay it afterwards.
func (p *Pane) Resize(rows, cols int) {
	p.resize(rows, cols)
	p.screen.HasNewOutput.Store(true)
}

func (p *Pane) resize(rows, cols int) {
	p.rows, p.cols = max(rows, 0), max(cols, 0)
	p.cells = make([]uv.Line, p.rows)
	for i := range p.cells {
		p.cells[i] = uv.NewLine(p.cols)
	}
	p.y, p.x = 0, 0
	p.pendingScroll = false
	p.lastX = -1
}

func blank(l uv.Line) {
	for i := range l {
		l[i] = uv.EmptyCell
	}
}

// Erase blanks the pane and homes the cursor.
func (p *Pane) Erase() {
	for _, row := range p.cells {
		blank(row)
	}
	p.y, p.x = 0, 0
	p.pendingScroll = false
	p.lastX = -1
	p.screen.HasNewOutput.Store(true)
}

// Style returns the current drawing attributes and color pair.
func (p *Pane) Style() (Attr, int) { return p.attr, p.pair }

// SetStyle replaces the drawing attributes and color pair.
func (p *Pane) SetStyle(a Attr, pair int) {
	p.attr, p.pair = a, pair
	p.style = p.screen.CellStyle(a, pair)
}

// AttrOn turns attributes on.
func (p *Pane) AttrOn(a Attr) { p.SetStyle(p.attr|a, p.pair) }

// AttrOff turns attributes off.
func (p *Pane) AttrOff(a Attr) { p.SetStyle(p.attr&^a, p.pair) }

// AddString draws every rune of s.
func (p *Pane) AddString(s string) error {
	for _, r := range s {
		if err := p.AddRune(r); err != nil {
			return err
		}
	}
	return nil
}

// AddRune draws r at the cursor with the current style. A newline blanks
// the rest of the row and moves to the next one. Zero-width runes join the
// grapheme cluster of the cell drawn before them. Runes that do not fit
// wrap onto the next row. At the bottom a scrollable pane scrolls once there
// is something to draw on the new row; any other pane reports ErrPaneFull.
func (p *Pane) AddRune(r rune) error {
	if p.closed {
		return ErrPaneClosed
	}
	if p.rows == 0 || p.cols == 0 {
		return ErrPaneFull
	}
	p.screen.HasNewOutput.Store(true)

	if r == '\n' {
		p.flushScroll()
		if p.x < p.cols {
			blank(p.cells[p.y][p.x:])
		}
		p.lastX = -1
		return p.lineFeed()
	}

	w := runewidth.RuneWidth(r)
	if w == 0 {
		if p.lastX >= 0 {
			p.cells[p.lastY][p.lastX].Content += string(r)
		}
		return nil
	}
	if w > p.cols {
		r, w = '?', 1
	}
	if p.x+w > p.cols {
		if p.x < p.cols {
			blank(p.cells[p.y][p.x:])
		}
		if err := p.lineFeed(); err != nil {
			return err
		}
	}
	p.flushScroll()

	p.cells[p.y].Set(p.x, &uv.Cell{Content: string(r), Width: w, Style: p.style})
	p.lastY, p.lastX = p.y, p.x
	p.x += w
	return nil
}

func (p *Pane) lineFeed() error {
	p.x = 0
	if p.y < p.rows-1 {
		p.y++
		return nil
	}
	if !p.scrollable {
		p.x = p.cols
		return ErrPaneFull
	}
	p.pendingScroll = true
	return nil
}

func (p *Pane) flushScroll() {
	if !p.pendingScroll {
		return
	}
	p.pendingScroll = false
	first := p.cells[0]
	copy(p.cells, p.cells[1:])
	blank(first)
	p.cells[p.rows-1] = first
	if p.lastX >= 0 {
		p.lastY--
		if p.lastY < 0 {
			p.lastX = -1
		}
	}
}

// Line returns row y. The slice aliases the pane and must not be kept
// across draws.
func (p *Pane) Line(y int) uv.Line {
	if y < 0 || y >= len(p.cells) {
		return nil
	}
	return p.cells[y]
}

// PlainLine returns row y as text with trailing blanks trimmed.
func (p *Pane) PlainLine(y int) string {
	var sb strings.Builder
	for _, c := range p.Line(y) {
		if isPlaceholder(&c) {
			continue
		}
		sb.WriteString(c.Content)
	}
	return strings.TrimRight(sb.String(), " ")
}

// isPlaceholder reports whether c is covered by the wide cell to its left.
func isPlaceholder(c *uv.Cell) bool {
	return c.Width == 0 && c.Content == ""
}

// PlainLines returns every row as text.
func (p *Pane) PlainLines() []string {
	lines := make([]string, p.rows)
	for y := range lines {
		lines[y] = p.PlainLine(y)
	}
	return lines
}
