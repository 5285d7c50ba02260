package terminal

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

func newTestPane(rows, cols int, scrollable bool) *Pane {
	return NewScreen(rows, cols, colorprofile.ANSI).NewPane(rows, cols, scrollable)
}

func TestPaneNewlineAndScroll(t *testing.T) {
	p := newTestPane(3, 10, true)
	if err := p.AddString("one\ntwo\nthree\nfour"); err != nil {
		t.Fatalf("AddString: %v", err)
	}

	want := []string{"two", "three", "four"}
	got := p.PlainLines()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestPaneDefersScrollAtBottom(t *testing.T) {
	p := newTestPane(2, 10, true)
	_ = p.AddString("one\ntwo\n")
	if got := p.PlainLines(); got[0] != "one" || got[1] != "two" {
		t.Errorf("expected the trailing newline not to scroll yet, got %q", got)
	}

	_ = p.AddRune('x')
	if got := p.PlainLines(); got[0] != "two" || got[1] != "x" {
		t.Errorf("expected the next rune to scroll, got %q", got)
	}

	_ = p.AddString("\n\n")
	if got := p.PlainLines(); got[0] != "x" || got[1] != "" {
		t.Errorf("expected an empty line to scroll, got %q", got)
	}
}

func TestPaneWrapsLongLines(t *testing.T) {
	p := newTestPane(3, 4, true)
	if err := p.AddString("abcdefg"); err != nil {
		t.Fatalf("AddString: %v", err)
	}
	if got := p.PlainLine(0); got != "abcd" {
		t.Errorf("expected %q, got %q", "abcd", got)
	}
	if got := p.PlainLine(1); got != "efg" {
		t.Errorf("expected %q, got %q", "efg", got)
	}
}

func TestPaneFullRowThenNewline(t *testing.T) {
	p := newTestPane(3, 4, true)
	if err := p.AddString("abcd\nx"); err != nil {
		t.Fatalf("AddString: %v", err)
	}
	if got := p.PlainLine(1); got != "x" {
		t.Errorf("expected newline after a full row to start row 1, got %q", got)
	}
}

func TestPaneWideRunes(t *testing.T) {
	p := newTestPane(2, 5, true)
	if err := p.AddString("日本語"); err != nil {
		t.Fatalf("AddString: %v", err)
	}
	if got := p.PlainLine(0); got != "日本" {
		t.Errorf("expected %q, got %q", "日本", got)
	}
	if got := p.PlainLine(1); got != "語" {
		t.Errorf("expected %q, got %q", "語", got)
	}
}

func TestPaneNonScrollableStops(t *testing.T) {
	p := newTestPane(1, 5, false)
	err := p.AddString("abcdefgh")
	if !errors.Is(err, ErrPaneFull) {
		t.Fatalf("expected ErrPaneFull, got %v", err)
	}
	if got := p.PlainLine(0); got != "abcde" {
		t.Errorf("expected %q, got %q", "abcde", got)
	}
}

func TestPaneClosed(t *testing.T) {
	p := newTestPane(2, 5, true)
	p.Close()
	if err := p.AddRune('x'); !errors.Is(err, ErrPaneClosed) {
		t.Errorf("expected ErrPaneClosed, got %v", err)
	}
}

func TestPaneStyleApplied(t *testing.T) {
	p := newTestPane(1, 10, true)
	pair, ok := p.Screen().Pairs().Find(1, DefaultColor)
	if !ok {
		t.Fatal("expected red on default pair to exist")
	}
	p.SetStyle(AttrBold, pair)
	_ = p.AddRune('a')
	p.AttrOff(AttrBold)
	_ = p.AddRune('b')

	line := p.Line(0)
	bold := p.Screen().CellStyle(AttrBold, pair)
	if !line[0].Style.Equal(&bold) || line[0].Style.Attrs&uv.AttrBold == 0 {
		t.Errorf("unexpected first cell %+v", line[0])
	}
	plain := p.Screen().CellStyle(AttrNormal, pair)
	if !line[1].Style.Equal(&plain) || line[1].Style.Fg == nil {
		t.Errorf("unexpected second cell %+v", line[1])
	}
	if line[0].Style.Equal(&line[1].Style) {
		t.Error("expected bold to select a different foreground")
	}
}

func TestPairTableDegradesWithoutColor(t *testing.T) {
	if n := NewPairTable(colorprofile.Ascii).Len(); n != 0 {
		t.Errorf("expected no pairs for ascii profile, got %d", n)
	}
	table := NewPairTable(colorprofile.ANSI)
	if n := table.Len(); n != 72 {
		t.Errorf("expected 72 pairs, got %d", n)
	}
	if _, ok := table.Find(8, 0); ok {
		t.Error("expected no pair for out of range foreground")
	}
	n, _ := table.Find(7, 4)
	if p, ok := table.Pair(n); !ok || p != (Pair{Fg: 7, Bg: 4}) {
		t.Errorf("expected pair 7/4, got %+v", p)
	}
}

func TestRenderKeepsText(t *testing.T) {
	p := newTestPane(2, 6, true)
	pair, _ := p.Screen().Pairs().Find(2, DefaultColor)
	p.SetStyle(AttrUnderline, pair)
	_ = p.AddString("go")
	p.SetStyle(AttrNormal, 0)
	_ = p.AddString(" on")

	out := p.Render()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := ansi.Strip(lines[0]); got != "go on " {
		t.Errorf("rendered line lost text: %q", got)
	}
	if lines[0] == ansi.Strip(lines[0]) {
		t.Error("expected the underlined run to be styled")
	}
}

func TestPaneCombiningMarks(t *testing.T) {
	p := newTestPane(2, 10, true)
	if err := p.AddString("e\u0301e\u0301 cafe\u0301"); err != nil {
		t.Fatalf("AddString: %v", err)
	}
	if got := p.PlainLine(0); got != "e\u0301e\u0301 cafe\u0301" {
		t.Errorf("expected combining marks to be kept, got %q", got)
	}
	if y, x := p.Cursor(); y != 0 || x != 7 {
		t.Errorf("expected combining marks to take no columns, cursor at %d,%d", y, x)
	}
	if c := p.Line(0)[0]; c.Content != "e\u0301" || c.Width != 1 {
		t.Errorf("expected one grapheme cluster in the first cell, got %+v", c)
	}
	if got := ansi.Strip(p.Render()); !strings.HasPrefix(got, "e\u0301e\u0301 cafe\u0301") {
		t.Errorf("rendered line lost combining marks: %q", got)
	}
}

func TestPaneCombiningMarkAfterScroll(t *testing.T) {
	p := newTestPane(1, 4, true)
	_ = p.AddString("abcd")
	_ = p.AddString("e\u0301")
	if got := p.PlainLine(0); got != "e\u0301" {
		t.Errorf("expected the mark to join the wrapped cell, got %q", got)
	}

	_ = p.AddRune('\n')
	_ = p.AddRune('\u0301')
	_ = p.AddRune('x')
	if got := p.PlainLine(0); got != "x" {
		t.Errorf("expected a mark with nothing before it to be dropped, got %q", got)
	}
}
