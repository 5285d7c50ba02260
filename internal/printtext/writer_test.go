package printtext

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuirc/internal/markup"
	"github.com/Gaurav-Gosain/tuirc/internal/terminal"
)

func newPane(rows, cols int, scrollable bool) *terminal.Pane {
	return terminal.NewScreen(rows, cols, colorprofile.ANSI).NewPane(rows, cols, scrollable)
}

// hasStyle reports whether c was drawn with attributes a and color pair.
func hasStyle(p *terminal.Pane, c uv.Cell, a terminal.Attr, pair int) bool {
	want := p.Screen().CellStyle(a, pair)
	return c.Style.Equal(&want)
}

func TestPutsPlainText(t *testing.T) {
	p := newPane(3, 20, true)
	if n := Puts(p, "hello", 0, 0); n != 1 {
		t.Errorf("expected 1 line break, got %d", n)
	}
	if got := p.PlainLine(0); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
	if y, x := p.Cursor(); y != 1 || x != 0 {
		t.Errorf("expected cursor at 1,0, got %d,%d", y, x)
	}
}

func TestPutsWordWrapAndIndent(t *testing.T) {
	p := newPane(4, 12, true)
	n := Puts(p, "aaaa bbbb cccc dd", 2, 0)
	if n != 2 {
		t.Errorf("expected 2 line breaks, got %d", n)
	}

	want := []string{"aaaa bbbb", "  cccc dd", ""}
	for i, w := range want {
		if got := p.PlainLine(i); got != w {
			t.Errorf("row %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestPutsIndentSuspendsAttributes(t *testing.T) {
	p := newPane(4, 12, true)
	Puts(p, "\x02aaaa bbbb cccc dd", 2, 0)

	row := p.Line(1)
	for i := range 2 {
		if !row[i].Style.IsZero() {
			t.Errorf("indent cell %d: expected no attributes, got %+v", i, row[i].Style)
		}
	}
	if !hasStyle(p, row[2], terminal.AttrBold, 0) {
		t.Errorf("expected bold to resume after the indent, got %+v", row[2].Style)
	}
}

func TestPutsClampsWideIndent(t *testing.T) {
	p := newPane(4, 12, true)
	if n := Puts(p, "abcdefghijkl", 50, 0); n != 3 {
		t.Errorf("expected 3 line breaks, got %d", n)
	}

	want := []string{"abcdefghij", "         k", "         l", ""}
	for i, w := range want {
		if got := p.PlainLine(i); got != w {
			t.Errorf("row %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestPutsColorCommaAtEnd(t *testing.T) {
	p := newPane(2, 20, true)
	Puts(p, "x\x031,", 0, 0)
	if got := p.PlainLine(0); got != "x," {
		t.Errorf("expected %q, got %q", "x,", got)
	}
}

func TestPutsMaxLines(t *testing.T) {
	p := newPane(4, 20, true)
	n := Puts(p, "a\nb\nc", 0, 2)
	if n != 2 {
		t.Errorf("expected 2 line breaks, got %d", n)
	}
	want := []string{"a", "b", "", ""}
	for i, w := range want {
		if got := p.PlainLine(i); got != w {
			t.Errorf("row %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestPutsNewlineIndent(t *testing.T) {
	p := newPane(3, 20, true)
	Puts(p, "one\ntwo", 3, 0)
	if got := p.PlainLine(1); got != "   two" {
		t.Errorf("expected continuation to be indented, got %q", got)
	}
	if got := p.PlainLine(2); got != "" {
		t.Errorf("expected no indent after the final newline, got %q", got)
	}
}

func TestPutsNonScrollableVerbatim(t *testing.T) {
	p := newPane(1, 5, false)
	if n := Puts(p, "abcdefgh", 4, 0); n != 0 {
		t.Errorf("expected no line breaks, got %d", n)
	}
	if got := p.PlainLine(0); got != "abcde" {
		t.Errorf("expected %q, got %q", "abcde", got)
	}
}

func TestPutsReplacesControlSpaces(t *testing.T) {
	p := newPane(2, 20, true)
	Puts(p, "a\tb\vc\fd", 0, 0)
	if got := p.PlainLine(0); got != "a b c d" {
		t.Errorf("expected %q, got %q", "a b c d", got)
	}
}

func TestPutsAttributeToggles(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		first  terminal.Attr
		second terminal.Attr
	}{
		{"bold", "\x02a\x02b", terminal.AttrBold, terminal.AttrNormal},
		{"underline", "\x1fa\x1fb", terminal.AttrUnderline, terminal.AttrNormal},
		{"reverse", "\x16a\x16b", terminal.AttrReverse, terminal.AttrNormal},
		{"blink shows as reverse", "\x1da\x1db", terminal.AttrReverse, terminal.AttrNormal},
		{"normal resets", "\x02\x1fa\x0fb", terminal.AttrBold | terminal.AttrUnderline, terminal.AttrNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPane(2, 10, true)
			Puts(p, tt.text, 0, 0)
			row := p.Line(0)
			if !hasStyle(p, row[0], tt.first, 0) {
				t.Errorf("first cell: expected %v, got %+v", tt.first, row[0].Style)
			}
			if !hasStyle(p, row[1], tt.second, 0) {
				t.Errorf("second cell: expected %v, got %+v", tt.second, row[1].Style)
			}
		})
	}
}

func TestPutsColor(t *testing.T) {
	p := newPane(2, 20, true)
	pairs := p.Screen().Pairs()

	Puts(p, "\x034r\x031,4b\x03n", 0, 0)
	row := p.Line(0)

	red, _ := pairs.Find(markup.Red, terminal.DefaultColor)
	if !hasStyle(p, row[0], terminal.AttrBold, red) {
		t.Errorf("expected bold red on default, got %+v", row[0])
	}

	blackOnRed, _ := pairs.Find(markup.Black, markup.Red)
	if !hasStyle(p, row[1], terminal.AttrDim, blackOnRed) {
		t.Errorf("expected dim black on red, got %+v", row[1])
	}

	if row[2].Style.Fg != nil || row[2].Style.Bg != nil {
		t.Errorf("expected a bare color marker to reset the color, got %+v", row[2].Style)
	}
	if got := p.PlainLine(0); got != "rbn" {
		t.Errorf("expected color specs to be consumed, got %q", got)
	}
}

func TestPutsColorLiteralCommas(t *testing.T) {
	p := newPane(2, 20, true)
	Puts(p, "\x031,,x", 0, 0)
	if got := p.PlainLine(0); got != ",,x" {
		t.Errorf("expected %q, got %q", ",,x", got)
	}
}

func TestPutsColorWithoutPairs(t *testing.T) {
	p := terminal.NewScreen(2, 20, colorprofile.Ascii).NewPane(2, 20, true)
	Puts(p, "\x034r", 0, 0)
	if c := p.Line(0)[0]; c.Style.Fg != nil || c.Style.Bg != nil {
		t.Errorf("expected no color, got %+v", c.Style)
	}
}

func TestPutsDecomposedText(t *testing.T) {
	p := newPane(2, 20, true)
	if n := Puts(p, "e\u0301e\u0301 cafe\u0301", 0, 0); n != 1 {
		t.Errorf("expected 1 line break, got %d", n)
	}
	if got := p.PlainLine(0); got != "e\u0301e\u0301 cafe\u0301" {
		t.Errorf("expected accents to survive, got %q", got)
	}
}

func TestPutsDecodesLatin1(t *testing.T) {
	p := newPane(2, 20, true)
	Puts(p, "caf\xe9", 0, 0)
	if got := p.PlainLine(0); got != "café" {
		t.Errorf("expected %q, got %q", "café", got)
	}
}

func TestPutsResetsStyle(t *testing.T) {
	p := newPane(2, 20, true)
	Puts(p, "\x02\x034bold red", 0, 0)
	if a, pair := p.Style(); a != terminal.AttrNormal || pair != 0 {
		t.Errorf("expected style reset after drawing, got %v/%d", a, pair)
	}
}

func TestPutsClosedPane(t *testing.T) {
	p := newPane(2, 20, true)
	p.Close()
	if n := Puts(p, "text", 0, 0); n != 0 {
		t.Errorf("expected no output on a closed pane, got %d", n)
	}
}

func TestSetFallbackCharsets(t *testing.T) {
	t.Cleanup(func() { _ = SetFallbackCharsets(nil) })

	if err := SetFallbackCharsets([]string{"no-such-charset", "ISO-8859-15"}); err == nil {
		t.Error("expected an error for the unknown charset")
	}
	if n := len(fallbackCharsets()); n != 1 {
		t.Errorf("expected the known charset to be kept, got %d", n)
	}
}
