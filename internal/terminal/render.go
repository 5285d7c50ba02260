package terminal

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuirc/internal/theme"
)

// CellStyle maps attributes and a color pair onto the uv style stored in
// drawn cells. Bold foregrounds use the bright half of the palette.
func (s *Screen) CellStyle(a Attr, pair int) uv.Style {
	var st uv.Style

	if pr, ok := s.pairs.Pair(pair); ok {
		palette := theme.GetANSIPalette()
		if pr.Fg != DefaultColor {
			fg := pr.Fg
			if a&AttrBold != 0 {
				fg += 8
			}
			if isColorSafe(palette[fg]) {
				st.Fg = palette[fg]
			}
		}
		if pr.Bg != DefaultColor && isColorSafe(palette[pr.Bg]) {
			st.Bg = palette[pr.Bg]
		}
	}

	if a&AttrBold != 0 {
		st.Attrs |= uv.AttrBold
	}
	if a&AttrDim != 0 {
		st.Attrs |= uv.AttrFaint
	}
	if a&AttrReverse != 0 {
		st.Attrs |= uv.AttrReverse
	}
	if a&AttrUnderline != 0 {
		st.Underline = uv.UnderlineSingle
	}
	return st
}

// Render returns the pane as styled text, one line per row, each padded to
// the pane width. Callers hold the Screen lock.
func (p *Pane) Render() string { return p.render(nil) }

// RenderWith renders the pane on top of base: unstyled cells take base and
// styled cells inherit whatever they leave unset. Callers hold the Screen
// lock.
func (p *Pane) RenderWith(base lipgloss.Style) string { return p.render(&base) }

func (p *Pane) render(base *lipgloss.Style) string {
	styles := make(map[string]lipgloss.Style)

	lines := make([]string, len(p.cells))
	var run strings.Builder
	for y, row := range p.cells {
		var sb strings.Builder
		var cur uv.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			switch {
			case cur.IsZero() && base == nil:
				sb.WriteString(run.String())
			case cur.IsZero():
				sb.WriteString(base.Render(run.String()))
			default:
				key := cur.String()
				st, ok := styles[key]
				if !ok {
					st = buildCellStyle(&cur)
					if base != nil {
						st = st.Inherit(*base)
					}
					styles[key] = st
				}
				sb.WriteString(st.Render(run.String()))
			}
			run.Reset()
		}

		for i := range row {
			c := &row[i]
			if isPlaceholder(c) {
				continue
			}
			if !c.Style.Equal(&cur) {
				flush()
				cur = c.Style
			}
			run.WriteString(c.Content)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// buildCellStyle converts a cell style to lipgloss.
func buildCellStyle(s *uv.Style) lipgloss.Style {
	st := lipgloss.NewStyle()

	if isColorSafe(s.Fg) {
		st = st.Foreground(s.Fg)
	}
	if isColorSafe(s.Bg) {
		st = st.Background(s.Bg)
	}
	if s.Attrs&uv.AttrBold != 0 {
		st = st.Bold(true)
	}
	if s.Attrs&uv.AttrFaint != 0 {
		st = st.Faint(true)
	}
	if s.Attrs&uv.AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if s.Underline != uv.UnderlineNone {
		st = st.Underline(true)
	}
	return st
}

// isColorSafe reports whether c can be used. Theme colors may be typed nil
// pointers, which panic on use.
func isColorSafe(c color.Color) (ok bool) {
	if c == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_, _, _, _ = c.RGBA()
	return true
}
