package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/theme"
	"github.com/Gaurav-Gosain/tuirc/internal/window"
	"github.com/charmbracelet/x/ansi"
)

// Frame renders the whole screen: title bar, active window, status bar and
// the input line, and returns the cursor column on the input row.
func (c *Client) Frame() (string, int) {
	bar := window.BarStyle()
	status := bar
	if c.Ringing() {
		fg, bg := theme.BellColors()
		status = lipgloss.NewStyle().Foreground(fg).Background(bg)
	}
	v := c.Registry.RenderWith(bar, status)

	prompt := ansi.Truncate(c.Prompt(), c.Width, "")
	line, col := c.Input.Render(prompt, c.Width)

	var sb strings.Builder
	sb.WriteString(v.Title)
	sb.WriteByte('\n')
	if v.Body != "" {
		sb.WriteString(v.Body)
		sb.WriteByte('\n')
	}
	sb.WriteString(v.Status)
	sb.WriteByte('\n')
	sb.WriteString(line)

	return sb.String(), min(col, max(c.Width-1, 0))
}

// View renders the client.
func (c *Client) View() tea.View {
	var view tea.View

	// Fast path: return cached content when frame-skip determined nothing changed.
	if c.renderSkipped && c.cachedView != "" {
		view.SetContent(c.cachedView)
	} else {
		content, col := c.Frame()
		c.cachedView = content
		c.cursorCol = col
		view.SetContent(content)
	}

	view.AltScreen = true
	view.DisableBracketedPasteMode = false
	view.MouseMode = tea.MouseModeCellMotion

	if cursor := c.Input.Cursor(); cursor != nil {
		cursor.X, cursor.Y = c.cursorCol, c.Height-1
		view.Cursor = cursor
	}
	return view
}
