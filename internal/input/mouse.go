package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/app"
)

// handleMouseWheel scrolls the active window's scrollback.
func handleMouseWheel(msg tea.MouseWheelMsg, c *app.Client) (*app.Client, tea.Cmd) {
	switch msg.Button {
	case tea.MouseWheelUp:
		c.Registry.ScrollUp()
	case tea.MouseWheelDown:
		c.Registry.ScrollDown()
	}
	return c, nil
}
