// Package input implements tuirc's keyboard handling: bound actions first,
// then line editing on the input line. The mouse wheel scrolls the active
// window.
package input

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, c *app.Client) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, c)
	case tea.PasteMsg:
		return c, handlePaste(msg.Content, c)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, c)
	}
	return c, nil
}

// handlePaste types pasted text into the input line. Each complete line is
// submitted; a trailing partial line stays in the editor. Tabs become
// spaces.
func handlePaste(content string, c *app.Client) tea.Cmd {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var cmds []tea.Cmd
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		c.Input.Insert(line)
		if i < len(lines)-1 {
			if cmd := c.Submit(c.Input.Submit()); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}
