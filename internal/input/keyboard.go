package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/app"
	"github.com/Gaurav-Gosain/tuirc/internal/config"
)

// HandleKeyPress runs the bound action for msg, or edits the input line.
func HandleKeyPress(msg tea.KeyPressMsg, c *app.Client) (tea.Model, tea.Cmd) {
	if action, ok := config.Keys.Lookup(msg.String()); ok {
		return GetDispatcher().Dispatch(action, msg, c)
	}

	in := c.Input
	switch msg.String() {
	case "enter":
		return c, c.Submit(in.Submit())
	case "up":
		in.HistoryPrev()
		return c, nil
	case "down":
		in.HistoryNext()
		return c, nil
	case "tab":
		in.Insert(" ")
		return c, nil
	}

	// Unknown ctrl and alt chords are dropped rather than typed.
	if msg.Mod&(tea.ModCtrl|tea.ModAlt) != 0 && !in.Handles(msg) {
		return c, nil
	}
	return c, in.Update(msg)
}
