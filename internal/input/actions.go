package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/app"
	"github.com/Gaurav-Gosain/tuirc/internal/config"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(_ tea.KeyPressMsg, c *app.Client) (*app.Client, tea.Cmd)

// ActionDispatcher maps bound actions to handler functions
type ActionDispatcher struct {
	handlers map[config.Action]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[config.Action]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	d.Register(config.ActionScrollUp, handleScrollUp)
	d.Register(config.ActionScrollDown, handleScrollDown)
	d.Register(config.ActionNextWindow, handleNextWindow)
	d.Register(config.ActionPrevWindow, handlePrevWindow)
	d.Register(config.ActionQuit, handleQuit)
	d.Register(config.ActionRedraw, handleRedraw)
}

// Register registers a handler for an action
func (d *ActionDispatcher) Register(action config.Action, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action config.Action, msg tea.KeyPressMsg, c *app.Client) (*app.Client, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, c)
	}
	return c, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action config.Action) bool {
	_, ok := d.handlers[action]
	return ok
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

func handleScrollUp(_ tea.KeyPressMsg, c *app.Client) (*app.Client, tea.Cmd) {
	c.Registry.ScrollUp()
	return c, nil
}

func handleScrollDown(_ tea.KeyPressMsg, c *app.Client) (*app.Client, tea.Cmd) {
	c.Registry.ScrollDown()
	return c, nil
}

func handleNextWindow(_ tea.KeyPressMsg, c *app.Client) (*app.Client, tea.Cmd) {
	c.Registry.SelectNext()
	return c, nil
}

func handlePrevWindow(_ tea.KeyPressMsg, c *app.Client) (*app.Client, tea.Cmd) {
	c.Registry.SelectPrev()
	return c, nil
}

func handleQuit(_ tea.KeyPressMsg, c *app.Client) (*app.Client, tea.Cmd) {
	return c, tea.Quit
}

func handleRedraw(_ tea.KeyPressMsg, c *app.Client) (*app.Client, tea.Cmd) {
	c.Registry.Redraw()
	return c, tea.ClearScreen
}
