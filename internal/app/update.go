package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/config"
	"github.com/Gaurav-Gosain/tuirc/internal/printtext"
)

// TickerMsg represents a periodic tick event for updating the UI.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// ConfigReloadedMsg carries a config file that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.UserConfig
}

// ConfigErrorMsg reports a config file that failed to reload.
type ConfigErrorMsg struct {
	Err error
}

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, c *Client) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the tick timer and, with live reloading, the config listener.
func (c *Client) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd()}
	if c.watcher != nil {
		cmds = append(cmds, ListenForConfig(c.watcher))
	}
	return tea.Batch(cmds...)
}

// ListenForConfig waits for the next reloaded config or reload error.
// It returns nil once the watcher has stopped.
func ListenForConfig(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Updates():
			if !ok {
				return nil
			}
			return ConfigReloadedMsg{Config: cfg}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return ConfigErrorMsg{Err: err}
		}
	}
}

// TickCmd creates a command that generates tick messages at 60 FPS.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// IdleTickCmd creates a command that generates tick messages at 10 FPS.
// Used when nothing has been drawn for a while to reduce CPU.
func IdleTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.IdleFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles all incoming messages and updates the client state.
func (c *Client) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Any non-tick message invalidates the render cache
	if _, isTick := msg.(TickerMsg); !isTick {
		c.renderSkipped = false
	}

	switch msg := msg.(type) {
	case TickerMsg:
		now := time.Time(msg)
		changed := c.Screen.HasNewOutput.Swap(false)

		if c.bellRung.Swap(false) {
			c.bellUntil = now.Add(config.BellDuration)
			changed = true
		}
		if !c.bellUntil.IsZero() && !now.Before(c.bellUntil) {
			c.bellUntil = time.Time{}
			changed = true
		}

		nextTick := TickCmd()
		if changed || c.Ringing() {
			c.idleFrames = 0
		} else {
			c.idleFrames++
			if c.idleFrames >= config.IdleThresholdFrames {
				nextTick = IdleTickCmd()
			}
		}

		// Frame skipping
		c.renderSkipped = !changed
		return c, nextTick

	case tea.KeyPressMsg, tea.PasteMsg, tea.MouseWheelMsg:
		// Reset idle counter on any user input to restore full tick rate
		c.idleFrames = 0
		if inputHandler != nil {
			return inputHandler(msg, c)
		}
		return c, nil

	case tea.WindowSizeMsg:
		c.Width, c.Height = max(msg.Width, 1), max(msg.Height, 1)
		c.Registry.Resize(c.Height, c.Width)
		return c, nil

	case ConfigReloadedMsg:
		c.applyConfig(msg.Config)
		return c, ListenForConfig(c.watcher)

	case ConfigErrorMsg:
		c.status(printtext.Spec1Warn, "Configuration not reloaded: %v", msg.Err)
		return c, ListenForConfig(c.watcher)
	}

	return c, nil
}

// Ringing reports whether the visual bell is showing.
func (c *Client) Ringing() bool {
	return !c.bellUntil.IsZero()
}
