// Package app implements the chat client's Bubble Tea model: the window
// registry, the input line and the slash commands that drive them.
package app

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/config"
	"github.com/Gaurav-Gosain/tuirc/internal/printtext"
	"github.com/Gaurav-Gosain/tuirc/internal/terminal"
	"github.com/Gaurav-Gosain/tuirc/internal/theme"
	"github.com/Gaurav-Gosain/tuirc/internal/window"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Options configure a Client.
type Options struct {
	// Width and Height are the initial terminal geometry. They are replaced
	// by the first window size message.
	Width, Height int

	// Profile is the terminal's color capability.
	Profile colorprofile.Profile

	// Overrides are re-applied over the file on every config reload.
	Overrides config.Overrides

	// ConfigPath enables live reloading of that file when non-empty.
	ConfigPath string

	// Version is shown in the greeting.
	Version string
}

// Client is the chat client model.
type Client struct {
	Registry *window.Registry
	Screen   *terminal.Screen
	Printer  *printtext.Printer
	Input    *InputLine

	Width  int
	Height int
	Nick   string

	opts    Options
	watcher *config.Watcher

	bellRung   atomic.Bool
	bellUntil  time.Time
	idleFrames int

	renderSkipped bool
	cachedView    string
	cursorCol     int
}

// New creates a client with the status window open. The live config
// values must already be applied.
func New(opts Options) *Client {
	opts.Width, opts.Height = max(opts.Width, 1), max(opts.Height, 1)

	c := &Client{
		Screen: terminal.NewScreen(opts.Height, opts.Width, opts.Profile),
		Input:  NewInputLine(config.MaxInputLength, config.InputHistorySize),
		Width:  opts.Width,
		Height: opts.Height,
		Nick:   config.Nickname,
		opts:   opts,
	}
	c.Screen.OnBell = func() { c.bellRung.Store(true) }

	c.Registry = window.NewRegistry(c.Screen, config.RegistryConfig())
	c.Printer = printtext.NewPrinter(c.Registry)
	if err := c.Registry.SetTitle(window.StatusLabel, "tuirc titlebar"); err != nil {
		log.Warn("failed to set status title", "err", err)
	}
	c.Registry.SetIdentity(c.Nick, "", "")

	if opts.ConfigPath != "" {
		c.watcher = config.NewWatcher(opts.ConfigPath)
		go c.watcher.Run()
	}

	if config.StartupGreeting {
		c.greet()
	}
	return c
}

// Close stops background work started by New.
func (c *Client) Close() {
	if c.watcher != nil {
		c.watcher.Stop()
	}
}

// status prints to the status window.
func (c *Client) status(spec printtext.Spec, format string, args ...any) {
	c.printTo(c.Registry.Status(), spec, format, args...)
}

// active prints to the active window.
func (c *Client) active(spec printtext.Spec, format string, args ...any) {
	c.printTo(uuid.Nil, spec, format, args...)
}

func (c *Client) printTo(id uuid.UUID, spec printtext.Spec, format string, args ...any) {
	ctx := printtext.Context{Window: id, Spec: spec, IncludeTS: true}
	if err := c.Printer.Printf(ctx, format, args...); err != nil {
		log.Warn("print failed", "err", err)
	}
}

var logo = []string{
	"  __             _          ",
	" / /___ __ __ __(_)________ ",
	"/ __/ // / // / / __/ __/   ",
	"\\__/\\_,_/\\_,_/_/_/  \\__/    ",
}

func (c *Client) greet() {
	strs := theme.CurrentStrings()
	for _, line := range logo {
		c.status(printtext.Spec1, "%s%s", strs.LogoColor, strings.TrimRight(line, " "))
	}
	c.status(printtext.Spec1, "")

	version := c.opts.Version
	if version == "" {
		version = "dev"
	}
	c.status(printtext.Spec1, "    tuirc %s", version)
	c.status(printtext.Spec1, "    %s", strs.Slogan)
	c.status(printtext.Spec1, "")

	if path, err := config.GetConfigPath(); err == nil {
		c.status(printtext.Spec1, "Program settings are stored in %s%s%s", strs.LeftBracket, path, strs.RightBracket)
	}
	c.status(printtext.Spec1, "\x02%d\x02 color pairs have been initialized", c.Screen.Pairs().Len())
	c.status(printtext.Spec1, "Type %s/help%s for a list of commands", strs.LeftBracket, strs.RightBracket)
	c.status(printtext.Spec1, "")
}

// Prompt is drawn in front of the input line and names the active window.
func (c *Client) Prompt() string {
	info, err := c.Registry.Window(c.Registry.Active())
	switch {
	case err != nil || info.Label == window.StatusLabel:
		return config.Prompt
	case window.IsChannel(info.Label):
		return info.Label + ": "
	}
	return info.Label + config.Prompt
}

// Submit handles a line entered on the input line.
func (c *Client) Submit(line string) tea.Cmd {
	if strings.HasPrefix(line, "/") {
		return c.Execute(line)
	}
	if strings.TrimSpace(line) != "" {
		c.echo(line)
	}
	return nil
}

// echo shows the user's own message in the active window.
func (c *Client) echo(text string) {
	strs := theme.CurrentStrings()
	id := c.Registry.Active()

	prefix := ""
	if info, err := c.Registry.Window(id); err == nil && window.IsChannel(info.Label) {
		prefix = " "
		if mode, ok := c.Registry.Members().Mode(id, c.Nick); ok && mode != window.ModeNone {
			prefix = mode.Prefix()
		}
	}

	msg := fmt.Sprintf("%s%s%s%s %s", strs.NickS1, prefix, c.Nick, strs.NickS2, text)
	ctx := printtext.Context{Window: id, Spec: printtext.SpecNone, IncludeTS: true}
	if err := c.Printer.Print(ctx, msg); err != nil {
		log.Warn("echo failed", "err", err)
	}
}

// applyConfig re-applies a reloaded config file.
func (c *Client) applyConfig(cfg *config.UserConfig) {
	config.ApplyOverrides(c.opts.Overrides, cfg)
	c.Registry.SetBufferSize(config.TextBufferSize)
	c.Registry.SetMaxWindows(config.MaxChatWindows)
	c.Registry.SetBellOnInvalidScroll(config.BellOnInvalidScroll)
	c.Input.ApplyTheme()
	c.Registry.Redraw()
	c.status(printtext.Spec1Success, "Configuration reloaded")
}
