package config

import (
	"github.com/Gaurav-Gosain/tuirc/internal/printtext"
	"github.com/Gaurav-Gosain/tuirc/internal/scrollback"
	"github.com/Gaurav-Gosain/tuirc/internal/theme"
	"github.com/Gaurav-Gosain/tuirc/internal/window"
	"github.com/charmbracelet/log"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ThemeName is the theme to load
	ThemeName string

	// NoColors strips colors and attributes from all output
	NoColors bool

	// TextBufferSize overrides the per-window scrollback size (0 means use default)
	TextBufferSize int

	// MaxWindows overrides the open window limit (0 means use default)
	MaxWindows int

	// NoBell silences the bell on invalid scrolls
	NoBell bool

	// NoGreeting skips the startup banner
	NoGreeting bool

	// Nickname overrides the configured nick
	Nickname string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if userConfig == nil {
		userConfig = DefaultConfig()
	}
	g := userConfig.General

	// Text Buffer Size - CLI flag takes precedence, otherwise use user config
	switch {
	case overrides.TextBufferSize > 0:
		TextBufferSize = scrollback.ClampSize(overrides.TextBufferSize)
	case g.TextBufferSize > 0:
		TextBufferSize = scrollback.ClampSize(g.TextBufferSize)
	}

	switch {
	case overrides.MaxWindows > 0:
		MaxChatWindows = window.ClampMaxWindows(overrides.MaxWindows)
	case g.MaxChatWindows > 0:
		MaxChatWindows = window.ClampMaxWindows(g.MaxChatWindows)
	}

	// Bell and greeting - disabled by flag, otherwise user config
	BellOnInvalidScroll = !overrides.NoBell && (g.BellOnInvalidScroll == nil || *g.BellOnInvalidScroll)
	StartupGreeting = !overrides.NoGreeting && (g.StartupGreeting == nil || *g.StartupGreeting)

	// No Colors - OR of CLI flag and user config
	NoColors = overrides.NoColors || g.NoColors
	printtext.SetNoColors(NoColors)

	switch {
	case overrides.Nickname != "":
		Nickname = overrides.Nickname
	case g.Nickname != "":
		Nickname = g.Nickname
	}

	if len(g.Charsets) > 0 {
		Charsets = g.Charsets
	}
	if err := printtext.SetFallbackCharsets(Charsets); err != nil {
		log.Warn("unknown charsets", "err", err)
	}

	if userConfig.Keybindings != nil {
		Keys = NewKeymap(userConfig.Keybindings)
	}

	theme.SetStrings(userConfig.Strings())

	// Theme - CLI flag takes precedence, otherwise use user config
	themeName := overrides.ThemeName
	if themeName == "" {
		themeName = userConfig.Appearance.Theme
	}
	ThemeName = themeName
	if err := theme.Initialize(themeName); err != nil {
		log.Warn("failed to load theme", "theme", themeName, "err", err)
	}
}
