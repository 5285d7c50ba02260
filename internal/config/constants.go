// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"github.com/Gaurav-Gosain/tuirc/internal/scrollback"
	"github.com/Gaurav-Gosain/tuirc/internal/window"
)

// =============================================================================
// Refresh Rates
// =============================================================================

const (
	// NormalFPS is the repaint rate while output is arriving
	NormalFPS = 60

	// IdleFPS is the repaint rate once the screen has been quiet for
	// IdleThresholdFrames frames.
	IdleFPS = 10

	// IdleThresholdFrames is the number of consecutive idle frames at NormalFPS
	// before switching to IdleFPS (~500ms at 60 FPS).
	IdleThresholdFrames = 30
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// BellDuration is how long the visual bell inverts the status bar
	BellDuration = 150 * time.Millisecond

	// ReloadDebounce coalesces bursts of config file writes into one reload
	ReloadDebounce = 250 * time.Millisecond
)

// =============================================================================
// Input
// =============================================================================

const (
	// InputHistorySize is the number of submitted lines kept for recall
	InputHistorySize = 100

	// MaxInputLength is the longest line the input field accepts, in runes
	MaxInputLength = 510

	// Prompt is drawn in front of the input line
	Prompt = "> "
)

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultTimeFormat is the Go time layout used for message timestamps
	DefaultTimeFormat = "15:04"

	// DefaultNickname is used when neither the config nor the CLI names one
	DefaultNickname = "guest"
)

// DefaultCharsets are the fallback decoders tried when text is not UTF-8.
var DefaultCharsets = []string{"ISO-8859-1", "ISO-8859-15"}

// =============================================================================
// Live Settings
// =============================================================================

// These hold the values in effect after the user config and CLI flags have
// been applied. They are written on startup and on config reload.
var (
	// TextBufferSize is the scrollback capacity of every window
	TextBufferSize = scrollback.DefaultSize

	// MaxChatWindows caps the number of open windows
	MaxChatWindows = window.DefaultMaxWindows

	// BellOnInvalidScroll rings the bell when a scroll cannot move
	BellOnInvalidScroll = true

	// NoColors strips color and attribute markers from all output
	NoColors = false

	// StartupGreeting prints the banner into the status window on startup
	StartupGreeting = true

	// Nickname is shown on the status bar and prefixes echoed messages
	Nickname = DefaultNickname

	// Charsets names the fallback decoders, in order
	Charsets = DefaultCharsets

	// ThemeName is the bubbletint id in use, empty for terminal colors
	ThemeName = ""

	// Keys maps key presses to actions
	Keys = NewKeymap(DefaultConfig().Keybindings)
)

// RegistryConfig returns the window registry settings for the live values.
func RegistryConfig() window.Config {
	return window.Config{
		MaxWindows:          MaxChatWindows,
		BufferSize:          TextBufferSize,
		BellOnInvalidScroll: BellOnInvalidScroll,
	}
}
