// Package theme provides the color palette and themed decorations used by
// the chat client.
package theme

import (
	"fmt"
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

var (
	mu      sync.RWMutex
	enabled bool
)

// Initialize sets up the theme registry with the specified theme name.
// If themeName is empty, theming is disabled and standard terminal colors
// are used.
func Initialize(themeName string) error {
	mu.Lock()
	defer mu.Unlock()

	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	// Load custom themes from the user's themes directory
	if themesDir, err := ThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Warn("error loading custom themes", "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		log.Warn("unknown theme, using default", "theme", themeName)
		tint.SetTintID("default")
	}
	return nil
}

// IsEnabled returns true if theming is enabled.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Current returns the active theme, or nil if theming is disabled.
func Current() *tint.Tint {
	if !IsEnabled() {
		return nil
	}
	return tint.Current()
}

var xtermPalette = func() (p [16]color.Color) {
	for i, hex := range xtermHex {
		p[i] = lipgloss.Color(hex)
	}
	return p
}()

// GetANSIPalette returns the 16 ANSI colors (0-15) of the current theme,
// falling back to the xterm defaults.
func GetANSIPalette() [16]color.Color {
	t := Current()
	if t == nil {
		return xtermPalette
	}
	return [16]color.Color{
		t.Black,        // 0
		t.Red,          // 1
		t.Green,        // 2
		t.Yellow,       // 3
		t.Blue,         // 4
		t.Purple,       // 5
		t.Cyan,         // 6
		t.White,        // 7
		t.BrightBlack,  // 8
		t.BrightRed,    // 9
		t.BrightGreen,  // 10
		t.BrightYellow, // 11
		t.BrightBlue,   // 12
		t.BrightPurple, // 13
		t.BrightCyan,   // 14
		t.BrightWhite,  // 15
	}
}

// BarColors returns the foreground and background of the title and status
// bars.
func BarColors() (fg color.Color, bg color.Color) {
	t := Current()
	if t == nil {
		return xtermPalette[7], xtermPalette[4]
	}
	return t.BrightWhite, t.Blue
}

// BellColors returns the status bar colors used while a bell is shown.
func BellColors() (fg color.Color, bg color.Color) {
	t := Current()
	if t == nil {
		return xtermPalette[0], xtermPalette[3]
	}
	return t.Black, t.Yellow
}

// PromptColor returns the color of the input line prompt.
func PromptColor() color.Color {
	t := Current()
	if t == nil {
		return xtermPalette[6]
	}
	return t.BrightCyan
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
