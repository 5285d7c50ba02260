package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

// xtermHex is the xterm default for each color table entry 0..15.
var xtermHex = [16]string{
	"#000000", "#cd0000", "#00cd00", "#cdcd00", "#0000ee", "#cd00cd", "#00cdcd", "#e5e5e5",
	"#7f7f7f", "#ff0000", "#00ff00", "#ffff00", "#5c5cff", "#ff00ff", "#00ffff", "#ffffff",
}

// ThemesDir returns the custom themes directory (~/.config/tuirc/themes/),
// creating it if needed.
func ThemesDir() (string, error) {
	keepFile, err := xdg.ConfigFile("tuirc/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get themes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// LoadCustomThemes registers every *.json theme in themesDir with
// bubbletint and returns their IDs. Bad files are logged and skipped.
func LoadCustomThemes(themesDir string) ([]string, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}

		t, err := LoadCustomThemeFile(filepath.Join(themesDir, entry.Name()))
		if err != nil {
			log.Warn("skipping custom theme", "file", entry.Name(), "err", err)
			continue
		}
		tint.Register(t)
		loaded = append(loaded, t.ID)
	}
	return loaded, nil
}

// LoadCustomThemeFile reads one bubbletint JSON theme. The ID defaults to
// the lowercased file name and missing colors to the xterm table.
func LoadCustomThemeFile(path string) (*tint.Tint, error) {
	// #nosec G304 - path is from user's config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var t tint.Tint
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse theme JSON: %w", err)
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if t.ID == "" {
		return nil, fmt.Errorf("theme has no ID")
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	fillDefaults(&t)
	return &t, nil
}

// slots returns the theme's color table entries 0..15.
func slots(t *tint.Tint) [16]**tint.Color {
	return [16]**tint.Color{
		&t.Black, &t.Red, &t.Green, &t.Yellow, &t.Blue, &t.Purple, &t.Cyan, &t.White,
		&t.BrightBlack, &t.BrightRed, &t.BrightGreen, &t.BrightYellow,
		&t.BrightBlue, &t.BrightPurple, &t.BrightCyan, &t.BrightWhite,
	}
}

// fillDefaults sets missing colors. Normal entries fall back to xterm,
// bright entries to their normal counterpart, the cursor to the foreground.
func fillDefaults(t *tint.Tint) {
	if t.Fg == nil {
		t.Fg = tint.FromHex(xtermHex[7])
	}
	if t.Bg == nil {
		t.Bg = tint.FromHex(xtermHex[0])
	}
	if t.Cursor == nil {
		t.Cursor = copyColor(t.Fg)
	}

	s := slots(t)
	for i, c := range s {
		switch {
		case *c != nil:
		case i < 8:
			*c = tint.FromHex(xtermHex[i])
		default:
			*c = copyColor(*s[i-8])
		}
	}
}

func copyColor(c *tint.Color) *tint.Color {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}

// ListThemes returns the IDs of the built-in and custom themes, sorted.
func ListThemes() []string {
	mu.Lock()
	defer mu.Unlock()

	tint.NewDefaultRegistry()
	if dir, err := ThemesDir(); err == nil {
		if _, err := LoadCustomThemes(dir); err != nil {
			log.Warn("error loading custom themes", "err", err)
		}
	}
	ids := slices.Clone(tint.TintIDs())
	slices.Sort(ids)
	return ids
}
