package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	tint "github.com/lrstanley/bubbletint/v2"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCustomThemeFile(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		body        string
		wantID      string
		wantDisplay string
	}{
		{
			name:        "explicit id",
			file:        "irc-dark.json",
			body:        `{"id": "irc-dark", "display_name": "IRC Dark", "fg": "#d4d4d4", "bg": "#1e1e2e", "red": "#f38ba8"}`,
			wantID:      "irc-dark",
			wantDisplay: "IRC Dark",
		},
		{
			name:        "id from file name",
			file:        "My-Cool-Theme.json",
			body:        `{"fg": "#ffffff", "bg": "#000000"}`,
			wantID:      "my-cool-theme",
			wantDisplay: "my-cool-theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, t.TempDir(), tt.file, tt.body)
			th, err := LoadCustomThemeFile(path)
			if err != nil {
				t.Fatalf("LoadCustomThemeFile: %v", err)
			}
			if th.ID != tt.wantID {
				t.Errorf("expected ID %q, got %q", tt.wantID, th.ID)
			}
			if th.DisplayName != tt.wantDisplay {
				t.Errorf("expected DisplayName %q, got %q", tt.wantDisplay, th.DisplayName)
			}
			for i, c := range slots(th) {
				if *c == nil {
					t.Errorf("color %d was not filled", i)
				}
			}
		})
	}
}

func TestLoadCustomThemeFileInvalidJSON(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "bad.json", "not valid json{{{")
	if _, err := LoadCustomThemeFile(path); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestFillDefaults(t *testing.T) {
	th := &tint.Tint{Red: tint.FromHex("#112233")}
	fillDefaults(th)

	if th.Fg == nil || th.Bg == nil || th.Cursor == nil {
		t.Fatal("expected fg, bg and cursor to be set")
	}
	if ColorToString(th.Cursor) != ColorToString(th.Fg) {
		t.Error("expected the cursor to default to the foreground")
	}
	if th.Cursor == th.Fg {
		t.Error("expected the cursor to be a copy")
	}
	if ColorToString(th.BrightRed) != "#112233" {
		t.Error("expected bright red to default to red")
	}
	if ColorToString(th.Black) != xtermHex[0] {
		t.Error("expected black to default to the xterm value")
	}
}

func TestLoadCustomThemesSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"readme.txt", "notes.md", ".hidden"} {
		writeTheme(t, dir, name, "not a theme")
	}
	writeTheme(t, dir, "broken.json", "{")
	writeTheme(t, dir, "tuirc-test-unique.JSON", `{"fg": "#ffffff"}`)

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatalf("LoadCustomThemes: %v", err)
	}
	if !slices.Equal(loaded, []string{"tuirc-test-unique"}) {
		t.Fatalf("expected only the valid theme, got %v", loaded)
	}
	if !slices.Contains(tint.TintIDs(), "tuirc-test-unique") {
		t.Error("expected the theme to be registered")
	}
}

func TestLoadCustomThemesMissingDir(t *testing.T) {
	if _, err := LoadCustomThemes(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestPaletteFallsBackToXterm(t *testing.T) {
	if err := Initialize(""); err != nil {
		t.Fatal(err)
	}
	p := GetANSIPalette()
	for i, hex := range xtermHex {
		if got := ColorToString(p[i]); got != hex {
			t.Errorf("color %d: expected %s, got %s", i, hex, got)
		}
	}
}
