package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/config"
	"github.com/Gaurav-Gosain/tuirc/internal/markup"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	greeting, nick := config.StartupGreeting, config.Nickname
	config.StartupGreeting, config.Nickname = false, "me"
	t.Cleanup(func() { config.StartupGreeting, config.Nickname = greeting, nick })

	c := New(Options{Width: 80, Height: 24, Profile: colorprofile.ANSI})
	t.Cleanup(c.Close)
	return c
}

// lines returns the stripped scrollback of the window, the active one for
// uuid.Nil.
func lines(t *testing.T, c *Client, id uuid.UUID) []string {
	t.Helper()
	if id == uuid.Nil {
		id = c.Registry.Active()
	}
	recs, err := c.Registry.Records(id)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = markup.Strip(r.Text)
	}
	return out
}

func contains(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func TestNewWithoutGreeting(t *testing.T) {
	c := newClient(t)
	if got := lines(t, c, c.Registry.Status()); len(got) != 0 {
		t.Errorf("expected an empty status window, got %q", got)
	}
	if c.Nick != "me" {
		t.Errorf("expected nick me, got %q", c.Nick)
	}
	if !strings.Contains(c.Registry.StatusLine(), "me") {
		t.Errorf("expected the nick on the status bar, got %q", c.Registry.StatusLine())
	}
}

func TestGreeting(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	greeting := config.StartupGreeting
	config.StartupGreeting = true
	t.Cleanup(func() { config.StartupGreeting = greeting })

	c := New(Options{Width: 80, Height: 24, Profile: colorprofile.ANSI, Version: "1.2.3"})
	defer c.Close()

	got := lines(t, c, c.Registry.Status())
	for _, want := range []string{"tuirc 1.2.3", "color pairs have been initialized", "/help"} {
		if !contains(got, want) {
			t.Errorf("expected %q in the greeting, got %q", want, got)
		}
	}
}

func TestPrompt(t *testing.T) {
	c := newClient(t)
	if got := c.Prompt(); got != "> " {
		t.Errorf("expected the status prompt, got %q", got)
	}
	c.Execute("/join #go")
	if got := c.Prompt(); got != "#go: " {
		t.Errorf("expected the channel prompt, got %q", got)
	}
	c.Execute("/query bob")
	if got := c.Prompt(); got != "bob> " {
		t.Errorf("expected the query prompt, got %q", got)
	}
}

func TestSubmitEcho(t *testing.T) {
	c := newClient(t)
	c.Submit("hello there")
	if got := lines(t, c, uuid.Nil); !contains(got, "<me> hello there") {
		t.Errorf("expected the echo in the status window, got %q", got)
	}

	c.Execute("/join #go")
	c.Submit("hi all")
	if got := lines(t, c, uuid.Nil); !contains(got, "<@me> hi all") {
		t.Errorf("expected the op prefix in the channel, got %q", got)
	}

	before := len(lines(t, c, uuid.Nil))
	c.Submit("   ")
	if got := len(lines(t, c, uuid.Nil)); got != before {
		t.Errorf("expected blank lines to be ignored, got %d records", got)
	}
}

func TestUpdateResize(t *testing.T) {
	c := newClient(t)
	c.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if c.Width != 40 || c.Height != 10 {
		t.Fatalf("expected 40x10, got %dx%d", c.Width, c.Height)
	}
	if got := len(c.Registry.PlainLines()); got != 7 {
		t.Errorf("expected 7 pane rows, got %d", got)
	}
}

func TestUpdateBell(t *testing.T) {
	c := newClient(t)
	now := time.Now()

	c.Screen.Bell()
	c.Update(TickerMsg(now))
	if !c.Ringing() {
		t.Fatal("expected the bell to show after a tick")
	}
	c.Update(TickerMsg(now.Add(config.BellDuration / 2)))
	if !c.Ringing() {
		t.Error("expected the bell to still show")
	}
	c.Update(TickerMsg(now.Add(config.BellDuration)))
	if c.Ringing() {
		t.Error("expected the bell to clear")
	}
}

func TestUpdateFrameSkipping(t *testing.T) {
	c := newClient(t)
	c.Update(TickerMsg(time.Now()))
	_ = c.View()

	c.Update(TickerMsg(time.Now()))
	if !c.renderSkipped {
		t.Error("expected an idle tick to skip rendering")
	}

	c.Submit("new output")
	c.Update(TickerMsg(time.Now()))
	if c.renderSkipped {
		t.Error("expected new output to force a render")
	}
}

func TestFrame(t *testing.T) {
	c := newClient(t)
	c.Submit("visible message")
	c.Input.Insert("typing")

	content, col := c.Frame()
	plain := ansi.Strip(content)
	for _, want := range []string{"tuirc titlebar", "visible message", "> typing"} {
		if !strings.Contains(plain, want) {
			t.Errorf("expected %q in the frame", want)
		}
	}
	if col != len("> typing") {
		t.Errorf("expected the cursor after the input, got %d", col)
	}

	view := c.View()
	if !view.AltScreen || view.Cursor == nil || view.Cursor.Y != c.Height-1 {
		t.Errorf("unexpected view settings %+v", view.Cursor)
	}
	if view.MouseMode != tea.MouseModeCellMotion {
		t.Errorf("expected mouse cell motion, got %v", view.MouseMode)
	}
}

func TestApplyConfig(t *testing.T) {
	c := newClient(t)
	keys, buf, maxWin := config.Keys, config.TextBufferSize, config.MaxChatWindows
	t.Cleanup(func() { config.Keys, config.TextBufferSize, config.MaxChatWindows = keys, buf, maxWin })

	cfg := config.DefaultConfig()
	cfg.General.Nickname = "me"
	c.applyConfig(cfg)
	if got := lines(t, c, c.Registry.Status()); !contains(got, "Configuration reloaded") {
		t.Errorf("expected a reload notice, got %q", got)
	}
	if config.Keys == keys {
		t.Error("expected the keymap to be rebuilt")
	}
}
