package printtext

import (
	"testing"
	"time"

	"github.com/Gaurav-Gosain/tuirc/internal/theme"
)

func fixedClock(t *testing.T) {
	t.Helper()
	saved := now
	now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { now = saved })
}

func plainStrings(t *testing.T) {
	t.Helper()
	s := theme.DefaultStrings()
	s.Specifier1 = "[*]"
	s.Specifier2 = "[>]"
	s.GfxFailure = "[-]"
	s.GfxSuccess = "[+]"
	s.GfxWarn = "[!]"
	theme.SetStrings(s)
	t.Cleanup(func() { theme.SetStrings(theme.DefaultStrings()) })
}

func TestFormat(t *testing.T) {
	fixedClock(t)
	plainStrings(t)

	tests := []struct {
		name       string
		spec       Spec
		ts         bool
		wantText   string
		wantIndent int
	}{
		{"bare", SpecNone, false, "hi", 0},
		{"timestamp only", SpecNone, true, "09:30 hi", 6},
		{"spec1", Spec1, false, "[*] hi", 4},
		{"spec1 with timestamp", Spec1, true, "09:30 [*] hi", 10},
		{"spec1 spec2", Spec1Spec2, false, "[*] [>] hi", 8},
		{"failure", Spec1Failure, false, "[*] [-] hi", 8},
		{"success", Spec1Success, true, "09:30 [*] [+] hi", 14},
		{"warn", Spec1Warn, false, "[*] [!] hi", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, indent := Format("hi", tt.spec, tt.ts)
			if text != tt.wantText {
				t.Errorf("expected text %q, got %q", tt.wantText, text)
			}
			if indent != tt.wantIndent {
				t.Errorf("expected indent %d, got %d", tt.wantIndent, indent)
			}
		})
	}
}

func TestFormatIndentIgnoresMarkup(t *testing.T) {
	theme.SetStrings(theme.DefaultStrings())

	text, indent := Format("hi", Spec1, false)
	if want := theme.DefaultStrings().Specifier1 + " hi"; text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
	if indent != 4 {
		t.Errorf("expected the width of %q, got %d", "[*] ", indent)
	}
}

func TestFormatNoColors(t *testing.T) {
	SetNoColors(true)
	t.Cleanup(func() { SetNoColors(false) })
	theme.SetStrings(theme.DefaultStrings())

	text, indent := Format("\x02bold\x02 and \x034red", Spec1, false)
	if text != "[*] bold and red" {
		t.Errorf("expected stripped text, got %q", text)
	}
	if indent != 4 {
		t.Errorf("expected indent 4, got %d", indent)
	}

	if text, _ := Format("\x1fplain", SpecNone, false); text != "plain" {
		t.Errorf("expected stripped text, got %q", text)
	}
}

func TestFormatTimeLayout(t *testing.T) {
	fixedClock(t)
	s := theme.DefaultStrings()
	s.TimeFormat = "15:04:05"
	theme.SetStrings(s)
	t.Cleanup(func() { theme.SetStrings(theme.DefaultStrings()) })

	text, indent := Format("x", SpecNone, true)
	if text != "09:30:00 x" || indent != 9 {
		t.Errorf("unexpected %q/%d", text, indent)
	}
}
