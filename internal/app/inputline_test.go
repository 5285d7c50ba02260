package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func pressKey(l *InputLine, code rune, mod tea.KeyMod) {
	l.Update(tea.KeyPressMsg{Code: code, Mod: mod})
}

func TestInputLineEditing(t *testing.T) {
	l := NewInputLine(0, 10)
	l.Insert("hello world")
	pressKey(l, tea.KeyLeft, 0)
	pressKey(l, tea.KeyLeft, 0)
	pressKey(l, tea.KeyBackspace, 0)
	if got := l.String(); got != "hello wold" {
		t.Errorf("expected backspace before the cursor, got %q", got)
	}
	pressKey(l, tea.KeyDelete, 0)
	if got := l.String(); got != "hello wod" {
		t.Errorf("expected delete under the cursor, got %q", got)
	}

	pressKey(l, tea.KeyEnd, 0)
	pressKey(l, 'w', tea.ModCtrl)
	if got := l.String(); got != "hello " {
		t.Errorf("expected the last word removed, got %q", got)
	}

	pressKey(l, 'u', tea.ModCtrl)
	if got := l.String(); got != "" || l.Pos() != 0 {
		t.Errorf("expected an empty line, got %q at %d", got, l.Pos())
	}

	l.Insert("abcdef")
	pressKey(l, tea.KeyHome, 0)
	pressKey(l, tea.KeyRight, 0)
	pressKey(l, 'k', tea.ModCtrl)
	if got := l.String(); got != "a" {
		t.Errorf("expected kill to end of line, got %q", got)
	}
}

func TestInputLineInsertSanitizes(t *testing.T) {
	l := NewInputLine(0, 10)
	l.Insert("a\tb")
	if got := l.String(); got != "a b" {
		t.Errorf("expected tabs to become spaces, got %q", got)
	}
}

func TestInputLineHandles(t *testing.T) {
	l := NewInputLine(0, 10)
	for _, msg := range []tea.KeyPressMsg{
		{Code: 'a', Mod: tea.ModCtrl},
		{Code: tea.KeyBackspace},
		{Code: 'w', Mod: tea.ModCtrl},
	} {
		if !l.Handles(msg) {
			t.Errorf("expected %s to be an editing key", msg.String())
		}
	}
	for _, msg := range []tea.KeyPressMsg{
		{Code: 'z', Mod: tea.ModCtrl},
		{Code: tea.KeyUp},
		{Code: tea.KeyTab},
	} {
		if l.Handles(msg) {
			t.Errorf("expected %s not to be an editing key", msg.String())
		}
	}
}

func TestInputLineLimit(t *testing.T) {
	l := NewInputLine(5, 10)
	l.Insert("abc")
	l.Insert("defgh")
	if got := l.String(); got != "abcde" {
		t.Errorf("expected input truncated at the limit, got %q", got)
	}
	l.Insert("x")
	if got := l.String(); got != "abcde" {
		t.Errorf("expected a full line to reject input, got %q", got)
	}
}

func TestInputLineHistory(t *testing.T) {
	l := NewInputLine(0, 2)
	for _, s := range []string{"one", "two", "two", "three"} {
		l.Insert(s)
		l.Submit()
	}
	if got := l.Submit(); got != "" {
		t.Errorf("expected an empty submit, got %q", got)
	}

	l.Insert("draft")
	l.HistoryPrev()
	if got := l.String(); got != "three" {
		t.Errorf("expected three, got %q", got)
	}
	if l.Pos() != len("three") {
		t.Errorf("expected the cursor at the end of the recalled line, got %d", l.Pos())
	}
	l.HistoryPrev()
	if got := l.String(); got != "two" {
		t.Errorf("expected two, got %q", got)
	}
	l.HistoryPrev()
	if got := l.String(); got != "two" {
		t.Errorf("expected the history capped at two entries, got %q", got)
	}
	l.HistoryNext()
	l.HistoryNext()
	if got := l.String(); got != "draft" {
		t.Errorf("expected the draft restored, got %q", got)
	}
}

func TestInputLineRender(t *testing.T) {
	l := NewInputLine(0, 0)
	l.Insert("0123456789")

	out, col := l.Render("> ", 8)
	plain := ansi.Strip(out)
	if !strings.HasPrefix(plain, "> 56789") || strings.Contains(plain, "0") {
		t.Errorf("expected the tail behind the prompt, got %q", plain)
	}
	if col != 7 {
		t.Errorf("expected the cursor after the tail, got %d", col)
	}

	pressKey(l, tea.KeyHome, 0)
	out, col = l.Render("> ", 8)
	if plain := ansi.Strip(out); !strings.HasPrefix(plain, "> 01234") {
		t.Errorf("expected the head behind the prompt, got %q", plain)
	}
	if col != 2 {
		t.Errorf("expected the cursor after the prompt, got %d", col)
	}
	if cur := l.Cursor(); cur == nil || cur.Shape != tea.CursorBar {
		t.Errorf("expected a bar cursor, got %+v", cur)
	}
}
