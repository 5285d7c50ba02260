package app

import (
	"slices"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuirc/internal/theme"
)

// InputLine is the editable command line under the status bar: a text
// input with a history of submitted lines.
type InputLine struct {
	ti textinput.Model

	history    []string
	historyMax int
	histPos    int    // len(history) when not browsing
	draft      string // line being edited before browsing started
}

// NewInputLine returns an empty line accepting at most limit runes and
// remembering historyMax submitted lines.
func NewInputLine(limit, historyMax int) *InputLine {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.SetVirtualCursor(false)

	// Up and down browse the history; paste arrives as a message.
	ti.KeyMap.Paste.Unbind()
	ti.KeyMap.AcceptSuggestion.Unbind()
	ti.KeyMap.NextSuggestion.Unbind()
	ti.KeyMap.PrevSuggestion.Unbind()
	ti.Focus()

	l := &InputLine{ti: ti, historyMax: historyMax}
	l.ApplyTheme()
	return l
}

// ApplyTheme restyles the prompt and cursor from the current theme.
func (l *InputLine) ApplyTheme() {
	s := textinput.DefaultDarkStyles()
	s.Focused.Prompt = lipgloss.NewStyle().Foreground(theme.PromptColor())
	s.Cursor.Shape = tea.CursorBar
	s.Cursor.Blink = true
	l.ti.SetStyles(s)
}

// String returns the current contents.
func (l *InputLine) String() string { return l.ti.Value() }

// Pos returns the cursor position in runes.
func (l *InputLine) Pos() int { return l.ti.Position() }

// Insert types s at the cursor. Tabs and newlines become spaces and input
// past the limit is dropped.
func (l *InputLine) Insert(s string) {
	l.ti, _ = l.ti.Update(tea.PasteMsg{Content: s})
}

// Handles reports whether msg is one of the editor's own key chords.
func (l *InputLine) Handles(msg tea.KeyPressMsg) bool {
	km := l.ti.KeyMap
	return key.Matches(msg,
		km.CharacterForward, km.CharacterBackward,
		km.WordForward, km.WordBackward,
		km.DeleteWordBackward, km.DeleteWordForward,
		km.DeleteAfterCursor, km.DeleteBeforeCursor,
		km.DeleteCharacterBackward, km.DeleteCharacterForward,
		km.LineStart, km.LineEnd,
	)
}

// Update passes an editing message to the text input.
func (l *InputLine) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.ti, cmd = l.ti.Update(msg)
	return cmd
}

// Submit returns the line, records it in the history and clears the
// editor. Empty lines are not recorded.
func (l *InputLine) Submit() string {
	line := l.ti.Value()
	if line != "" && (len(l.history) == 0 || l.history[len(l.history)-1] != line) {
		l.history = append(l.history, line)
		if l.historyMax > 0 && len(l.history) > l.historyMax {
			l.history = slices.Delete(l.history, 0, len(l.history)-l.historyMax)
		}
	}
	l.ti.Reset()
	l.histPos, l.draft = len(l.history), ""
	return line
}

func (l *InputLine) set(s string) {
	l.ti.SetValue(s)
	l.ti.CursorEnd()
}

// HistoryPrev recalls the previous submitted line.
func (l *InputLine) HistoryPrev() {
	if l.histPos == 0 {
		return
	}
	if l.histPos == len(l.history) {
		l.draft = l.ti.Value()
	}
	l.histPos--
	l.set(l.history[l.histPos])
}

// HistoryNext moves forward through the history, ending at the draft.
func (l *InputLine) HistoryNext() {
	if l.histPos >= len(l.history) {
		return
	}
	l.histPos++
	if l.histPos == len(l.history) {
		l.set(l.draft)
		return
	}
	l.set(l.history[l.histPos])
}

// Render draws prompt and as much of the line as fits in width columns,
// scrolling horizontally to keep the cursor shown. It returns the cursor
// column.
func (l *InputLine) Render(prompt string, width int) (string, int) {
	l.ti.Prompt = prompt
	l.ti.SetWidth(max(width-ansi.StringWidth(prompt)-1, 1))
	l.ti.SetCursor(l.ti.Position())

	col := 0
	if cur := l.ti.Cursor(); cur != nil {
		col = cur.X
	}
	return l.ti.View(), col
}

// Cursor returns the real terminal cursor for the line, or nil when the
// line is not focused. Its position is relative to the input row.
func (l *InputLine) Cursor() *tea.Cursor { return l.ti.Cursor() }
