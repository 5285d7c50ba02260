package printtext

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/Gaurav-Gosain/tuirc/internal/markup"
	"github.com/Gaurav-Gosain/tuirc/internal/theme"
)

// Spec selects the themed tags placed in front of a message.
type Spec int

const (
	SpecNone Spec = iota
	Spec1
	Spec2
	Spec3
	Spec1Spec2
	Spec1Failure
	Spec1Success
	Spec1Warn
)

func (s Spec) String() string {
	switch s {
	case SpecNone:
		return "none"
	case Spec1:
		return "spec1"
	case Spec2:
		return "spec2"
	case Spec3:
		return "spec3"
	case Spec1Spec2:
		return "spec1+spec2"
	case Spec1Failure:
		return "spec1+failure"
	case Spec1Success:
		return "spec1+success"
	case Spec1Warn:
		return "spec1+warn"
	}
	return "unknown"
}

// tokens returns the decorations s stands for.
func (s Spec) tokens(strs theme.Strings) []string {
	switch s {
	case Spec1:
		return []string{strs.Specifier1}
	case Spec2:
		return []string{strs.Specifier2}
	case Spec3:
		return []string{strs.Specifier3}
	case Spec1Spec2:
		return []string{strs.Specifier1, strs.Specifier2}
	case Spec1Failure:
		return []string{strs.Specifier1, strs.GfxFailure}
	case Spec1Success:
		return []string{strs.Specifier1, strs.GfxSuccess}
	case Spec1Warn:
		return []string{strs.Specifier1, strs.GfxWarn}
	}
	return nil
}

var (
	noColors atomic.Bool

	// now is replaced in tests.
	now = time.Now
)

// SetNoColors turns global markup stripping on or off.
func SetNoColors(on bool) { noColors.Store(on) }

// NoColors reports whether formatted text is stripped of markup.
func NoColors() bool { return noColors.Load() }

// Format assembles the text of a message: the timestamp if includeTS is
// set, the tags of spec, then raw, separated by single spaces. The returned
// indent is the display width of everything in front of raw, so wrapped
// lines start under the message body.
func Format(raw string, spec Spec, includeTS bool) (string, int) {
	strs := theme.CurrentStrings()

	var prefix []string
	if includeTS {
		prefix = append(prefix, now().Format(strs.TimeFormat))
	}
	prefix = append(prefix, spec.tokens(strs)...)

	if len(prefix) == 0 {
		if NoColors() {
			return markup.Strip(raw), 0
		}
		return raw, 0
	}

	head := strings.Join(prefix, " ") + " "
	indent := runewidth.StringWidth(markup.Strip(head))
	text := head + raw
	if NoColors() {
		text = markup.Strip(text)
	}
	return text, indent
}
