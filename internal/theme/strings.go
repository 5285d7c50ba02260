package theme

import "sync"

// Strings are the themed decorations composed into chat output. Values may
// contain inline color and attribute markers.
type Strings struct {
	Specifier1 string
	Specifier2 string
	Specifier3 string

	GfxFailure string
	GfxSuccess string
	GfxWarn    string

	LeftBracket   string
	RightBracket  string
	StatusbarSpec string
	Slogan        string
	LogoColor     string

	// NickS1 and NickS2 surround a nick in echoed messages.
	NickS1 string
	NickS2 string

	// TimeFormat is a Go time layout.
	TimeFormat string

	// TermUseDefaultColors makes color specs without a background use the
	// terminal default instead of TermBackground.
	TermUseDefaultColors bool
	// TermBackground is the color table number used as background when
	// default colors are off. Range 0..15.
	TermBackground int
}

const (
	lb = "\x0314[\x0f"
	rb = "\x0314]\x0f"
)

// DefaultStrings returns the built-in decorations.
func DefaultStrings() Strings {
	return Strings{
		Specifier1:           lb + "\x0312*\x0f" + rb,
		Specifier2:           lb + "\x0311*\x0f" + rb,
		Specifier3:           lb + "\x0313*\x0f" + rb,
		GfxFailure:           lb + "\x034-\x0f" + rb,
		GfxSuccess:           lb + "\x039+\x0f" + rb,
		GfxWarn:              lb + "\x038!\x0f" + rb,
		LeftBracket:          lb,
		RightBracket:         rb,
		StatusbarSpec:        "\x0314--\x0f",
		Slogan:               "chat in the terminal",
		LogoColor:            "\x0311",
		NickS1:               "\x0314<\x0f",
		NickS2:               "\x0314>\x0f",
		TimeFormat:           "15:04",
		TermUseDefaultColors: true,
		TermBackground:       1,
	}
}

var (
	stringsMu sync.RWMutex
	current   = DefaultStrings()
)

// CurrentStrings returns the active decorations.
func CurrentStrings() Strings {
	stringsMu.RLock()
	defer stringsMu.RUnlock()
	return current
}

// SetStrings replaces the active decorations. TermBackground is clamped to
// the color table.
func SetStrings(s Strings) {
	s.TermBackground = min(max(s.TermBackground, 0), 15)
	if s.TimeFormat == "" {
		s.TimeFormat = DefaultStrings().TimeFormat
	}

	stringsMu.Lock()
	current = s
	stringsMu.Unlock()
}
