package terminal

import "github.com/charmbracelet/colorprofile"

// DefaultColor is the color index meaning "the terminal's own default".
const DefaultColor = -1

// Pair is a foreground/background combination of base color indices
// (0-7, or DefaultColor).
type Pair struct {
	Fg, Bg int
}

// PairTable holds the color pairs available on a screen. Pair number 0 is
// always the default colors and is never stored.
type PairTable struct {
	pairs []Pair
	index map[Pair]int
}

// NewPairTable initializes every base foreground against every base
// background plus the default background. Profiles without color support
// get an empty table, so every lookup degrades to "no color".
func NewPairTable(profile colorprofile.Profile) *PairTable {
	t := &PairTable{index: make(map[Pair]int)}

	switch profile {
	case colorprofile.Ascii, colorprofile.NoTTY:
		return t
	}

	for fg := range 8 {
		for bg := DefaultColor; bg < 8; bg++ {
			p := Pair{Fg: fg, Bg: bg}
			t.pairs = append(t.pairs, p)
			t.index[p] = len(t.pairs)
		}
	}
	return t
}

// Find returns the pair number for fg/bg.
func (t *PairTable) Find(fg, bg int) (int, bool) {
	n, ok := t.index[Pair{Fg: fg, Bg: bg}]
	return n, ok
}

// Pair returns the colors of pair number n.
func (t *PairTable) Pair(n int) (Pair, bool) {
	if n < 1 || n > len(t.pairs) {
		return Pair{}, false
	}
	return t.pairs[n-1], true
}

// Len returns the number of initialized pairs.
func (t *PairTable) Len() int {
	return len(t.pairs)
}
