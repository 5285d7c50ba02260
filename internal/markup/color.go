package markup

// ColorKind is the outcome of parsing the spec that follows a Color marker.
type ColorKind int

const (
	// ColorAbort means the text ended inside the spec. Everything consumed
	// is swallowed and no color applies.
	ColorAbort ColorKind = iota
	// ColorReset means the marker carried no digits and restores the pane
	// default color.
	ColorReset
	// ColorSet carries a foreground and an optional background.
	ColorSet
)

func (k ColorKind) String() string {
	switch k {
	case ColorAbort:
		return "abort"
	case ColorReset:
		return "reset"
	case ColorSet:
		return "set"
	}
	return "unknown"
}

// DefaultBackground is the Bg of a spec without an explicit background.
const DefaultBackground = -1

// ColorSpec is a parsed "fg[,bg]" spec. Fg and Bg are the raw numbers as
// written; use Resolve to map them onto the color table.
type ColorSpec struct {
	Kind ColorKind
	Fg   int
	Bg   int
}

type parseState int

const (
	statePart1 parseState = iota
	statePart2
	statePart3
	statePart4
	statePart5
	stateDone
	stateAbort
)

// cursor walks a rune slice and can step back one position.
type cursor struct {
	runes []rune
	pos   int
}

func (c *cursor) next() (rune, bool) {
	if c.pos >= len(c.runes) {
		return 0, false
	}
	r := c.runes[c.pos]
	c.pos++
	return r, true
}

func (c *cursor) backup() {
	if c.pos > 0 {
		c.pos--
	}
}

// ParseColor parses the color spec that starts at runes[start], the rune
// right after a Color marker. It returns the spec and how many runes it
// consumed; a rune that ends the spec is never consumed.
//
// Grammar: one fg digit, then a second fg digit or a comma, then a comma or
// the first bg digit, then up to two bg digits. A trailing comma with no
// background digits is given back as literal text, also when the text ends
// right after it.
func ParseColor(runes []rune, start int) (ColorSpec, int) {
	c := cursor{runes: runes, pos: start}

	var fg, bg []rune
	hasComma := false
	state := statePart1

	for state != stateDone && state != stateAbort {
		r, ok := c.next()
		if !ok {
			if hasComma && len(bg) == 0 {
				state = stateDone
			} else {
				state = stateAbort
			}
			continue
		}

		switch state {
		case statePart1:
			if !isDigit(r) {
				c.backup()
				return ColorSpec{Kind: ColorReset, Bg: DefaultBackground}, c.pos - start
			}
			fg = append(fg, r)
			state = statePart2

		case statePart2:
			switch {
			case isDigit(r):
				fg = append(fg, r)
				state = statePart3
			case r == ',':
				hasComma = true
				state = statePart3
			default:
				c.backup()
				state = stateDone
			}

		case statePart3:
			switch {
			case r == ',' && !hasComma:
				hasComma = true
				state = statePart4
			case isDigit(r) && hasComma:
				bg = append(bg, r)
				state = statePart4
			default:
				c.backup()
				state = stateDone
			}

		case statePart4:
			if !isDigit(r) {
				c.backup()
				state = stateDone
				continue
			}
			bg = append(bg, r)
			if len(bg) == 2 {
				state = stateDone
			} else {
				state = statePart5
			}

		case statePart5:
			if isDigit(r) {
				bg = append(bg, r)
			} else {
				c.backup()
			}
			state = stateDone
		}
	}

	if state == stateAbort {
		return ColorSpec{Kind: ColorAbort, Bg: DefaultBackground}, c.pos - start
	}

	spec := ColorSpec{Kind: ColorSet, Fg: atoi(fg), Bg: DefaultBackground}
	if len(bg) > 0 {
		spec.Bg = atoi(bg)
	} else if hasComma {
		c.backup()
	}
	return spec, c.pos - start
}

func atoi(digits []rune) int {
	n := 0
	for _, d := range digits {
		n = n*10 + int(d-'0')
	}
	return n
}
