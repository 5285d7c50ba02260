// Package markup implements the inline text decoration grammar used by chat
// messages: single-byte attribute toggles and the COLOR marker followed by an
// optional "fg[,bg]" numeric spec.
package markup

// Decoration markers embedded in message text.
const (
	Blink     = '\x1d'
	Bold      = '\x02'
	Color     = '\x03'
	Normal    = '\x0f'
	Reverse   = '\x16'
	Underline = '\x1f'
)

// IsAttribute reports whether r toggles a text attribute (every marker
// except Color).
func IsAttribute(r rune) bool {
	switch r {
	case Blink, Bold, Normal, Reverse, Underline:
		return true
	}
	return false
}

// IsMarker reports whether r is any decoration marker.
func IsMarker(r rune) bool {
	return r == Color || IsAttribute(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
