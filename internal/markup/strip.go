package markup

import "strings"

// Strip removes every attribute marker and every color marker together
// with its numeric spec. Literal text and line breaks are kept.
func Strip(s string) string {
	if !strings.ContainsFunc(s, IsMarker) {
		return s
	}

	runes := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == Color:
			_, n := ParseColor(runes, i+1)
			i += n
		case IsAttribute(r):
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
