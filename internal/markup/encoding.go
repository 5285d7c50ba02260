package markup

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrEncoding is returned when no charset could convert a text segment and
// a lossy conversion was used instead.
var ErrEncoding = errors.New("text could not be converted for display")

// DefaultCharsets are tried, in order, after UTF-8.
func DefaultCharsets() []encoding.Encoding {
	return []encoding.Encoding{charmap.ISO8859_1, charmap.ISO8859_15}
}

// LookupCharsets resolves IANA charset names. Unknown names are skipped and
// reported in the returned error; the resolved ones are still returned.
func LookupCharsets(names []string) ([]encoding.Encoding, error) {
	var (
		out  []encoding.Encoding
		errs []error
	)
	for _, name := range names {
		enc, err := ianaindex.IANA.Encoding(name)
		if err != nil || enc == nil {
			errs = append(errs, fmt.Errorf("unsupported charset %q", name))
			continue
		}
		out = append(out, enc)
	}
	return out, errors.Join(errs...)
}

// Decode converts raw message bytes to display text. Valid UTF-8 passes
// through; otherwise each charset is tried in order. When none of them
// converts cleanly the invalid bytes are dropped and ErrEncoding is
// returned alongside the best-effort text.
func Decode(b []byte, charsets ...encoding.Encoding) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}

	for _, cs := range charsets {
		out, err := cs.NewDecoder().Bytes(b)
		if err != nil || !utf8.Valid(out) || strings.ContainsRune(string(out), utf8.RuneError) {
			continue
		}
		return string(out), nil
	}

	lossy := strings.ToValidUTF8(string(b), "")
	return lossy, fmt.Errorf("%w: %d bytes lost", ErrEncoding, len(b)-len(lossy))
}
