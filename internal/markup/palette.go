package markup

// Base terminal colors, numbered the way the 8-color ANSI set is.
const (
	Black = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// Entry maps a spec number onto a base color and the intensity applied to
// the foreground.
type Entry struct {
	Color int
	Bold  bool
}

// ColorTable is the fixed 16-entry table spec numbers are reduced into.
var ColorTable = [16]Entry{
	{White, true},    // 0 white
	{Black, false},   // 1 black
	{Blue, false},    // 2 navy
	{Green, false},   // 3 green
	{Red, true},      // 4 red
	{Red, false},     // 5 maroon
	{Magenta, false}, // 6 purple
	{Yellow, false},  // 7 olive
	{Yellow, true},   // 8 yellow
	{Green, true},    // 9 lime
	{Cyan, false},    // 10 teal
	{Cyan, true},     // 11 aqua
	{Blue, true},     // 12 royal
	{Magenta, true},  // 13 pink
	{Black, true},    // 14 grey
	{White, false},   // 15 silver
}

// Resolve reduces a spec number modulo the table size and returns its entry.
func Resolve(n int) Entry {
	if n < 0 {
		n = -n
	}
	return ColorTable[n%len(ColorTable)]
}
