// Package scrollback provides the bounded per-window message log that
// chat panes are rendered and redrawn from.
package scrollback

// Size limits for a window's message log.
const (
	DefaultSize = 1000
	MinSize     = 350
	MaxSize     = 4700
)

// Record is one rendered message: its decorated text and the column
// continuation lines are indented to.
type Record struct {
	Text   string
	Indent int
}

// Buffer is a ring buffer of records. Appending to a full buffer evicts
// the oldest record first.
type Buffer struct {
	// records stores the entries in a ring
	records []Record
	// capacity is the maximum number of records kept
	capacity int
	// head is the index of the oldest record
	head int
	// size is the number of records stored
	size int
	// onEvict is called with the number of records dropped from the head.
	onEvict func(int)
}

// ClampSize limits n to [MinSize, MaxSize]; non-positive values give
// DefaultSize.
func ClampSize(n int) int {
	switch {
	case n <= 0:
		return DefaultSize
	case n < MinSize:
		return MinSize
	case n > MaxSize:
		return MaxSize
	}
	return n
}

// New creates a buffer holding at most capacity records. A non-positive
// capacity uses DefaultSize.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultSize
	}
	return &Buffer{
		records:  make([]Record, capacity),
		capacity: capacity,
	}
}

// SetOnEvict sets a callback that fires when records leave the head.
func (b *Buffer) SetOnEvict(fn func(int)) {
	b.onEvict = fn
}

// Append adds r at the tail, evicting the oldest record if the buffer is
// full.
func (b *Buffer) Append(r Record) {
	if b.size == b.capacity {
		b.RemoveHead()
	}
	b.records[(b.head+b.size)%b.capacity] = r
	b.size++
}

// RemoveHead drops the oldest record. It reports false if the buffer was
// empty.
func (b *Buffer) RemoveHead() bool {
	if b.size == 0 {
		return false
	}
	b.records[b.head] = Record{}
	b.head = (b.head + 1) % b.capacity
	b.size--
	if b.onEvict != nil {
		b.onEvict(1)
	}
	return true
}

// Len returns the number of records stored.
func (b *Buffer) Len() int {
	return b.size
}

// Cap returns the maximum number of records.
func (b *Buffer) Cap() int {
	return b.capacity
}

// At returns the record at logical position i, 0 being the oldest.
func (b *Buffer) At(i int) (Record, bool) {
	if i < 0 || i >= b.size {
		return Record{}, false
	}
	return b.records[(b.head+i)%b.capacity], true
}

// From returns the records from logical position pos to the tail, oldest
// first. A negative pos is treated as 0. The result is a copy.
func (b *Buffer) From(pos int) []Record {
	pos = max(pos, 0)
	if pos >= b.size {
		return nil
	}
	out := make([]Record, 0, b.size-pos)
	for i := pos; i < b.size; i++ {
		out = append(out, b.records[(b.head+i)%b.capacity])
	}
	return out
}

// Records returns every record, oldest first.
func (b *Buffer) Records() []Record {
	return b.From(0)
}

// Clear removes all records.
func (b *Buffer) Clear() {
	count := b.size
	clear(b.records)
	b.head, b.size = 0, 0
	if b.onEvict != nil && count > 0 {
		b.onEvict(count)
	}
}

// SetCapacity changes the maximum number of records. Shrinking below the
// current length drops the oldest records.
func (b *Buffer) SetCapacity(capacity int) {
	if capacity <= 0 {
		capacity = DefaultSize
	}
	if capacity == b.capacity {
		return
	}

	keep := min(b.size, capacity)
	dropped := b.size - keep
	records := make([]Record, capacity)
	for i := range keep {
		records[i] = b.records[(b.head+dropped+i)%b.capacity]
	}

	b.records = records
	b.capacity = capacity
	b.head = 0
	b.size = keep
	if b.onEvict != nil && dropped > 0 {
		b.onEvict(dropped)
	}
}
