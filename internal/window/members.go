package window

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Mode is a set of channel membership flags.
type Mode uint8

const (
	ModeOwner Mode = 1 << iota
	ModeSuperop
	ModeOp
	ModeHalfop
	ModeVoice

	ModeNone Mode = 0
)

// Prefix returns the nick prefix of the highest flag in m.
func (m Mode) Prefix() string {
	switch {
	case m&ModeOwner != 0:
		return "~"
	case m&ModeSuperop != 0:
		return "&"
	case m&ModeOp != 0:
		return "@"
	case m&ModeHalfop != 0:
		return "%"
	case m&ModeVoice != 0:
		return "+"
	}
	return ""
}

// ParsePrefix splits a nick as listed in a names reply into its mode and
// bare nick.
func ParsePrefix(s string) (Mode, string) {
	var m Mode
	for s != "" {
		switch s[0] {
		case '~':
			m |= ModeOwner
		case '&':
			m |= ModeSuperop
		case '@':
			m |= ModeOp
		case '%':
			m |= ModeHalfop
		case '+':
			m |= ModeVoice
		default:
			return m, s
		}
		s = s[1:]
	}
	return m, s
}

// Counts tallies the members of one window. Each member is counted once,
// under its highest flag.
type Counts struct {
	Owners   int
	Superops int
	Ops      int
	Halfops  int
	Voices   int
	Normal   int
	Total    int
}

func (c *Counts) add(m Mode, delta int) {
	switch {
	case m&ModeOwner != 0:
		c.Owners += delta
	case m&ModeSuperop != 0:
		c.Superops += delta
	case m&ModeOp != 0:
		c.Ops += delta
	case m&ModeHalfop != 0:
		c.Halfops += delta
	case m&ModeVoice != 0:
		c.Voices += delta
	default:
		c.Normal += delta
	}
	c.Total += delta
}

type member struct {
	nick string
	mode Mode
}

type table struct {
	members map[string]*member
	counts  Counts
}

// Members holds the nick lists of the channel windows, keyed by window ID.
type Members struct {
	mu     sync.RWMutex
	tables map[uuid.UUID]*table
}

// NewMembers creates an empty membership store.
func NewMembers() *Members {
	return &Members{tables: make(map[uuid.UUID]*table)}
}

func key(nick string) string { return strings.ToLower(nick) }

// Add inserts nick into the window's list, or replaces its mode if it is
// already there.
func (ms *Members) Add(id uuid.UUID, nick string, mode Mode) error {
	if nick == "" {
		return fmt.Errorf("%w: empty nick", ErrInvalidArgument)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	t, ok := ms.tables[id]
	if !ok {
		t = &table{members: make(map[string]*member)}
		ms.tables[id] = t
	}
	if m, ok := t.members[key(nick)]; ok {
		t.counts.add(m.mode, -1)
		m.nick, m.mode = nick, mode
		t.counts.add(mode, 1)
		return nil
	}
	t.members[key(nick)] = &member{nick: nick, mode: mode}
	t.counts.add(mode, 1)
	return nil
}

// Remove deletes nick from the window's list.
func (ms *Members) Remove(id uuid.UUID, nick string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	t, ok := ms.tables[id]
	if !ok {
		return fmt.Errorf("%w: nick %q", ErrNotFound, nick)
	}
	m, ok := t.members[key(nick)]
	if !ok {
		return fmt.Errorf("%w: nick %q", ErrNotFound, nick)
	}
	t.counts.add(m.mode, -1)
	delete(t.members, key(nick))
	return nil
}

// SetMode turns the given flags on or off for nick.
func (ms *Members) SetMode(id uuid.UUID, nick string, flags Mode, on bool) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	t, ok := ms.tables[id]
	if !ok {
		return fmt.Errorf("%w: nick %q", ErrNotFound, nick)
	}
	m, ok := t.members[key(nick)]
	if !ok {
		return fmt.Errorf("%w: nick %q", ErrNotFound, nick)
	}

	t.counts.add(m.mode, -1)
	if on {
		m.mode |= flags
	} else {
		m.mode &^= flags
	}
	t.counts.add(m.mode, 1)
	return nil
}

// Rename changes nick in every window it appears in and reports how many
// windows were affected.
func (ms *Members) Rename(oldNick, newNick string) int {
	if newNick == "" {
		return 0
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	n := 0
	for _, t := range ms.tables {
		m, ok := t.members[key(oldNick)]
		if !ok {
			continue
		}
		delete(t.members, key(oldNick))
		if dup, ok := t.members[key(newNick)]; ok {
			t.counts.add(dup.mode, -1)
		}
		m.nick = newNick
		t.members[key(newNick)] = m
		n++
	}
	return n
}

// Has reports whether nick is in the window's list.
func (ms *Members) Has(id uuid.UUID, nick string) bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	t, ok := ms.tables[id]
	if !ok {
		return false
	}
	_, ok = t.members[key(nick)]
	return ok
}

// Mode returns nick's mode flags in the window.
func (ms *Members) Mode(id uuid.UUID, nick string) (Mode, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if t, ok := ms.tables[id]; ok {
		if m, ok := t.members[key(nick)]; ok {
			return m.mode, true
		}
	}
	return ModeNone, false
}

// Counts returns the tallies for a window.
func (ms *Members) Counts(id uuid.UUID) Counts {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if t, ok := ms.tables[id]; ok {
		return t.counts
	}
	return Counts{}
}

// Nicks returns the window's members with their prefixes, highest mode
// first and then alphabetically.
func (ms *Members) Nicks(id uuid.UUID) []string {
	ms.mu.RLock()
	t, ok := ms.tables[id]
	if !ok {
		ms.mu.RUnlock()
		return nil
	}
	list := make([]member, 0, len(t.members))
	for _, m := range t.members {
		list = append(list, *m)
	}
	ms.mu.RUnlock()

	slices.SortFunc(list, func(a, b member) int {
		if ra, rb := rank(a.mode), rank(b.mode); ra != rb {
			return ra - rb
		}
		return strings.Compare(key(a.nick), key(b.nick))
	})

	out := make([]string, len(list))
	for i, m := range list {
		out[i] = m.mode.Prefix() + m.nick
	}
	return out
}

func rank(m Mode) int {
	for i, f := range []Mode{ModeOwner, ModeSuperop, ModeOp, ModeHalfop, ModeVoice} {
		if m&f != 0 {
			return i
		}
	}
	return 5
}

// RemoveAll drops the window's whole list.
func (ms *Members) RemoveAll(id uuid.UUID) {
	ms.mu.Lock()
	delete(ms.tables, id)
	ms.mu.Unlock()
}
