package printtext

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Sink stores a formatted message in a window's scrollback and draws it if
// the window is showing its live tail.
type Sink interface {
	Deliver(id uuid.UUID, text string, indent int) error
}

// Context says where and how a message is printed.
type Context struct {
	Window    uuid.UUID
	Spec      Spec
	IncludeTS bool
}

// Printer serializes message output. Formatting, the scrollback append and
// the draw of one message happen under a single lock, so messages from
// different goroutines never interleave.
type Printer struct {
	mu   sync.Mutex
	sink Sink
}

// NewPrinter creates a printer that delivers to sink.
func NewPrinter(sink Sink) *Printer {
	return &Printer{sink: sink}
}

// Printf formats a message and delivers it to the context's window.
func (p *Printer) Printf(ctx Context, format string, args ...any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw := format
	if len(args) > 0 {
		raw = fmt.Sprintf(format, args...)
	}
	text, indent := Format(raw, ctx.Spec, ctx.IncludeTS)
	return p.sink.Deliver(ctx.Window, text, indent)
}

// Print delivers text verbatim as a message body.
func (p *Printer) Print(ctx Context, text string) error {
	return p.Printf(ctx, "%s", text)
}
