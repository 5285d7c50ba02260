package printtext

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
)

type delivery struct {
	id     uuid.UUID
	text   string
	indent int
}

type recordingSink struct {
	mu  sync.Mutex
	got []delivery
}

func (s *recordingSink) Deliver(id uuid.UUID, text string, indent int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, delivery{id, text, indent})
	return nil
}

func TestPrinterPrintf(t *testing.T) {
	plainStrings(t)
	sink := &recordingSink{}
	p := NewPrinter(sink)
	id := uuid.New()

	if err := p.Printf(Context{Window: id, Spec: Spec1}, "joined %s", "#go"); err != nil {
		t.Fatalf("Printf: %v", err)
	}
	if len(sink.got) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(sink.got))
	}
	d := sink.got[0]
	if d.id != id || d.text != "[*] joined #go" || d.indent != 4 {
		t.Errorf("unexpected delivery %+v", d)
	}
}

func TestPrinterPrintKeepsPercent(t *testing.T) {
	sink := &recordingSink{}
	p := NewPrinter(sink)
	if err := p.Print(Context{}, "100% done"); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if got := sink.got[0].text; got != "100% done" {
		t.Errorf("expected %q, got %q", "100% done", got)
	}
}

func TestPrinterConcurrent(t *testing.T) {
	sink := &recordingSink{}
	p := NewPrinter(sink)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Printf(Context{}, "msg %d", i)
		}()
	}
	wg.Wait()

	if len(sink.got) != 20 {
		t.Fatalf("expected 20 deliveries, got %d", len(sink.got))
	}
	seen := make(map[string]bool)
	for _, d := range sink.got {
		seen[d.text] = true
	}
	for i := range 20 {
		if !seen[fmt.Sprintf("msg %d", i)] {
			t.Errorf("missing msg %d", i)
		}
	}
}
