package window

import (
	"github.com/Gaurav-Gosain/tuirc/internal/printtext"
)

// ScrollStep is how many records each scroll action moves once a window is
// in scroll mode.
const ScrollStep = 6

// ScrollUp pages the active window back through its history. It reports
// false, ringing the bell if enabled, when there is nothing older to show.
func (r *Registry) ScrollUp() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.active
	height := w.pane.Rows()

	if !w.ScrollMode {
		if w.buf.Len() <= height {
			r.ringBell()
			return false
		}
		w.ScrollMode = true
		w.SavedSize = w.buf.Len()
		w.ScrollCount = height
		r.updateStatusbar()
	} else if w.SavedSize-w.ScrollCount < 1 {
		r.ringBell()
		return false
	}

	w.ScrollCount = min(w.ScrollCount+ScrollStep, w.SavedSize)
	r.drawPaged(w)
	return true
}

// ScrollDown pages the active window forward. Reaching the live tail leaves
// scroll mode. It reports false, ringing the bell if enabled, when the
// window is not in scroll mode.
func (r *Registry) ScrollDown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.active
	if !w.ScrollMode {
		r.ringBell()
		return false
	}

	w.ScrollCount -= ScrollStep
	if w.ScrollCount <= w.pane.Rows() {
		r.leaveScrollMode(w)
		return true
	}
	r.drawPaged(w)
	return true
}

// leaveScrollMode returns w to its live tail. Callers hold r.mu.
func (r *Registry) leaveScrollMode(w *Window) {
	w.ScrollMode, w.SavedSize, w.ScrollCount = false, 0, 0
	r.redraw(w)
	r.updateStatusbar()
}

func (r *Registry) ringBell() {
	if r.bell {
		r.screen.Bell()
	}
}

// drawPaged draws w from its scroll offset, stopping once the pane is
// full. Callers hold r.mu.
func (r *Registry) drawPaged(w *Window) {
	r.erase(w.pane)

	budget := w.pane.Rows()
	for _, rec := range w.buf.From(w.SavedSize - w.ScrollCount) {
		if budget <= 0 {
			break
		}
		budget -= printtext.Puts(w.pane, rec.Text, rec.Indent, budget)
	}
}

// redraw replays the tail of w's scrollback, enough records to fill the
// pane. Callers hold r.mu.
func (r *Registry) redraw(w *Window) {
	r.erase(w.pane)
	for _, rec := range w.buf.From(w.buf.Len() - w.pane.Rows()) {
		printtext.Puts(w.pane, rec.Text, rec.Indent, -1)
	}
}

// Redraw repaints the active window and the bars.
func (r *Registry) Redraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refresh(r.active)
	r.updateTitlebar()
	r.updateStatusbar()
}

// refresh repaints w in its current scroll state. Callers hold r.mu.
func (r *Registry) refresh(w *Window) {
	if w.ScrollMode {
		if w.ScrollCount <= w.pane.Rows() {
			w.ScrollMode, w.SavedSize, w.ScrollCount = false, 0, 0
			r.redraw(w)
			return
		}
		r.drawPaged(w)
		return
	}
	r.redraw(w)
}

// Resize recreates every pane for a terminal of the given size and replays
// their scrollback. Windows in scroll mode stay there unless the new page
// height already shows their offset.
func (r *Registry) Resize(rows, cols int) {
	r.screen.Resize(rows, cols)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows, r.cols = max(rows, 0), max(cols, 0)
	height := r.paneRows()

	r.screen.Lock()
	for _, w := range r.windows {
		w.pane.Resize(height, r.cols)
	}
	r.titlePane.Resize(1, r.cols)
	r.statusPane.Resize(1, r.cols)
	r.screen.Unlock()

	for _, w := range r.windows {
		r.refresh(w)
	}
	r.updateTitlebar()
	r.updateStatusbar()
}
