package search

import "plainpad/internal/editor"

// Query supplies the current target and options each time spans are recomputed.
type Query func() (string, Options)

// Highlighter keeps the buffer's highlight decorations equal to every match of
// the current query. It re-runs on each buffer change.
type Highlighter struct {
	buf         *editor.Buffer
	query       Query
	unsubscribe func()
}

func NewHighlighter(buf *editor.Buffer, query Query) *Highlighter {
	h := &Highlighter{buf: buf, query: query}
	h.unsubscribe = buf.Subscribe(h.Update)
	return h
}

// Update drops all previous spans and applies the current matches.
func (h *Highlighter) Update() {
	if h.buf == nil {
		return
	}
	target, opts := h.query()
	h.buf.SetHighlights(FindAll(h.buf.Text(), target, opts))
}

func (h *Highlighter) Spans() []editor.Range {
	if h.buf == nil {
		return nil
	}
	return h.buf.Highlights()
}

// Detach removes the highlighting and stops following the buffer.
func (h *Highlighter) Detach() {
	if h.buf == nil {
		return
	}
	h.unsubscribe()
	h.buf.SetHighlights(nil)
	h.buf = nil
}
