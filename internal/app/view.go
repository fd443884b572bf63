package app

import (
	"sort"
	"strings"
	"unicode/utf8"

	"plainpad/internal/editor"
	"plainpad/internal/render"
	"plainpad/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

const tabSpaces = 4

// visualLine is one painted row: a whole logical line, or a piece of one
// when word wrap splits it.
type visualLine struct {
	start  int // byte offsets into the buffer
	end    int
	number int // 1-based logical line; 0 on wrapped continuations
	width  int
}

// docView is the per-window drawing state: the window's own pixel layer,
// its layout and the wrapped lines of its buffer.
type docView struct {
	fb     *render.FrameBuffer
	layer  *ebiten.Image
	layout ui.WindowLayout

	face  font.Face
	lineH int
	pad   int
	text  string
	lines []visualLine

	scrollX    int
	scrollY    int
	maxScrollX int
	maxScrollY int
}

func (v *docView) ensureLayer(w, h int) {
	if v.fb == nil || v.fb.W != w || v.fb.H != h {
		v.fb = render.NewFrameBuffer(w, h)
		if v.layer != nil {
			v.layer.Deallocate()
		}
		v.layer = ebiten.NewImage(max(1, w), max(1, h))
	}
}

func (v *docView) release() {
	if v.layer != nil {
		v.layer.Deallocate()
		v.layer = nil
	}
}

// relayout rewraps text for the current content width and clamps scrolling.
func (v *docView) relayout(text string, face font.Face, lineH int, wrap bool) {
	v.face = face
	v.lineH = max(1, lineH)
	v.text = text
	width := v.layout.Content.W - 2*v.pad
	v.lines = wrapLines(text, face, width, wrap)

	widest := 0
	for _, l := range v.lines {
		widest = max(widest, l.width)
	}
	v.maxScrollY = max(0, len(v.lines)*v.lineH+2*v.pad-v.layout.Content.H)
	v.maxScrollX = 0
	if !wrap {
		v.maxScrollX = max(0, widest+2*v.pad-v.layout.Content.W)
	}
	v.clampScroll()
}

func (v *docView) clampScroll() {
	v.scrollX = min(max(v.scrollX, 0), v.maxScrollX)
	v.scrollY = min(max(v.scrollY, 0), v.maxScrollY)
}

func (v *docView) lineText(l visualLine) string {
	return v.text[l.start:l.end]
}

// lineFor returns the index of the visual line holding pos. A position on a
// wrap boundary belongs to the later line.
func (v *docView) lineFor(pos int) int {
	i := sort.Search(len(v.lines), func(i int) bool { return v.lines[i].start > pos })
	return max(0, i-1)
}

// hitTest maps a point in window-local pixels inside the content area to a
// byte offset in the buffer.
func (v *docView) hitTest(x, y int) int {
	if len(v.lines) == 0 {
		return 0
	}
	c := v.layout.Content
	row := y - c.Y - v.pad + v.scrollY
	idx := 0
	if row > 0 {
		idx = min(row/v.lineH, len(v.lines)-1)
	}
	l := v.lines[idx]
	return l.start + byteAtX(v.face, v.lineText(l), x-c.X-v.pad+v.scrollX)
}

// caretPoint returns the content-relative document coordinates of pos.
func (v *docView) caretPoint(pos int) (int, int) {
	if len(v.lines) == 0 {
		return 0, 0
	}
	idx := v.lineFor(pos)
	l := v.lines[idx]
	rel := min(max(pos-l.start, 0), l.end-l.start)
	return textWidth(v.face, v.lineText(l)[:rel]), idx * v.lineH
}

// reveal scrolls the smallest distance that brings pos into view.
func (v *docView) reveal(pos int) {
	x, y := v.caretPoint(pos)
	viewH := v.layout.Content.H - 2*v.pad
	viewW := v.layout.Content.W - 2*v.pad
	if y < v.scrollY {
		v.scrollY = y
	}
	if y+v.lineH > v.scrollY+viewH {
		v.scrollY = y + v.lineH - viewH
	}
	margin := min(16, viewW/4)
	if x < v.scrollX+margin {
		v.scrollX = x - margin
	}
	if x > v.scrollX+viewW-margin {
		v.scrollX = x - viewW + margin
	}
	v.clampScroll()
}

// pageLines is how many rows fit in the content area.
func (v *docView) pageLines() int {
	return max(1, (v.layout.Content.H-2*v.pad)/v.lineH)
}

// spanOn clips r to visual line l, reporting the pixel extent within it.
func (v *docView) spanOn(l visualLine, r editor.Range) (int, int, bool) {
	start := max(r.Start, l.start)
	end := min(r.End, l.end)
	if start >= end {
		return 0, 0, false
	}
	line := v.lineText(l)
	x0 := textWidth(v.face, line[:start-l.start])
	x1 := textWidth(v.face, line[:end-l.start])
	return x0, x1, true
}

// wrapLines splits text into visual lines. With wrap on, lines longer than
// width break after the last blank that fits, or mid-word when none does.
func wrapLines(text string, face font.Face, width int, wrap bool) []visualLine {
	var out []visualLine
	number := 1
	start := 0
	for {
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += start
		}
		line := text[start:end]
		if !wrap || width <= 0 {
			out = append(out, visualLine{start: start, end: end, number: number, width: textWidth(face, line)})
		} else {
			out = appendWrapped(out, text, start, end, number, face, width)
		}
		if end == len(text) {
			return out
		}
		start = end + 1
		number++
	}
}

func appendWrapped(out []visualLine, text string, start, end, number int, face font.Face, width int) []visualLine {
	segStart := start
	lastBreak := -1
	x := 0
	first := true
	emit := func(cut int) {
		n := 0
		if first {
			n = number
			first = false
		}
		out = append(out, visualLine{start: segStart, end: cut, number: n, width: textWidth(face, text[segStart:cut])})
	}
	for i, r := range text[start:end] {
		pos := start + i
		rw := runeAdvance(face, r)
		if x+rw > width && pos > segStart {
			cut := pos
			if lastBreak > segStart {
				cut = lastBreak
			}
			emit(cut)
			segStart = cut
			x = textWidth(face, text[segStart:pos])
		}
		x += rw
		if r == ' ' || r == '\t' {
			lastBreak = pos + 1
		}
	}
	emit(end)
	return out
}

func runeAdvance(face font.Face, r rune) int {
	if r == '\t' {
		return tabSpaces * runeAdvance(face, ' ')
	}
	adv, ok := face.GlyphAdvance(r)
	if !ok {
		adv, _ = face.GlyphAdvance('?')
	}
	return adv.Round()
}

func textWidth(face font.Face, s string) int {
	w := 0
	for _, r := range s {
		w += runeAdvance(face, r)
	}
	return w
}

// byteAtX returns the rune boundary in s closest to relX pixels.
func byteAtX(face font.Face, s string, relX int) int {
	if relX <= 0 {
		return 0
	}
	x := 0
	pos := 0
	for len(s[pos:]) > 0 {
		r, size := utf8.DecodeRuneInString(s[pos:])
		rw := runeAdvance(face, r)
		if relX < x+rw/2 {
			return pos
		}
		x += rw
		pos += size
	}
	return len(s)
}
