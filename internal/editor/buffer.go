package editor

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxHistory = 200

// Range is a half-open byte range [Start, End) into the buffer text. Both ends
// always sit on rune boundaries.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int    { return r.End - r.Start }
func (r Range) Empty() bool { return r.End <= r.Start }

type snapshot struct {
	text  []byte
	caret int
}

type listener struct {
	id int
	fn func()
}

// Buffer is a plain-text editing surface: text, caret, selection, highlight
// decorations and change notifications.
type Buffer struct {
	text  []byte
	caret int

	anchor   int
	anchored bool

	highlights []Range

	reveal        Range
	revealPending bool

	listeners  []listener
	listenerID int

	undoHistory []snapshot
	redoHistory []snapshot
}

func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.text = []byte(sanitize(text))
	return b
}

func (b *Buffer) Text() string { return string(b.text) }
func (b *Buffer) Len() int     { return len(b.text) }
func (b *Buffer) Empty() bool  { return len(b.text) == 0 }

// Subscribe registers fn to run after every content mutation. The returned
// function removes the subscription.
func (b *Buffer) Subscribe(fn func()) func() {
	b.listenerID++
	id := b.listenerID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetText replaces the whole content, collapses the selection at the start and
// notifies subscribers.
func (b *Buffer) SetText(text string) {
	b.pushUndo()
	b.text = []byte(sanitize(text))
	b.caret = 0
	b.ClearSelection()
	b.changed()
}

// Load replaces the content without recording history, as when a file is read.
func (b *Buffer) Load(text string) {
	b.text = []byte(sanitize(text))
	b.caret = 0
	b.ClearSelection()
	b.undoHistory = b.undoHistory[:0]
	b.redoHistory = b.redoHistory[:0]
	b.changed()
}

func (b *Buffer) Caret() int { return b.caret }

func (b *Buffer) SetCaret(pos int) {
	b.caret = clampToRuneBoundary(b.text, pos)
}

func (b *Buffer) HasSelection() bool {
	return b.anchored && b.anchor != b.caret
}

// Selection returns the ordered selection, or an empty range at the caret.
func (b *Buffer) Selection() Range {
	if !b.HasSelection() {
		return Range{Start: b.caret, End: b.caret}
	}
	if b.anchor < b.caret {
		return Range{Start: b.anchor, End: b.caret}
	}
	return Range{Start: b.caret, End: b.anchor}
}

// SetSelection selects r with the caret at r.End.
func (b *Buffer) SetSelection(r Range) {
	r = b.clampRange(r)
	b.anchor = r.Start
	b.anchored = true
	b.caret = r.End
}

func (b *Buffer) EnsureSelectionAnchor() {
	if b.anchored {
		return
	}
	b.anchor = b.caret
	b.anchored = true
}

func (b *Buffer) ClearSelection() {
	b.anchored = false
	b.anchor = b.caret
}

func (b *Buffer) SelectAll() {
	b.anchor = 0
	b.anchored = true
	b.caret = len(b.text)
}

func (b *Buffer) SelectedText() string {
	sel := b.Selection()
	return string(b.text[sel.Start:sel.End])
}

// Slice returns the text covered by r after clamping.
func (b *Buffer) Slice(r Range) string {
	r = b.clampRange(r)
	return string(b.text[r.Start:r.End])
}

// Reveal asks the view to scroll r into sight.
func (b *Buffer) Reveal(r Range) {
	b.reveal = b.clampRange(r)
	b.revealPending = true
}

// TakeReveal returns and clears the pending reveal request.
func (b *Buffer) TakeReveal() (Range, bool) {
	if !b.revealPending {
		return Range{}, false
	}
	b.revealPending = false
	return b.reveal, true
}

// SetHighlights replaces every highlight decoration. Highlights never alter text.
func (b *Buffer) SetHighlights(spans []Range) {
	if len(spans) == 0 {
		b.highlights = nil
		return
	}
	b.highlights = append(b.highlights[:0:0], spans...)
}

func (b *Buffer) Highlights() []Range {
	return b.highlights
}

func (b *Buffer) InsertText(input string) {
	if input == "" {
		return
	}
	input = strings.ReplaceAll(sanitize(input), "\r\n", "\n")
	b.pushUndo()
	sel := b.Selection()
	b.replace(sel, input)
	b.caret = sel.Start + len(input)
	b.ClearSelection()
	b.changed()
}

// ReplaceRange substitutes r with text and leaves the caret after the insertion.
func (b *Buffer) ReplaceRange(r Range, text string) {
	r = b.clampRange(r)
	text = sanitize(text)
	b.pushUndo()
	b.replace(r, text)
	b.caret = r.Start + len(text)
	b.ClearSelection()
	b.changed()
}

// ReplaceRanges substitutes every range with text as a single edit. Ranges must
// not overlap. The caret ends after the last replacement.
func (b *Buffer) ReplaceRanges(ranges []Range, text string) int {
	if len(ranges) == 0 {
		return 0
	}
	text = sanitize(text)
	sorted := append([]Range(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	b.pushUndo()
	var out []byte
	last := 0
	for _, r := range sorted {
		r = b.clampRange(r)
		if r.Start < last {
			continue
		}
		out = append(out, b.text[last:r.Start]...)
		out = append(out, text...)
		last = r.End
	}
	caret := len(out)
	out = append(out, b.text[last:]...)
	b.text = out
	b.caret = caret
	b.ClearSelection()
	b.changed()
	return len(sorted)
}

func (b *Buffer) DeleteSelection() bool {
	if !b.HasSelection() {
		return false
	}
	b.pushUndo()
	sel := b.Selection()
	b.replace(sel, "")
	b.caret = sel.Start
	b.ClearSelection()
	b.changed()
	return true
}

func (b *Buffer) Backspace() {
	if b.DeleteSelection() {
		return
	}
	if b.caret == 0 {
		return
	}
	start := previousRuneBoundary(b.text, b.caret)
	b.deleteRange(Range{Start: start, End: b.caret})
}

func (b *Buffer) DeleteForward() {
	if b.DeleteSelection() {
		return
	}
	if b.caret >= len(b.text) {
		return
	}
	b.deleteRange(Range{Start: b.caret, End: nextRuneBoundary(b.text, b.caret)})
}

func (b *Buffer) DeleteWordBackward() {
	if b.DeleteSelection() {
		return
	}
	if b.caret == 0 {
		return
	}
	b.deleteRange(Range{Start: previousWordBoundary(b.text, b.caret), End: b.caret})
}

func (b *Buffer) DeleteWordForward() {
	if b.DeleteSelection() {
		return
	}
	if b.caret >= len(b.text) {
		return
	}
	b.deleteRange(Range{Start: b.caret, End: nextWordBoundary(b.text, b.caret)})
}

func (b *Buffer) MoveCaretLeft() {
	b.caret = previousRuneBoundary(b.text, b.caret)
}

func (b *Buffer) MoveCaretRight() {
	b.caret = nextRuneBoundary(b.text, b.caret)
}

func (b *Buffer) MoveCaretWordLeft() {
	b.caret = previousWordBoundary(b.text, b.caret)
}

func (b *Buffer) MoveCaretWordRight() {
	b.caret = nextWordBoundary(b.text, b.caret)
}

func (b *Buffer) MoveCaretToLineStart() {
	b.caret = b.lineStartAt(b.caret)
}

func (b *Buffer) MoveCaretToLineEnd() {
	b.caret = b.lineEndAt(b.caret)
}

func (b *Buffer) MoveCaretToStart() { b.caret = 0 }
func (b *Buffer) MoveCaretToEnd()   { b.caret = len(b.text) }

// MoveCaretLine moves the caret delta lines, keeping the rune column where
// the target line is long enough.
func (b *Buffer) MoveCaretLine(delta int) {
	line, col := b.lineAndColumn(b.caret)
	target := line + delta
	if target < 0 {
		b.caret = 0
		return
	}
	if target >= b.LineCount() {
		b.caret = len(b.text)
		return
	}
	b.caret = b.positionAt(target, col)
}

// LineCount is the number of '\n'-separated lines; an empty buffer has one.
func (b *Buffer) LineCount() int {
	n := 1
	for _, c := range b.text {
		if c == '\n' {
			n++
		}
	}
	return n
}

// Lines splits the text into lines without their terminators.
func (b *Buffer) Lines() []string {
	return strings.Split(string(b.text), "\n")
}

// LineRange returns the byte range of the zero-based line, excluding '\n'.
func (b *Buffer) LineRange(line int) Range {
	start := 0
	for i := 0; i < line; i++ {
		idx := indexByteFrom(b.text, '\n', start)
		if idx < 0 {
			return Range{Start: len(b.text), End: len(b.text)}
		}
		start = idx + 1
	}
	return Range{Start: start, End: b.lineEndAt(start)}
}

// CaretLineColumn reports the 1-based line and rune column of the caret.
func (b *Buffer) CaretLineColumn() (int, int) {
	line, col := b.lineAndColumn(b.caret)
	return line + 1, col + 1
}

// LineAt reports the zero-based line containing pos.
func (b *Buffer) LineAt(pos int) int {
	line, _ := b.lineAndColumn(pos)
	return line
}

// GoToLine puts the caret at the start of the 1-based line, clamped to the
// existing lines, and reveals it. It returns the line actually used.
func (b *Buffer) GoToLine(line int) int {
	if line < 1 {
		line = 1
	}
	if n := b.LineCount(); line > n {
		line = n
	}
	r := b.LineRange(line - 1)
	b.ClearSelection()
	b.caret = r.Start
	b.Reveal(Range{Start: r.Start, End: r.Start})
	return line
}

func (b *Buffer) CanUndo() bool { return len(b.undoHistory) > 0 }
func (b *Buffer) CanRedo() bool { return len(b.redoHistory) > 0 }

func (b *Buffer) Undo() {
	if len(b.undoHistory) == 0 {
		return
	}
	last := b.undoHistory[len(b.undoHistory)-1]
	b.undoHistory = b.undoHistory[:len(b.undoHistory)-1]
	b.redoHistory = append(b.redoHistory, b.snapshot())
	b.restore(last)
}

func (b *Buffer) Redo() {
	if len(b.redoHistory) == 0 {
		return
	}
	last := b.redoHistory[len(b.redoHistory)-1]
	b.redoHistory = b.redoHistory[:len(b.redoHistory)-1]
	b.undoHistory = append(b.undoHistory, b.snapshot())
	b.restore(last)
}

func (b *Buffer) snapshot() snapshot {
	return snapshot{text: append([]byte(nil), b.text...), caret: b.caret}
}

func (b *Buffer) restore(s snapshot) {
	b.text = s.text
	b.caret = clampToRuneBoundary(b.text, s.caret)
	b.ClearSelection()
	b.changed()
}

func (b *Buffer) pushUndo() {
	b.undoHistory = append(b.undoHistory, b.snapshot())
	if len(b.undoHistory) > maxHistory {
		b.undoHistory = b.undoHistory[1:]
	}
	b.redoHistory = b.redoHistory[:0]
}

func (b *Buffer) deleteRange(r Range) {
	b.pushUndo()
	b.replace(r, "")
	b.caret = r.Start
	b.ClearSelection()
	b.changed()
}

func (b *Buffer) replace(r Range, insert string) {
	out := make([]byte, 0, len(b.text)-r.Len()+len(insert))
	out = append(out, b.text[:r.Start]...)
	out = append(out, insert...)
	out = append(out, b.text[r.End:]...)
	b.text = out
}

func (b *Buffer) changed() {
	b.caret = clampToRuneBoundary(b.text, b.caret)
	for _, l := range append([]listener(nil), b.listeners...) {
		l.fn()
	}
}

func (b *Buffer) clampRange(r Range) Range {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	r.Start = clampToRuneBoundary(b.text, r.Start)
	r.End = clampToRuneBoundary(b.text, r.End)
	return r
}

func (b *Buffer) lineStartAt(pos int) int {
	pos = clampToRuneBoundary(b.text, pos)
	for pos > 0 && b.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (b *Buffer) lineEndAt(pos int) int {
	pos = clampToRuneBoundary(b.text, pos)
	if idx := indexByteFrom(b.text, '\n', pos); idx >= 0 {
		return idx
	}
	return len(b.text)
}

func (b *Buffer) lineAndColumn(pos int) (int, int) {
	pos = clampToRuneBoundary(b.text, pos)
	line := 0
	for _, c := range b.text[:pos] {
		if c == '\n' {
			line++
		}
	}
	start := b.lineStartAt(pos)
	return line, utf8.RuneCount(b.text[start:pos])
}

func (b *Buffer) positionAt(line, col int) int {
	r := b.LineRange(line)
	pos := r.Start
	for i := 0; i < col && pos < r.End; i++ {
		pos = nextRuneBoundary(b.text, pos)
	}
	return pos
}

func sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

func indexByteFrom(text []byte, c byte, from int) int {
	for i := from; i < len(text); i++ {
		if text[i] == c {
			return i
		}
	}
	return -1
}

func clampToRuneBoundary(text []byte, pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(text) {
		pos = len(text)
	}
	for pos > 0 && pos < len(text) && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return pos
}

func previousRuneBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	if pos == 0 {
		return 0
	}
	_, size := utf8.DecodeLastRune(text[:pos])
	if size <= 0 {
		size = 1
	}
	return pos - size
}

func nextRuneBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	if pos >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRune(text[pos:])
	if size <= 0 {
		size = 1
	}
	return pos + size
}

func previousWordBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	for pos > 0 {
		r, size := utf8.DecodeLastRune(text[:pos])
		if isWordRune(r) {
			break
		}
		pos -= max(size, 1)
	}
	for pos > 0 {
		r, size := utf8.DecodeLastRune(text[:pos])
		if !isWordRune(r) {
			break
		}
		pos -= max(size, 1)
	}
	return pos
}

func nextWordBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	for pos < len(text) {
		r, size := utf8.DecodeRune(text[pos:])
		if isWordRune(r) {
			break
		}
		pos += max(size, 1)
	}
	for pos < len(text) {
		r, size := utf8.DecodeRune(text[pos:])
		if !isWordRune(r) {
			break
		}
		pos += max(size, 1)
	}
	return pos
}

// IsWordRune reports whether r belongs to a word for movement and whole-word search.
func IsWordRune(r rune) bool {
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
