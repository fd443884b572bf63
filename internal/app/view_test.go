package app

import (
	"testing"

	"plainpad/internal/editor"
	"plainpad/internal/ui"

	"golang.org/x/image/font/basicfont"
)

var testFace = basicfont.Face7x13

func TestWrapLinesBreaksAfterBlank(t *testing.T) {
	lines := wrapLines("aaa bbb ccc", testFace, 8*7, true)
	if len(lines) != 2 {
		t.Fatalf("unexpected line count: %+v", lines)
	}
	if lines[0].start != 0 || lines[0].end != 8 || lines[0].number != 1 {
		t.Fatalf("unexpected first row: %+v", lines[0])
	}
	if lines[1].start != 8 || lines[1].end != 11 || lines[1].number != 0 {
		t.Fatalf("unexpected continuation row: %+v", lines[1])
	}
}

func TestWrapLinesSplitsLongWords(t *testing.T) {
	lines := wrapLines("abcdefghij", testFace, 4*7, true)
	want := [][2]int{{0, 4}, {4, 8}, {8, 10}}
	if len(lines) != len(want) {
		t.Fatalf("unexpected rows: %+v", lines)
	}
	for i, w := range want {
		if lines[i].start != w[0] || lines[i].end != w[1] {
			t.Fatalf("unexpected row %d: %+v", i, lines[i])
		}
	}
}

func TestWrapLinesWithoutWrapKeepsLogicalLines(t *testing.T) {
	lines := wrapLines("one\ntwo\n", testFace, 10, false)
	if len(lines) != 3 {
		t.Fatalf("unexpected rows: %+v", lines)
	}
	if lines[1].start != 4 || lines[1].end != 7 || lines[1].number != 2 {
		t.Fatalf("unexpected second row: %+v", lines[1])
	}
	if lines[2].start != 8 || lines[2].end != 8 || lines[2].number != 3 {
		t.Fatalf("unexpected trailing empty row: %+v", lines[2])
	}
	if lines[0].width != 21 {
		t.Fatalf("unexpected width: %d", lines[0].width)
	}
}

func TestTabsAdvanceByFourBlanks(t *testing.T) {
	if got := textWidth(testFace, "\tx"); got != 5*7 {
		t.Fatalf("unexpected tab width: %d", got)
	}
}

func TestByteAtXPicksNearestBoundary(t *testing.T) {
	if got := byteAtX(testFace, "abcd", 9); got != 1 {
		t.Fatalf("unexpected offset: %d", got)
	}
	if got := byteAtX(testFace, "abcd", 12); got != 2 {
		t.Fatalf("unexpected offset: %d", got)
	}
	if got := byteAtX(testFace, "abcd", 500); got != 4 {
		t.Fatalf("unexpected offset past the end: %d", got)
	}
	if got := byteAtX(testFace, "abcd", -3); got != 0 {
		t.Fatalf("unexpected offset before the start: %d", got)
	}
}

func newTestView(text string) *docView {
	v := &docView{layout: ui.WindowLayout{Content: ui.Rect{W: 100, H: 50}}}
	v.relayout(text, testFace, 13, false)
	return v
}

func TestRevealScrollsCaretIntoView(t *testing.T) {
	v := newTestView("l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9")
	if v.maxScrollY != 10*13-50 {
		t.Fatalf("unexpected scroll range: %d", v.maxScrollY)
	}
	v.reveal(24)
	if v.scrollY != 9*13-50 {
		t.Fatalf("unexpected scroll after reveal: %d", v.scrollY)
	}
	if got := v.hitTest(0, 0); got != 15 {
		t.Fatalf("unexpected hit at the top of the scrolled view: %d", got)
	}
	v.reveal(0)
	if v.scrollY != 0 {
		t.Fatalf("expected scroll back to the top: %d", v.scrollY)
	}
}

func TestLineForUsesLaterRowOnWrapBoundary(t *testing.T) {
	v := &docView{layout: ui.WindowLayout{Content: ui.Rect{W: 4 * 7, H: 50}}}
	v.relayout("abcdefgh", testFace, 13, true)
	if v.lineFor(4) != 1 || v.lineFor(3) != 0 || v.lineFor(8) != 1 {
		t.Fatalf("unexpected rows: %d %d %d", v.lineFor(3), v.lineFor(4), v.lineFor(8))
	}
}

func TestSpanOnMeasuresWithinRow(t *testing.T) {
	v := newTestView("hello world")
	x0, x1, ok := v.spanOn(v.lines[0], editor.Range{Start: 6, End: 11})
	if !ok || x0 != 42 || x1 != 77 {
		t.Fatalf("unexpected span: %d %d %v", x0, x1, ok)
	}
	if _, _, ok := v.spanOn(v.lines[0], editor.Range{Start: 3, End: 3}); ok {
		t.Fatalf("expected empty range to paint nothing")
	}
}
