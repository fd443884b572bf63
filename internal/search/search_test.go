package search

import (
	"errors"
	"testing"

	"plainpad/internal/editor"
	"plainpad/internal/prefs"
)

func newController(text, target string) (*Controller, *editor.Buffer, *prefs.Preferences) {
	p := prefs.Default()
	p.FindTarget = target
	buf := editor.NewBuffer(text)
	return NewController(p, buf), buf, p
}

func TestFindNextWrapsFromEnd(t *testing.T) {
	c, buf, _ := newController("cat dog cat", "cat")
	if got := len(c.Spans()); got != 2 {
		t.Fatalf("expected 2 highlighted matches, got %d", got)
	}
	buf.MoveCaretToEnd()
	r, err := c.FindNext()
	if err != nil {
		t.Fatalf("expected wraparound match, got %v", err)
	}
	if r != (editor.Range{Start: 0, End: 3}) {
		t.Fatalf("expected first occurrence, got %+v", r)
	}
	if buf.Selection() != r {
		t.Fatalf("expected match to be selected, got %+v", buf.Selection())
	}
	if rev, ok := buf.TakeReveal(); !ok || rev != r {
		t.Fatalf("expected match to be revealed, got %+v %v", rev, ok)
	}
	r, err = c.FindNext()
	if err != nil || r.Start != 8 {
		t.Fatalf("expected second occurrence, got %+v %v", r, err)
	}
}

func TestFindPrevWrapsFromStart(t *testing.T) {
	c, buf, _ := newController("cat dog cat", "cat")
	buf.SetCaret(0)
	r, err := c.FindPrev()
	if err != nil || r.Start != 8 {
		t.Fatalf("expected last occurrence, got %+v %v", r, err)
	}
	r, err = c.FindPrev()
	if err != nil || r.Start != 0 {
		t.Fatalf("expected first occurrence, got %+v %v", r, err)
	}
}

func TestFindReportsNotFound(t *testing.T) {
	c, _, _ := newController("cat dog", "bird")
	if _, err := c.FindNext(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	c.SetTarget("")
	if _, err := c.FindPrev(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty target, got %v", err)
	}
	if c.CanFind() || c.CanReplace() {
		t.Fatalf("expected actions disabled for empty target")
	}
}

func TestWholeWordSkipsEmbeddedMatches(t *testing.T) {
	c, _, p := newController("category cat", "cat")
	c.SetWholeWord(true)
	if !p.MatchWholeWord {
		t.Fatalf("expected option mirrored into preferences")
	}
	spans := c.Spans()
	if len(spans) != 1 || spans[0].Start != 9 {
		t.Fatalf("expected only the standalone word, got %+v", spans)
	}
	if _, ok := Find("category", "cat", 0, Options{WholeWord: true}); ok {
		t.Fatalf("expected no whole-word match inside category")
	}
}

func TestMatchCaseToggle(t *testing.T) {
	c, _, _ := newController("Cat cat CAT", "cat")
	if got := len(c.Spans()); got != 3 {
		t.Fatalf("expected case-insensitive matches, got %d", got)
	}
	c.SetMatchCase(true)
	spans := c.Spans()
	if len(spans) != 1 || spans[0].Start != 4 {
		t.Fatalf("expected only exact-case match, got %+v", spans)
	}
}

func TestCaseFoldingIsPerRune(t *testing.T) {
	if _, ok := Find("ÉCOLE", "école", 0, Options{}); !ok {
		t.Fatalf("expected case-insensitive match across non-ASCII runes")
	}
	r, ok := Find("xKy", "k", 0, Options{})
	if !ok || r.Len() != 3 {
		t.Fatalf("expected Kelvin sign to fold to k with its own byte length, got %+v %v", r, ok)
	}
}

func TestReplaceAllLeavesNoHighlights(t *testing.T) {
	c, buf, p := newController("a-a-a", "a")
	p.ReplaceTarget = "b"
	if n := c.ReplaceAll(); n != 3 {
		t.Fatalf("unexpected replacement count: %d", n)
	}
	if got := buf.Text(); got != "b-b-b" {
		t.Fatalf("unexpected text: %q", got)
	}
	if len(c.Spans()) != 0 {
		t.Fatalf("expected no remaining highlights, got %+v", c.Spans())
	}
}

func TestReplaceAllWithTargetInsideReplacement(t *testing.T) {
	c, buf, p := newController("a a", "a")
	p.ReplaceTarget = "aa"
	if n := c.ReplaceAll(); n != 2 {
		t.Fatalf("unexpected replacement count: %d", n)
	}
	if got := buf.Text(); got != "aa aa" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestReplaceOnlyReplacesMatchingSelection(t *testing.T) {
	c, buf, _ := newController("one two one", "one")
	c.SetReplacement("1")

	buf.SetSelection(editor.Range{Start: 4, End: 7})
	replaced, err := c.Replace()
	if replaced {
		t.Fatalf("expected non-matching selection to be left alone")
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.Text(); got != "one two one" {
		t.Fatalf("unexpected text: %q", got)
	}
	if sel := buf.Selection(); sel.Start != 8 {
		t.Fatalf("expected fallback to find next, got %+v", sel)
	}

	replaced, err = c.Replace()
	if !replaced || err != nil {
		t.Fatalf("expected replacement, got %v %v", replaced, err)
	}
	if got := buf.Text(); got != "one two 1" {
		t.Fatalf("unexpected text: %q", got)
	}
	if sel := buf.Selection(); sel != (editor.Range{Start: 0, End: 3}) {
		t.Fatalf("expected advance to the wrapped next match, got %+v", sel)
	}
}

func TestReplaceLastMatchReportsNotFound(t *testing.T) {
	c, buf, _ := newController("x one", "one")
	c.SetReplacement("two")
	buf.SetSelection(editor.Range{Start: 2, End: 5})
	replaced, err := c.Replace()
	if !replaced || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected replacement then ErrNotFound, got %v %v", replaced, err)
	}
}

func TestHighlightFollowsBufferEdits(t *testing.T) {
	c, buf, _ := newController("cat", "cat")
	buf.MoveCaretToEnd()
	buf.InsertText(" cat")
	if got := len(c.Spans()); got != 2 {
		t.Fatalf("expected highlights recomputed after edit, got %d", got)
	}
	c.Close()
	if len(buf.Highlights()) != 0 {
		t.Fatalf("expected close to remove highlights")
	}
	buf.InsertText(" cat")
	if len(buf.Highlights()) != 0 {
		t.Fatalf("expected detached highlighter to stay quiet")
	}
}

func TestTargetSharedAcrossControllers(t *testing.T) {
	p := prefs.Default()
	first := NewController(p, editor.NewBuffer("alpha"))
	first.SetTarget("alp")
	first.SetReplacement("ALP")
	first.Close()

	second := NewController(p, editor.NewBuffer("alpha alp"))
	if second.Target() != "alp" || second.Replacement() != "ALP" {
		t.Fatalf("expected last-used values, got %q %q", second.Target(), second.Replacement())
	}
	if got := len(second.Spans()); got != 2 {
		t.Fatalf("expected new controller to highlight immediately, got %d", got)
	}
}

func TestFindAllNonOverlapping(t *testing.T) {
	got := FindAll("aaaa", "aa", Options{})
	if len(got) != 2 || got[1].Start != 2 {
		t.Fatalf("unexpected matches: %+v", got)
	}
}
