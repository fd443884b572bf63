package search

import (
	"errors"

	"plainpad/internal/editor"
	"plainpad/internal/prefs"
)

var ErrNotFound = errors.New("search: not found")

// Controller drives find/replace over one buffer. Target, replacement and
// options live in the shared Preferences so every dialog instance starts from
// the last values used in any window.
type Controller struct {
	prefs       *prefs.Preferences
	buf         *editor.Buffer
	highlighter *Highlighter
}

func NewController(p *prefs.Preferences, buf *editor.Buffer) *Controller {
	c := &Controller{prefs: p, buf: buf}
	c.highlighter = NewHighlighter(buf, func() (string, Options) {
		return c.prefs.FindTarget, c.Options()
	})
	c.highlighter.Update()
	return c
}

func (c *Controller) Target() string      { return c.prefs.FindTarget }
func (c *Controller) Replacement() string { return c.prefs.ReplaceTarget }

func (c *Controller) Options() Options {
	return Options{MatchCase: c.prefs.MatchCase, WholeWord: c.prefs.MatchWholeWord}
}

// CanFind reports whether Find Next / Find Previous should be enabled.
func (c *Controller) CanFind() bool { return c.prefs.FindTarget != "" }

// CanReplace reports whether Replace / Replace All should be enabled.
func (c *Controller) CanReplace() bool { return c.prefs.FindTarget != "" }

func (c *Controller) SetTarget(target string) {
	if target == c.prefs.FindTarget {
		return
	}
	c.prefs.FindTarget = target
	c.Refresh()
}

func (c *Controller) SetReplacement(replacement string) {
	c.prefs.ReplaceTarget = replacement
}

func (c *Controller) SetMatchCase(on bool) {
	if on == c.prefs.MatchCase {
		return
	}
	c.prefs.MatchCase = on
	c.Refresh()
}

func (c *Controller) SetWholeWord(on bool) {
	if on == c.prefs.MatchWholeWord {
		return
	}
	c.prefs.MatchWholeWord = on
	c.Refresh()
}

// Spans returns the currently highlighted matches.
func (c *Controller) Spans() []editor.Range {
	return c.highlighter.Spans()
}

// FindNext selects the first match after the selection, wrapping to the top.
func (c *Controller) FindNext() (editor.Range, error) {
	text := c.buf.Text()
	target, opts := c.prefs.FindTarget, c.Options()
	r, ok := Find(text, target, c.buf.Selection().End, opts)
	if !ok {
		r, ok = Find(text, target, 0, opts)
	}
	if !ok {
		return editor.Range{}, ErrNotFound
	}
	c.selectMatch(r)
	return r, nil
}

// FindPrev selects the last match before the selection, wrapping to the bottom.
func (c *Controller) FindPrev() (editor.Range, error) {
	text := c.buf.Text()
	target, opts := c.prefs.FindTarget, c.Options()
	r, ok := FindBackward(text, target, c.buf.Selection().Start, opts)
	if !ok {
		r, ok = FindBackward(text, target, len(text), opts)
	}
	if !ok {
		return editor.Range{}, ErrNotFound
	}
	c.selectMatch(r)
	return r, nil
}

// Replace substitutes the selection only when it is itself a match, then
// moves on to the next match. Any other selection is left alone and the call
// acts as FindNext.
func (c *Controller) Replace() (bool, error) {
	sel := c.buf.Selection()
	replaced := false
	if Matches(c.buf.Text(), c.prefs.FindTarget, sel, c.Options()) {
		c.buf.ReplaceRange(sel, c.prefs.ReplaceTarget)
		replaced = true
	}
	_, err := c.FindNext()
	return replaced, err
}

// ReplaceAll substitutes every non-overlapping match in one edit and returns
// how many were replaced.
func (c *Controller) ReplaceAll() int {
	matches := FindAll(c.buf.Text(), c.prefs.FindTarget, c.Options())
	if len(matches) == 0 {
		return 0
	}
	return c.buf.ReplaceRanges(matches, c.prefs.ReplaceTarget)
}

// Close removes all highlighting from the buffer.
func (c *Controller) Close() {
	c.highlighter.Detach()
}

// Refresh recomputes the highlighting, e.g. after another window changed the
// shared target.
func (c *Controller) Refresh() {
	c.highlighter.Update()
}

func (c *Controller) selectMatch(r editor.Range) {
	c.buf.SetSelection(r)
	c.buf.Reveal(r)
}
