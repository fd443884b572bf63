package search

import (
	"unicode"
	"unicode/utf8"

	"plainpad/internal/editor"
)

// Options controls how a target matches buffer text.
type Options struct {
	MatchCase bool
	WholeWord bool
}

// Find returns the first match of target starting at or after from.
func Find(text, target string, from int, opts Options) (editor.Range, bool) {
	if target == "" {
		return editor.Range{}, false
	}
	from = clamp(from, 0, len(text))
	for pos := from; pos <= len(text); pos++ {
		if pos < len(text) && !utf8.RuneStart(text[pos]) {
			continue
		}
		if end, ok := matchAt(text, pos, target, opts); ok {
			return editor.Range{Start: pos, End: end}, true
		}
	}
	return editor.Range{}, false
}

// FindBackward returns the last match of target that ends at or before before.
func FindBackward(text, target string, before int, opts Options) (editor.Range, bool) {
	if target == "" {
		return editor.Range{}, false
	}
	before = clamp(before, 0, len(text))
	for pos := before; pos >= 0; pos-- {
		if pos < len(text) && !utf8.RuneStart(text[pos]) {
			continue
		}
		if end, ok := matchAt(text, pos, target, opts); ok && end <= before {
			return editor.Range{Start: pos, End: end}, true
		}
	}
	return editor.Range{}, false
}

// FindAll returns every non-overlapping match, scanning left to right.
func FindAll(text, target string, opts Options) []editor.Range {
	var out []editor.Range
	pos := 0
	for {
		r, ok := Find(text, target, pos, opts)
		if !ok {
			return out
		}
		out = append(out, r)
		pos = r.End
		if r.Empty() {
			pos++
		}
	}
}

// Matches reports whether text[r] is exactly one occurrence of target.
func Matches(text, target string, r editor.Range, opts Options) bool {
	if target == "" || r.Start < 0 || r.End > len(text) || r.Empty() {
		return false
	}
	end, ok := matchAt(text, r.Start, target, opts)
	return ok && end == r.End
}

// matchAt compares target against text at pos rune by rune and returns the
// byte offset where the match ends.
func matchAt(text string, pos int, target string, opts Options) (int, bool) {
	i := pos
	for _, want := range target {
		if i >= len(text) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(text[i:])
		if !runesEqual(got, want, opts.MatchCase) {
			return 0, false
		}
		i += size
	}
	if opts.WholeWord && !atWordBoundary(text, pos, i) {
		return 0, false
	}
	return i, true
}

func runesEqual(a, b rune, matchCase bool) bool {
	if a == b {
		return true
	}
	if matchCase {
		return false
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

func atWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if editor.IsWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if editor.IsWordRune(r) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
