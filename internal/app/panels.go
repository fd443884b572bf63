package app

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"plainpad/internal/i18n"
	"plainpad/internal/search"
	"plainpad/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// input is one frame of keyboard state.
type input struct {
	ctrl  bool
	shift bool
	alt   bool
	typed []rune
}

func readInput() input {
	in := input{
		ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		shift: ebiten.IsKeyPressed(ebiten.KeyShift),
		alt:   ebiten.IsKeyPressed(ebiten.KeyAlt),
	}
	if !in.ctrl && !in.alt {
		for _, r := range ebiten.AppendInputChars(nil) {
			if r < 0x20 || !utf8.ValidRune(r) {
				continue
			}
			in.typed = append(in.typed, r)
		}
	}
	return in
}

func pressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// field is a single-line input in a window panel. label is a message key.
// A fresh field is replaced by the first edit.
type field struct {
	label   string
	value   string
	missing bool
	digits  bool
	fresh   bool
}

func (f *field) insert(rs []rune) bool {
	changed := false
	for _, r := range rs {
		if f.digits && !unicode.IsDigit(r) {
			continue
		}
		if f.fresh {
			f.value = ""
			f.fresh = false
		}
		f.value += string(r)
		changed = true
	}
	return changed
}

func (f *field) backspace() bool {
	if f.value == "" {
		return false
	}
	if f.fresh {
		f.value = ""
		f.fresh = false
		return true
	}
	_, size := utf8.DecodeLastRuneInString(f.value)
	f.value = f.value[:len(f.value)-size]
	return true
}

// panel is the strip of inputs shown between a window's title bar and its text.
type panel struct {
	window *session.Window
	fields []*field
	active int
}

func (p *panel) shell() *panel { return p }
func (p *panel) rows() int     { return len(p.fields) }

func (p *panel) focused() *field { return p.fields[p.active] }

func (p *panel) cycle(delta int) {
	n := len(p.fields)
	p.active = ((p.active+delta)%n + n) % n
}

// edit applies typed text and backspace to the focused field.
func (p *panel) edit(in input) bool {
	f := p.focused()
	changed := f.insert(in.typed)
	if pressed(ebiten.KeyBackspace) && f.backspace() {
		changed = true
	}
	return changed
}

// overlay is a panel attached to one window.
type overlay interface {
	shell() *panel
	// update consumes the frame's keyboard input. It returns false once the
	// panel should be dismissed.
	update(a *App, in input) bool
	// hint is extra text drawn on the first row.
	hint(tr *i18n.Translator) string
	close()
}

type findPanel struct {
	panel
	finder  *search.Controller
	replace bool
}

func newFindPanel(w *session.Window, replace bool) *findPanel {
	finder := w.Search()
	p := &findPanel{panel: panel{window: w}, finder: finder, replace: replace}
	target := &field{label: i18n.Find, value: finder.Target(), fresh: true}
	p.fields = append(p.fields, target)
	if replace {
		p.fields = append(p.fields, &field{label: i18n.ReplaceWith, value: finder.Replacement()})
	}
	if sel := w.Buffer().SelectedText(); sel != "" && !strings.Contains(sel, "\n") {
		target.value = sel
		p.finder.SetTarget(sel)
		p.changed()
	}
	return p
}

func (p *findPanel) update(a *App, in input) bool {
	switch {
	case pressed(ebiten.KeyEscape):
		return false
	case !in.ctrl && pressed(ebiten.KeyTab):
		p.cycle(1)
	case in.alt && pressed(ebiten.KeyC):
		p.finder.SetMatchCase(!p.finder.Options().MatchCase)
		p.changed()
	case in.alt && pressed(ebiten.KeyW):
		p.finder.SetWholeWord(!p.finder.Options().WholeWord)
		p.changed()
	case in.alt && p.replace && pressed(ebiten.KeyR):
		p.replaceOne(a)
	case in.alt && p.replace && pressed(ebiten.KeyA):
		if p.finder.CanReplace() {
			n := p.finder.ReplaceAll()
			a.status = a.tr().T(i18n.Replaced, n)
		}
	case pressed(ebiten.KeyEnter, ebiten.KeyKPEnter):
		if p.replace && p.active == 1 {
			p.replaceOne(a)
		} else {
			p.find(a, in.shift)
		}
	case pressed(ebiten.KeyF3):
		p.find(a, in.shift)
	}
	if p.edit(in) {
		f := p.focused()
		if p.active == 0 {
			f.missing = false
			p.finder.SetTarget(f.value)
			p.changed()
		} else {
			p.finder.SetReplacement(f.value)
		}
	}
	return true
}

func (p *findPanel) hint(tr *i18n.Translator) string {
	opts := p.finder.Options()
	state := func(on bool) string {
		if on {
			return tr.T(i18n.On)
		}
		return tr.T(i18n.Off)
	}
	return tr.T(i18n.MatchCase) + " (Alt+C): " + state(opts.MatchCase) + "   " +
		tr.T(i18n.WholeWord) + " (Alt+W): " + state(opts.WholeWord)
}

func (p *findPanel) close() {
	p.window.CloseSearch()
}

// changed lets the other windows' highlighters follow the shared target.
func (p *findPanel) changed() {
	p.window.Session().SearchChanged()
}

func (p *findPanel) find(a *App, backward bool) {
	if !p.finder.CanFind() {
		return
	}
	var err error
	if backward {
		_, err = p.finder.FindPrev()
	} else {
		_, err = p.finder.FindNext()
	}
	p.report(a, err)
}

func (p *findPanel) replaceOne(a *App) {
	if !p.finder.CanReplace() {
		return
	}
	replaced, err := p.finder.Replace()
	if replaced {
		err = nil
	}
	p.report(a, err)
}

func (p *findPanel) report(a *App, err error) {
	missing := errors.Is(err, search.ErrNotFound)
	p.fields[0].missing = missing
	if missing {
		a.status = a.tr().T(i18n.NotFound, p.finder.Target())
	}
}

type gotoPanel struct {
	panel
}

func newGotoPanel(w *session.Window) *gotoPanel {
	line, _ := w.Buffer().CaretLineColumn()
	return &gotoPanel{panel: panel{
		window: w,
		fields: []*field{{label: i18n.GoToLine, value: strconv.Itoa(line), digits: true, fresh: true}},
	}}
}

func (p *gotoPanel) update(a *App, in input) bool {
	switch {
	case pressed(ebiten.KeyEscape):
		return false
	case pressed(ebiten.KeyEnter, ebiten.KeyKPEnter):
		f := p.focused()
		n, err := strconv.Atoi(f.value)
		if err != nil {
			f.missing = true
			return true
		}
		p.window.Buffer().GoToLine(n)
		return false
	}
	if p.edit(in) {
		p.focused().missing = false
	}
	return true
}

func (p *gotoPanel) hint(tr *i18n.Translator) string {
	return "1-" + strconv.Itoa(p.window.Buffer().LineCount())
}

func (p *gotoPanel) close() {}
