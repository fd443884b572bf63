package app

import (
	"image"
	"image/color"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"plainpad/internal/fonts"
	"plainpad/internal/i18n"
	"plainpad/internal/render"
	"plainpad/internal/session"
	"plainpad/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

const (
	scrollbarPx = 6
	caretBlink  = 30
)

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.theme.Desktop)
	focused := a.session.Focused()
	for _, w := range a.session.Windows() {
		a.drawWindow(screen, w, w == focused)
	}
	if a.showRecent {
		a.drawRecent(screen)
	}
	if a.showAbout {
		a.drawAbout(screen)
	}
}

// drawWindow paints w into its own layer and composites the layer at the
// window position. Windows are drawn back to front.
func (a *App) drawWindow(screen *ebiten.Image, w *session.Window, active bool) {
	v := a.views[w]
	if v == nil {
		v = a.layoutView(w)
	}
	l := v.layout
	v.ensureLayer(l.Frame.W, l.Frame.H)

	ui.DrawWindowChrome(v.fb, l, a.theme, active)
	a.paintDocument(v.fb, w, v, active)
	a.paintScrollbars(v.fb, v)
	a.paintPanelFields(v.fb, w, v)
	v.layer.WritePixels(v.fb.Pixels)

	a.drawTitle(v.layer, w, v)
	a.drawDocumentText(v.layer, v)
	a.drawGutter(v.layer, v)
	a.drawPanelLabels(v.layer, w, v)
	a.drawStatus(v.layer, w, v, active)

	op := &ebiten.DrawImageOptions{}
	p := w.Position()
	op.GeoM.Translate(float64(p.X), float64(p.Y))
	screen.DrawImage(v.layer, op)
}

func rectOf(r ui.Rect) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// visibleLines returns the half-open index range of painted rows in view.
func (v *docView) visibleLines() (int, int) {
	first := max(0, (v.scrollY-v.pad)/v.lineH)
	last := min(len(v.lines), first+v.pageLines()+2)
	return first, last
}

func (v *docView) rowY(i int) int {
	return v.layout.Content.Y + v.pad + i*v.lineH - v.scrollY
}

func (v *docView) originX() int {
	return v.layout.Content.X + v.pad - v.scrollX
}

// paintDocument fills the current line, selection, match highlights and caret.
func (a *App) paintDocument(fb *render.FrameBuffer, w *session.Window, v *docView, active bool) {
	c := v.layout.Content
	if c.Empty() || len(v.lines) == 0 {
		return
	}
	fb.SetClip(rectOf(c))
	defer fb.ResetClip()

	buf := w.Buffer()
	sel := buf.Selection()
	caret := buf.Caret()
	spans := buf.Highlights()
	caretLine := v.lineFor(caret)
	ox := v.originX()

	first, last := v.visibleLines()
	for i := first; i < last; i++ {
		ln := v.lines[i]
		y := v.rowY(i)
		if active && !buf.HasSelection() && i == caretLine {
			fb.FillRect(c.X, y, c.W, v.lineH, a.theme.CurrentLine)
		}
		if x0, x1, ok := v.spanOn(ln, sel); ok {
			fb.FillRect(ox+x0, y, x1-x0, v.lineH, a.theme.Selection)
		}
		j := sort.Search(len(spans), func(k int) bool { return spans[k].End > ln.start })
		for ; j < len(spans) && spans[j].Start < ln.end; j++ {
			if x0, x1, ok := v.spanOn(ln, spans[j]); ok {
				fb.BlendRect(ox+x0, y, x1-x0, v.lineH, a.theme.Match)
			}
		}
	}
	if active && (a.frameTick/caretBlink)%2 == 0 {
		x, y := v.caretPoint(caret)
		fb.FillRect(ox+x, c.Y+v.pad+y-v.scrollY, max(1, chromeScale*2), v.lineH, a.theme.Caret)
	}
}

func (a *App) paintScrollbars(fb *render.FrameBuffer, v *docView) {
	c := v.layout.Content
	if v.maxScrollY > 0 && c.H > 0 {
		x := c.X + c.W - scrollbarPx
		fb.FillRect(x, c.Y, scrollbarPx, c.H, a.theme.Scrollbar)
		thumb := max(16, c.H*c.H/(c.H+v.maxScrollY))
		y := c.Y + (c.H-thumb)*v.scrollY/v.maxScrollY
		fb.FillRect(x+1, y, scrollbarPx-2, thumb, a.theme.ScrollThumb)
	}
	if v.maxScrollX > 0 && c.W > 0 {
		y := c.Y + c.H - scrollbarPx
		fb.FillRect(c.X, y, c.W, scrollbarPx, a.theme.Scrollbar)
		thumb := max(16, c.W*c.W/(c.W+v.maxScrollX))
		x := c.X + (c.W-thumb)*v.scrollX/v.maxScrollX
		fb.FillRect(x, y+1, thumb, scrollbarPx-2, a.theme.ScrollThumb)
	}
}

// fieldRect is where the input box of panel row i goes.
func (a *App) fieldRect(v *docView, i, rows int) ui.Rect {
	p := v.layout.Panel
	rowH := p.H / max(1, rows)
	labelW := 120 * chromeScale
	return ui.Rect{X: p.X + labelW, Y: p.Y + i*rowH + 5, W: max(0, p.W/2-labelW), H: rowH - 10}
}

func (a *App) paintPanelFields(fb *render.FrameBuffer, w *session.Window, v *docView) {
	o := a.panels[w]
	if o == nil {
		return
	}
	sh := o.shell()
	for i, f := range sh.fields {
		r := a.fieldRect(v, i, sh.rows())
		bg := a.theme.Field
		if f.missing {
			bg = a.theme.FieldMissing
		}
		fb.FillRect(r.X, r.Y, r.W, r.H, bg)
		border := a.theme.Border
		if i == sh.active {
			border = a.theme.Accent
		}
		fb.StrokeRect(r.X, r.Y, r.W, r.H, 1, border)
	}
}

func baseline(r ui.Rect, face font.Face) int {
	m := face.Metrics()
	return r.Y + (r.H+m.Ascent.Round()-m.Descent.Round())/2
}

func (a *App) drawTitle(dst *ebiten.Image, w *session.Window, v *docView) {
	l := v.layout
	face := a.fonts.UI(uiFontPt+1, true)
	title := dst.SubImage(rectOf(ui.Rect{X: l.Title.X, Y: l.Title.Y, W: l.CloseBox.X - l.Title.X - 4, H: l.Title.H})).(*ebiten.Image)
	text.Draw(title, w.Title(), face, l.Title.X+8, baseline(l.Title, face), a.theme.TitleText)
	cross := "×"
	cx := l.CloseBox.X + (l.CloseBox.W-fonts.Measure(face, cross))/2
	text.Draw(dst, cross, face, cx, baseline(l.CloseBox, face), a.theme.TitleText)
}

func (a *App) drawDocumentText(dst *ebiten.Image, v *docView) {
	c := v.layout.Content
	if c.Empty() || v.face == nil {
		return
	}
	area := dst.SubImage(rectOf(c)).(*ebiten.Image)
	ascent := v.face.Metrics().Ascent.Round()
	first, last := v.visibleLines()
	for i := first; i < last; i++ {
		ln := v.lines[i]
		drawRun(area, v.lineText(ln), v.face, v.originX(), v.rowY(i)+ascent, a.theme.Text)
	}
}

// drawRun draws s with tabs expanded to fixed-width blanks.
func drawRun(dst *ebiten.Image, s string, face font.Face, x, y int, clr color.Color) {
	for {
		i := strings.IndexByte(s, '\t')
		if i < 0 {
			text.Draw(dst, s, face, x, y, clr)
			return
		}
		text.Draw(dst, s[:i], face, x, y, clr)
		x += textWidth(face, s[:i]) + runeAdvance(face, '\t')
		s = s[i+1:]
	}
}

func (a *App) drawGutter(dst *ebiten.Image, v *docView) {
	g := v.layout.Gutter
	if g.Empty() || v.face == nil {
		return
	}
	area := dst.SubImage(rectOf(g)).(*ebiten.Image)
	ascent := v.face.Metrics().Ascent.Round()
	pad := a.theme.GutterPadDp * chromeScale
	first, last := v.visibleLines()
	for i := first; i < last; i++ {
		ln := v.lines[i]
		if ln.number == 0 {
			continue
		}
		label := strconv.Itoa(ln.number)
		x := g.X + g.W - pad - fonts.Measure(v.face, label)
		text.Draw(area, label, v.face, x, v.rowY(i)+ascent, a.theme.GutterText)
	}
}

func (a *App) drawPanelLabels(dst *ebiten.Image, w *session.Window, v *docView) {
	o := a.panels[w]
	if o == nil {
		return
	}
	tr := a.tr()
	face := a.fonts.UI(uiFontPt, false)
	sh := o.shell()
	for i, f := range sh.fields {
		r := a.fieldRect(v, i, sh.rows())
		text.Draw(dst, tr.T(f.label), face, v.layout.Panel.X+8, baseline(r, face), a.theme.FieldText)
		box := dst.SubImage(rectOf(r)).(*ebiten.Image)
		value := f.value
		if i == sh.active && (a.frameTick/caretBlink)%2 == 0 {
			value += "|"
		}
		tx := r.X + 4
		if over := fonts.Measure(face, value) - (r.W - 8); over > 0 {
			tx -= over
		}
		text.Draw(box, value, face, tx, baseline(r, face), a.theme.FieldText)
	}
	first := a.fieldRect(v, 0, sh.rows())
	text.Draw(dst, o.hint(tr), face, first.X+first.W+12, baseline(first, face), a.theme.FieldText)
}

func (a *App) drawStatus(dst *ebiten.Image, w *session.Window, v *docView, active bool) {
	s := v.layout.Status
	if s.Empty() {
		return
	}
	tr := a.tr()
	face := a.fonts.UI(uiFontPt, false)
	line, col := w.Buffer().CaretLineColumn()
	left := tr.T(i18n.Position, line, col)
	text.Draw(dst, left, face, s.X+8, baseline(s, face), a.theme.StatusText)

	right := tr.T(i18n.Zoom, w.View().Zoom)
	rx := s.X + s.W - 10 - fonts.Measure(face, right)
	text.Draw(dst, right, face, rx, baseline(s, face), a.theme.StatusText)

	if active && a.status != "" {
		mx := s.X + 8 + fonts.Measure(face, left) + 24
		msg := dst.SubImage(rectOf(ui.Rect{X: mx, Y: s.Y, W: max(0, rx-mx-16), H: s.H})).(*ebiten.Image)
		text.Draw(msg, a.status, face, mx, baseline(s, face), a.theme.StatusText)
	}
}

// dialogRect centres a box of the given size on the screen.
func (a *App) dialogRect(w, h int) ui.Rect {
	w = min(w, a.screenW-40)
	h = min(h, a.screenH-40)
	return ui.Rect{X: (a.screenW - w) / 2, Y: (a.screenH - h) / 2, W: w, H: h}
}

func (a *App) drawDialogFrame(screen *ebiten.Image, r ui.Rect) {
	if r.Empty() {
		return
	}
	screen.SubImage(rectOf(r)).(*ebiten.Image).Fill(a.theme.Panel)
	x0, y0 := float64(r.X), float64(r.Y)
	x1, y1 := float64(r.X+r.W), float64(r.Y+r.H)
	ebitenutil.DrawLine(screen, x0, y0, x1, y0, a.theme.Accent)
	ebitenutil.DrawLine(screen, x0, y1, x1, y1, a.theme.Accent)
	ebitenutil.DrawLine(screen, x0, y0, x0, y1, a.theme.Accent)
	ebitenutil.DrawLine(screen, x1, y0, x1, y1, a.theme.Accent)
}

var shortcutLines = []string{
	"Ctrl+N / Ctrl+O / Ctrl+S / Ctrl+Shift+S / Ctrl+W / Ctrl+Q",
	"Ctrl+F find, Ctrl+H replace, F3 / Shift+F3 next / previous, Ctrl+G go to line",
	"Ctrl+= / Ctrl+- / Ctrl+0 zoom, Alt+Z word wrap",
	"Ctrl+Shift+L line numbers, Ctrl+Shift+B status bar, Ctrl+Shift+F font",
	"Ctrl+R recent files, Ctrl+Shift+R clear recent, Ctrl+Shift+I language",
	"Ctrl+Tab next window, drag a title bar to move a window",
}

func (a *App) drawAbout(screen *ebiten.Image) {
	tr := a.tr()
	r := a.dialogRect(640, 260)
	a.drawDialogFrame(screen, r)
	titleFace := a.fonts.UI(uiFontPt+3, true)
	face := a.fonts.UI(uiFontPt, false)
	text.Draw(screen, tr.T(i18n.About, Name, Version), titleFace, r.X+20, r.Y+34, a.theme.FieldText)
	y := r.Y + 66
	for _, l := range shortcutLines {
		text.Draw(screen, l, face, r.X+20, y, a.theme.FieldText)
		y += fonts.LineHeight(face) + 6
	}
}

func (a *App) drawRecent(screen *ebiten.Image) {
	tr := a.tr()
	recent := a.session.Preferences().RecentPaths
	face := a.fonts.UI(uiFontPt, false)
	titleFace := a.fonts.UI(uiFontPt+2, true)
	lineH := fonts.LineHeight(face) + 6
	r := a.dialogRect(560, 70+max(1, len(recent))*lineH)
	a.drawDialogFrame(screen, r)
	text.Draw(screen, tr.T(i18n.Recent), titleFace, r.X+20, r.Y+30, a.theme.FieldText)
	y := r.Y + 60
	if len(recent) == 0 {
		text.Draw(screen, tr.T(i18n.NoRecent), face, r.X+20, y, a.theme.FieldText)
		return
	}
	for i, p := range recent {
		label := strconv.Itoa(i+1) + "  " + filepath.Base(p) + "  (" + filepath.Dir(p) + ")"
		if i >= 9 {
			label = "    " + filepath.Base(p) + "  (" + filepath.Dir(p) + ")"
		}
		text.Draw(screen, label, face, r.X+20, y, a.theme.FieldText)
		y += lineH
	}
}
