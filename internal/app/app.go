package app

import (
	"fmt"
	"image"
	"log"
	"time"

	"plainpad/internal/editor"
	"plainpad/internal/fonts"
	"plainpad/internal/i18n"
	"plainpad/internal/instance"
	"plainpad/internal/platform"
	"plainpad/internal/prefs"
	"plainpad/internal/session"
	"plainpad/internal/ui"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	Name    = session.AppName
	Version = "1.0.0"

	chromeScale     = 1
	refreshInterval = time.Second
	uiFontPt        = 9
	wheelLines      = 3
)

// Config wires an App to its session. Commands carries requests forwarded
// by later launches and may be nil.
type Config struct {
	Session    *session.Session
	Appearance platform.Appearance
	Commands   <-chan instance.Command
}

// App is the ebiten game hosting every document window of a session on one
// canvas. All state is touched from Update and Draw only.
type App struct {
	session  *session.Session
	look     platform.Appearance
	commands <-chan instance.Command

	theme       ui.Theme
	scheme      platform.ColorScheme
	fonts       *fonts.Bank
	font        prefs.Font
	views       map[*session.Window]*docView
	panels      map[*session.Window]overlay
	unsubscribe func()

	status      string
	fontErr     string
	frameTick   uint64
	lastRefresh time.Time
	showAbout   bool
	showRecent  bool

	drag          *session.Window
	dragOffset    image.Point
	dragSelecting bool

	screenW int
	screenH int
}

func New(cfg Config) *App {
	a := &App{
		session:  cfg.Session,
		look:     cfg.Appearance,
		commands: cfg.Commands,
		fonts:    fonts.NewBank(),
		views:    map[*session.Window]*docView{},
		panels:   map[*session.Window]overlay{},
	}
	a.applyScheme()
	a.font = a.session.Preferences().Font
	a.unsubscribe = a.session.Subscribe(a.sessionChanged)
	return a
}

func (a *App) Run(cfg platform.WindowConfig) error {
	defer a.unsubscribe()
	title := cfg.Title
	if title == "" {
		title = Name
	}
	ebiten.SetWindowTitle(title)
	if cfg.WidthPx > 0 && cfg.HeightPx > 0 {
		ebiten.SetWindowSize(cfg.WidthPx, cfg.HeightPx)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(cfg.MinWidthPx, cfg.MinHeightPx, -1, -1)
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

func (a *App) tr() *i18n.Translator { return a.session.Translator() }

func (a *App) sessionChanged(c session.Change) {
	switch c {
	case session.ChangeFont:
		// Refreshes re-announce an unchanged font every second.
		if f := a.session.Preferences().Font; f != a.font {
			a.font = f
			a.fonts.Forget()
			a.fontErr = ""
		}
	case session.ChangeLanguage:
		a.status = a.tr().T(i18n.LanguageSet, i18n.Name(a.tr().Tag()))
	case session.ChangeRecent:
		if len(a.session.Preferences().RecentPaths) == 0 {
			a.showRecent = false
		}
	}
}

func (a *App) applyScheme() {
	if a.look != nil {
		a.scheme = a.look.ColorScheme()
	}
	a.theme = ui.ThemeFor(a.scheme)
}

// refresh follows the desktop colour scheme and re-reads the editor font.
func (a *App) refresh() {
	if a.look != nil && a.look.ColorScheme() != a.scheme {
		a.applyScheme()
	}
	a.session.RefreshFont()
}

func (a *App) Update() error {
	a.frameTick++
	a.drainCommands()
	if time.Since(a.lastRefresh) >= refreshInterval {
		a.lastRefresh = time.Now()
		a.refresh()
	}
	if ebiten.IsWindowBeingClosed() {
		return a.quit()
	}
	if msg, ok := a.session.TakeNotice(); ok {
		a.status = msg
	}
	if len(a.session.Windows()) == 0 {
		return ebiten.Termination
	}
	a.layoutViews()

	in := readInput()
	if a.showAbout {
		if pressed(ebiten.KeyEscape, ebiten.KeyF1, ebiten.KeyEnter) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			a.showAbout = false
		}
		return nil
	}
	if a.showRecent {
		a.updateRecent(in)
		a.prune()
		return nil
	}

	a.handleMouse(in)
	if err := a.handleShortcuts(in); err != nil {
		return err
	}
	a.handleEditing(in)
	a.prune()
	a.layoutViews()
	a.followReveal()
	return nil
}

// drainCommands executes everything queued by the instance server without
// blocking the frame.
func (a *App) drainCommands() {
	if a.commands == nil {
		return
	}
	for {
		select {
		case cmd, ok := <-a.commands:
			if !ok {
				a.commands = nil
				return
			}
			if err := a.session.Dispatch(cmd); err != nil {
				log.Printf("plainpad: %s: %v", cmd, err)
				a.session.Report(err)
			}
		default:
			return
		}
	}
}

// quit asks every window to close and stops once none is left.
func (a *App) quit() error {
	if a.session.CloseAll() {
		return ebiten.Termination
	}
	a.prune()
	return nil
}

// prune forgets views and panels of windows that have closed.
func (a *App) prune() {
	for w, v := range a.views {
		if w.Closed() {
			v.release()
			delete(a.views, w)
		}
	}
	for w := range a.panels {
		if w.Closed() {
			delete(a.panels, w)
		}
	}
	if a.drag != nil && a.drag.Closed() {
		a.drag = nil
	}
}

func (a *App) view(w *session.Window) *docView {
	v := a.views[w]
	if v == nil {
		v = &docView{}
		a.views[w] = v
	}
	return v
}

func (a *App) layoutViews() {
	for _, w := range a.session.Windows() {
		a.layoutView(w)
	}
}

func (a *App) layoutView(w *session.Window) *docView {
	v := a.view(w)
	vs := w.View()
	face, err := a.fonts.Editor(vs.Font, vs.FontSize)
	if err != nil && err.Error() != a.fontErr {
		a.fontErr = err.Error()
		a.status = a.tr().T(i18n.FontFailed, err)
		log.Printf("plainpad: %v", err)
	}
	rows := 0
	if p := a.panels[w]; p != nil {
		rows = p.shell().rows()
	}
	buf := w.Buffer()
	size := a.session.WindowSize()
	v.pad = a.theme.ContentPadDp * chromeScale
	v.layout = ui.ComputeWindowLayout(size.X, size.Y, ui.LayoutOptions{
		LineNumbers: vs.LineNumbers,
		StatusBar:   vs.StatusBar,
		PanelRows:   rows,
		LineCount:   buf.LineCount(),
		DigitWidth:  textWidth(face, "0"),
	}, a.theme, chromeScale)
	v.relayout(buf.Text(), face, fonts.LineHeight(face), vs.WordWrap)
	return v
}

// followReveal scrolls windows whose buffer asked for a range to be shown.
func (a *App) followReveal() {
	for _, w := range a.session.Windows() {
		if r, ok := w.Buffer().TakeReveal(); ok {
			a.view(w).reveal(r.Start)
		}
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	a.screenW = max(1, outsideWidth)
	a.screenH = max(1, outsideHeight)
	a.session.SetScreen(image.Rect(0, 0, a.screenW, a.screenH))
	return a.screenW, a.screenH
}

// windowAt returns the front-most window under x, y.
func (a *App) windowAt(x, y int) *session.Window {
	windows := a.session.Windows()
	for i := len(windows) - 1; i >= 0; i-- {
		w := windows[i]
		v := a.views[w]
		if v == nil {
			continue
		}
		p := w.Position()
		if v.layout.Frame.Contains(x-p.X, y-p.Y) {
			return w
		}
	}
	return nil
}

func (a *App) handleMouse(in input) {
	x, y := ebiten.CursorPosition()
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		if w := a.windowAt(x, y); w != nil {
			v := a.view(w)
			if in.shift {
				v.scrollX -= int(wheelY * float64(wheelLines*v.lineH))
			} else {
				v.scrollY -= int(wheelY * float64(wheelLines*v.lineH))
			}
			v.clampScroll()
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		w := a.windowAt(x, y)
		if w == nil {
			return
		}
		w.Raise()
		v := a.view(w)
		p := w.Position()
		lx, ly := x-p.X, y-p.Y
		switch {
		case v.layout.CloseBox.Contains(lx, ly):
			a.closeWindow(w)
		case v.layout.Title.Contains(lx, ly):
			a.drag = w
			a.dragOffset = image.Pt(lx, ly)
		case v.layout.Panel.Contains(lx, ly):
			if o := a.panels[w]; o != nil {
				sh := o.shell()
				row := (ly - v.layout.Panel.Y) / max(1, v.layout.Panel.H/sh.rows())
				sh.active = min(max(row, 0), sh.rows()-1)
			}
		case v.layout.Content.Contains(lx, ly):
			buf := w.Buffer()
			if in.shift {
				buf.EnsureSelectionAnchor()
			} else {
				buf.ClearSelection()
				buf.EnsureSelectionAnchor()
			}
			buf.SetCaret(v.hitTest(lx, ly))
			a.dragSelecting = true
		}
	}

	pressedLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if a.drag != nil && pressedLeft {
		a.drag.MoveTo(a.clampPosition(a.view(a.drag), image.Pt(x, y).Sub(a.dragOffset)))
	}
	if a.dragSelecting && pressedLeft {
		if w := a.session.Focused(); w != nil {
			v := a.view(w)
			p := w.Position()
			w.Buffer().SetCaret(v.hitTest(x-p.X, y-p.Y))
			v.reveal(w.Buffer().Caret())
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.drag = nil
		a.dragSelecting = false
	}
}

// clampPosition keeps part of the title bar reachable on screen.
func (a *App) clampPosition(v *docView, p image.Point) image.Point {
	keep := 48
	p.X = min(max(p.X, keep-v.layout.Frame.W), a.screenW-keep)
	p.Y = min(max(p.Y, 0), a.screenH-v.layout.Title.H)
	return p
}

func (a *App) closeWindow(w *session.Window) {
	if w.Close() {
		delete(a.panels, w)
	}
}

// showPanel replaces any panel on w with the one build returns.
func (a *App) showPanel(w *session.Window, build func() overlay) {
	a.closePanel(w)
	a.panels[w] = build()
}

func (a *App) closePanel(w *session.Window) {
	if o := a.panels[w]; o != nil {
		o.close()
		delete(a.panels, w)
	}
}

func (a *App) handleShortcuts(in input) error {
	w := a.session.Focused()
	if pressed(ebiten.KeyF1) {
		a.showAbout = true
		return nil
	}
	if w == nil {
		return nil
	}
	if pressed(ebiten.KeyF3) && a.panels[w] == nil {
		// the new panel sees F3 in this frame and searches
		a.showPanel(w, func() overlay { return newFindPanel(w, false) })
		return nil
	}
	if in.alt && !in.ctrl && pressed(ebiten.KeyZ) {
		on := !a.session.Preferences().WordWrap
		a.session.SetWordWrap(on)
		a.status = a.tr().T(i18n.WordWrap, a.onOff(on))
		return nil
	}
	if !in.ctrl {
		return nil
	}
	switch {
	case pressed(ebiten.KeyN):
		a.session.NewWindow()
	case pressed(ebiten.KeyO):
		_, err := a.session.OpenDialog()
		a.session.Report(err)
	case pressed(ebiten.KeyS):
		var err error
		if in.shift {
			err = w.SaveAs()
		} else {
			err = w.Save()
		}
		if err != nil {
			a.session.Report(err)
		} else if !w.Dirty() && !w.Untitled() {
			a.session.Notify(a.tr().T(i18n.Saved, w.DisplayName()))
		}
	case pressed(ebiten.KeyW, ebiten.KeyF4):
		a.closeWindow(w)
	case pressed(ebiten.KeyQ):
		return a.quit()
	case pressed(ebiten.KeyTab):
		if windows := a.session.Windows(); len(windows) > 1 {
			windows[0].Raise()
		}
	case pressed(ebiten.KeyF):
		if in.shift {
			a.selectFont()
		} else {
			a.showPanel(w, func() overlay { return newFindPanel(w, false) })
		}
	case pressed(ebiten.KeyH):
		a.showPanel(w, func() overlay { return newFindPanel(w, true) })
	case pressed(ebiten.KeyG):
		a.showPanel(w, func() overlay { return newGotoPanel(w) })
	case pressed(ebiten.KeyEqual, ebiten.KeyKPAdd):
		a.zoomed(a.session.ZoomIn())
	case pressed(ebiten.KeyMinus, ebiten.KeyKPSubtract):
		a.zoomed(a.session.ZoomOut())
	case pressed(ebiten.Key0, ebiten.KeyKP0):
		a.zoomed(a.session.ResetZoom())
	case in.shift && pressed(ebiten.KeyL):
		on := !a.session.Preferences().ShowLineNumbers
		a.session.ShowLineNumbers(on)
		a.status = a.tr().T(i18n.LineNumbers, a.onOff(on))
	case in.shift && pressed(ebiten.KeyB):
		on := !a.session.Preferences().ShowStatusBar
		a.session.ShowStatusBar(on)
		a.status = a.tr().T(i18n.StatusBar, a.onOff(on))
	case in.shift && pressed(ebiten.KeyR):
		a.session.ClearRecent()
		a.status = a.tr().T(i18n.RecentCleared)
	case pressed(ebiten.KeyR):
		a.showRecent = true
	case in.shift && pressed(ebiten.KeyI):
		a.cycleLanguage()
	}
	return nil
}

func (a *App) onOff(on bool) string {
	if on {
		return a.tr().T(i18n.On)
	}
	return a.tr().T(i18n.Off)
}

func (a *App) zoomed(changed bool) {
	if !changed {
		a.status = a.tr().T(i18n.ZoomRejected, prefs.MinZoom, prefs.MaxZoom)
		return
	}
	a.status = a.tr().T(i18n.Zoom, a.session.Preferences().Zoom)
}

func (a *App) selectFont() {
	if err := a.session.SelectFont(); err != nil {
		a.session.Report(err)
		return
	}
	f := a.session.Preferences().Font
	a.status = a.tr().T(i18n.FontStatus, f.Family, a.session.Preferences().EffectiveFontSize())
}

func (a *App) cycleLanguage() {
	current := a.tr().Tag()
	next := i18n.Supported[0]
	for i, tag := range i18n.Supported {
		if tag == current {
			next = i18n.Supported[(i+1)%len(i18n.Supported)]
			break
		}
	}
	a.session.SetLanguage(next.String())
}

// updateRecent runs the recent-files list: digits open an entry.
func (a *App) updateRecent(in input) {
	if pressed(ebiten.KeyEscape) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.showRecent = false
		return
	}
	recent := a.session.Preferences().RecentPaths
	for _, r := range in.typed {
		idx := int(r - '1')
		if r < '1' || r > '9' || idx >= len(recent) {
			continue
		}
		a.showRecent = false
		if _, err := a.session.Open(recent[idx]); err != nil {
			a.session.Report(err)
		}
		return
	}
}

// handleEditing applies keyboard input to the focused window, or to its
// panel when one is open.
func (a *App) handleEditing(in input) {
	w := a.session.Focused()
	if w == nil || w.Closed() {
		return
	}
	if o := a.panels[w]; o != nil {
		if !o.update(a, in) {
			a.closePanel(w)
		}
		return
	}
	buf := w.Buffer()
	v := a.view(w)
	moved := false

	moveWithSelection := func(move func()) {
		if in.shift {
			buf.EnsureSelectionAnchor()
		} else {
			buf.ClearSelection()
		}
		move()
		moved = true
	}

	if in.ctrl {
		switch {
		case pressed(ebiten.KeyZ):
			buf.Undo()
			moved = true
		case pressed(ebiten.KeyY):
			buf.Redo()
			moved = true
		case pressed(ebiten.KeyA):
			buf.SelectAll()
		case pressed(ebiten.KeyC), pressed(ebiten.KeyInsert):
			if buf.HasSelection() {
				a.clipboardErr(clipboard.WriteAll(buf.SelectedText()))
			}
		case pressed(ebiten.KeyX):
			if buf.HasSelection() {
				if err := clipboard.WriteAll(buf.SelectedText()); err != nil {
					a.clipboardErr(err)
				} else {
					buf.DeleteSelection()
					moved = true
				}
			}
		case pressed(ebiten.KeyV):
			paste, err := clipboard.ReadAll()
			if err != nil {
				a.clipboardErr(err)
			} else if paste != "" {
				buf.InsertText(paste)
				moved = true
			}
		case pressed(ebiten.KeyBackspace):
			buf.DeleteWordBackward()
			moved = true
		case pressed(ebiten.KeyDelete):
			buf.DeleteWordForward()
			moved = true
		}
	}

	if pressed(ebiten.KeyArrowLeft) {
		if in.ctrl {
			moveWithSelection(buf.MoveCaretWordLeft)
		} else {
			moveWithSelection(buf.MoveCaretLeft)
		}
	}
	if pressed(ebiten.KeyArrowRight) {
		if in.ctrl {
			moveWithSelection(buf.MoveCaretWordRight)
		} else {
			moveWithSelection(buf.MoveCaretRight)
		}
	}
	if pressed(ebiten.KeyArrowUp) {
		moveWithSelection(func() { a.moveVisual(v, buf, -1) })
	}
	if pressed(ebiten.KeyArrowDown) {
		moveWithSelection(func() { a.moveVisual(v, buf, 1) })
	}
	if pressed(ebiten.KeyPageUp) {
		moveWithSelection(func() { a.moveVisual(v, buf, -v.pageLines()) })
	}
	if pressed(ebiten.KeyPageDown) {
		moveWithSelection(func() { a.moveVisual(v, buf, v.pageLines()) })
	}
	if pressed(ebiten.KeyHome) {
		if in.ctrl {
			moveWithSelection(buf.MoveCaretToStart)
		} else {
			moveWithSelection(buf.MoveCaretToLineStart)
		}
	}
	if pressed(ebiten.KeyEnd) {
		if in.ctrl {
			moveWithSelection(buf.MoveCaretToEnd)
		} else {
			moveWithSelection(buf.MoveCaretToLineEnd)
		}
	}

	if !in.ctrl && !in.alt {
		if pressed(ebiten.KeyEnter, ebiten.KeyKPEnter) {
			buf.InsertText("\n")
			moved = true
		}
		if pressed(ebiten.KeyBackspace) {
			buf.Backspace()
			moved = true
		}
		if pressed(ebiten.KeyDelete) {
			buf.DeleteForward()
			moved = true
		}
		if pressed(ebiten.KeyTab) {
			buf.InsertText("\t")
			moved = true
		}
		if len(in.typed) > 0 {
			buf.InsertText(string(in.typed))
			moved = true
		}
	}

	if moved {
		v = a.layoutView(w)
		v.reveal(buf.Caret())
	}
}

// moveVisual moves the caret by delta painted rows, keeping its x position.
func (a *App) moveVisual(v *docView, buf *editor.Buffer, delta int) {
	if len(v.lines) == 0 {
		return
	}
	x, _ := v.caretPoint(buf.Caret())
	idx := min(max(v.lineFor(buf.Caret())+delta, 0), len(v.lines)-1)
	l := v.lines[idx]
	buf.SetCaret(l.start + byteAtX(v.face, v.lineText(l), x))
}

func (a *App) clipboardErr(err error) {
	if err != nil {
		a.status = a.tr().T(i18n.Clipboard, err)
	}
}
