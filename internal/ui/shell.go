package ui

import (
	"strconv"

	"plainpad/internal/render"
)

type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Offset returns r moved by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// WindowLayout places the parts of one document window in window-local pixels.
type WindowLayout struct {
	Frame    Rect
	Title    Rect
	CloseBox Rect
	Panel    Rect
	Gutter   Rect
	Content  Rect
	Status   Rect
}

type LayoutOptions struct {
	LineNumbers bool
	StatusBar   bool
	PanelRows   int
	LineCount   int
	DigitWidth  int
}

// GutterDigits is how many digits the line-number gutter reserves.
func GutterDigits(lines int) int {
	return max(2, len(strconv.Itoa(max(lines, 1))))
}

func ComputeWindowLayout(w, h int, opts LayoutOptions, theme Theme, scale float32) WindowLayout {
	if scale <= 0 {
		scale = 1
	}
	dp := func(v int) int { return int(float32(v) * scale) }

	l := WindowLayout{Frame: Rect{W: w, H: h}}
	titleH := dp(theme.TitleHeightDp)
	l.Title = Rect{X: 1, Y: 1, W: w - 2, H: titleH}
	box := titleH - dp(8)
	l.CloseBox = Rect{X: w - box - dp(6), Y: 1 + (titleH-box)/2, W: box, H: box}

	y := 1 + titleH
	if opts.PanelRows > 0 {
		ph := dp(theme.PanelHeightDp) * opts.PanelRows
		l.Panel = Rect{X: 1, Y: y, W: w - 2, H: ph}
		y += ph
	}
	bottom := h - 1
	if opts.StatusBar {
		sh := dp(theme.StatusHeightDp)
		l.Status = Rect{X: 1, Y: bottom - sh, W: w - 2, H: sh}
		bottom -= sh
	}
	x := 1
	if opts.LineNumbers {
		digitW := opts.DigitWidth
		if digitW <= 0 {
			digitW = dp(8)
		}
		gw := GutterDigits(opts.LineCount)*digitW + dp(theme.GutterPadDp)*2
		l.Gutter = Rect{X: x, Y: y, W: gw, H: max(0, bottom-y)}
		x += gw
	}
	l.Content = Rect{X: x, Y: y, W: max(0, w-1-x), H: max(0, bottom-y)}
	return l
}

// DrawWindowChrome paints everything except text: frame, title bar, panel,
// gutter, page and status backgrounds.
func DrawWindowChrome(fb *render.FrameBuffer, l WindowLayout, theme Theme, active bool) {
	fb.ResetClip()
	fb.FillRect(l.Frame.X, l.Frame.Y, l.Frame.W, l.Frame.H, theme.Page)
	title := theme.TitleBarIdle
	if active {
		title = theme.TitleBar
	}
	fb.FillRect(l.Title.X, l.Title.Y, l.Title.W, l.Title.H, title)
	fb.BlendRect(l.CloseBox.X, l.CloseBox.Y, l.CloseBox.W, l.CloseBox.H, theme.Shadow)

	if !l.Panel.Empty() {
		fb.FillRect(l.Panel.X, l.Panel.Y, l.Panel.W, l.Panel.H, theme.Panel)
		fb.FillRect(l.Panel.X, l.Panel.Y+l.Panel.H-1, l.Panel.W, 1, theme.Border)
	}
	if !l.Gutter.Empty() {
		fb.FillRect(l.Gutter.X, l.Gutter.Y, l.Gutter.W, l.Gutter.H, theme.Gutter)
		fb.FillRect(l.Gutter.X+l.Gutter.W-1, l.Gutter.Y, 1, l.Gutter.H, theme.Border)
	}
	if !l.Status.Empty() {
		fb.FillRect(l.Status.X, l.Status.Y, l.Status.W, l.Status.H, theme.StatusBar)
		fb.FillRect(l.Status.X, l.Status.Y, l.Status.W, 1, theme.Border)
	}
	border := theme.Frame
	if active {
		border = theme.Accent
	}
	fb.StrokeRect(l.Frame.X, l.Frame.Y, l.Frame.W, l.Frame.H, 1, border)
}
