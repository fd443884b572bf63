package ui

import (
	"testing"

	"plainpad/internal/platform"
	"plainpad/internal/render"
)

func TestLayoutHonoursViewOptions(t *testing.T) {
	theme := LightTheme()
	full := ComputeWindowLayout(600, 400, LayoutOptions{LineNumbers: true, StatusBar: true, LineCount: 5, DigitWidth: 8}, theme, 1)
	bare := ComputeWindowLayout(600, 400, LayoutOptions{}, theme, 1)

	if full.Gutter.Empty() || full.Status.Empty() {
		t.Fatalf("expected gutter and status bar: %+v", full)
	}
	if !bare.Gutter.Empty() || !bare.Status.Empty() {
		t.Fatalf("expected no gutter and no status bar: %+v", bare)
	}
	if bare.Content.W <= full.Content.W || bare.Content.H <= full.Content.H {
		t.Fatalf("expected content to grow without chrome: %+v vs %+v", bare.Content, full.Content)
	}
	if full.Content.X != full.Gutter.X+full.Gutter.W {
		t.Fatalf("expected content right of the gutter")
	}
	if full.Status.Y != full.Content.Y+full.Content.H {
		t.Fatalf("expected status bar below the content")
	}
}

func TestGutterGrowsWithLineCount(t *testing.T) {
	if GutterDigits(0) != 2 || GutterDigits(99) != 2 || GutterDigits(100) != 3 || GutterDigits(12345) != 5 {
		t.Fatalf("unexpected gutter digits")
	}
	theme := LightTheme()
	small := ComputeWindowLayout(600, 400, LayoutOptions{LineNumbers: true, LineCount: 10, DigitWidth: 8}, theme, 1)
	large := ComputeWindowLayout(600, 400, LayoutOptions{LineNumbers: true, LineCount: 10000, DigitWidth: 8}, theme, 1)
	if large.Gutter.W-small.Gutter.W != 3*8 {
		t.Fatalf("unexpected gutter widths: %d %d", small.Gutter.W, large.Gutter.W)
	}
}

func TestPanelPushesContentDown(t *testing.T) {
	theme := LightTheme()
	closed := ComputeWindowLayout(600, 400, LayoutOptions{}, theme, 1)
	open := ComputeWindowLayout(600, 400, LayoutOptions{PanelRows: 2}, theme, 1)
	if open.Content.Y != closed.Content.Y+2*theme.PanelHeightDp {
		t.Fatalf("unexpected content offset: %d vs %d", open.Content.Y, closed.Content.Y)
	}
	if !open.CloseBox.Contains(open.CloseBox.X+1, open.CloseBox.Y+1) || !open.Title.Contains(open.CloseBox.X, open.CloseBox.Y) {
		t.Fatalf("expected close box inside the title bar")
	}
}

func TestThemeForScheme(t *testing.T) {
	if ThemeFor(platform.SchemeDark).Page == ThemeFor(platform.SchemeLight).Page {
		t.Fatalf("expected distinct page colours")
	}
}

func TestDrawWindowChromeMarksActiveTitle(t *testing.T) {
	theme := LightTheme()
	l := ComputeWindowLayout(200, 150, LayoutOptions{StatusBar: true}, theme, 1)
	fb := render.NewFrameBuffer(200, 150)
	DrawWindowChrome(fb, l, theme, true)
	if fb.At(l.Title.X+2, l.Title.Y+2) != theme.TitleBar {
		t.Fatalf("unexpected active title colour")
	}
	DrawWindowChrome(fb, l, theme, false)
	if fb.At(l.Title.X+2, l.Title.Y+2) != theme.TitleBarIdle {
		t.Fatalf("unexpected idle title colour")
	}
	if fb.At(l.Content.X+5, l.Content.Y+5) != theme.Page {
		t.Fatalf("unexpected page colour")
	}
}
