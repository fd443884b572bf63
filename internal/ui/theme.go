package ui

import (
	"image/color"

	"plainpad/internal/platform"
)

type Theme struct {
	Desktop        color.RGBA
	Frame          color.RGBA
	TitleBar       color.RGBA
	TitleBarIdle   color.RGBA
	TitleText      color.RGBA
	Page           color.RGBA
	Text           color.RGBA
	Gutter         color.RGBA
	GutterText     color.RGBA
	CurrentLine    color.RGBA
	Selection      color.RGBA
	Match          color.RGBA
	Caret          color.RGBA
	Border         color.RGBA
	StatusBar      color.RGBA
	StatusText     color.RGBA
	Panel          color.RGBA
	Field          color.RGBA
	FieldMissing   color.RGBA
	FieldText      color.RGBA
	Accent         color.RGBA
	Shadow         color.RGBA
	Scrollbar      color.RGBA
	ScrollThumb    color.RGBA
	TitleHeightDp  int
	StatusHeightDp int
	PanelHeightDp  int
	GutterPadDp    int
	ContentPadDp   int
}

func LightTheme() Theme {
	return Theme{
		Desktop:        color.RGBA{0xE2, 0xE7, 0xEF, 0xFF},
		Frame:          color.RGBA{0xB2, 0xBF, 0xD0, 0xFF},
		TitleBar:       color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		TitleBarIdle:   color.RGBA{0x8A, 0x9B, 0xB4, 0xFF},
		TitleText:      color.RGBA{0xF4, 0xF8, 0xFF, 0xFF},
		Page:           color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Text:           color.RGBA{0x20, 0x20, 0x20, 0xFF},
		Gutter:         color.RGBA{0xF3, 0xF5, 0xF8, 0xFF},
		GutterText:     color.RGBA{0x8A, 0x96, 0xA8, 0xFF},
		CurrentLine:    color.RGBA{0xF5, 0xF8, 0xFC, 0xFF},
		Selection:      color.RGBA{0xBF, 0xD6, 0xFF, 0xFF},
		Match:          color.RGBA{0xFF, 0xD5, 0x4F, 0x99},
		Caret:          color.RGBA{0x15, 0x54, 0xA4, 0xFF},
		Border:         color.RGBA{0xBB, 0xC4, 0xD2, 0xFF},
		StatusBar:      color.RGBA{0xEA, 0xEF, 0xF6, 0xFF},
		StatusText:     color.RGBA{0x2A, 0x38, 0x50, 0xFF},
		Panel:          color.RGBA{0xF7, 0xF9, 0xFC, 0xFF},
		Field:          color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		FieldMissing:   color.RGBA{0xF8, 0xD7, 0xDA, 0xFF},
		FieldText:      color.RGBA{0x2C, 0x3A, 0x52, 0xFF},
		Accent:         color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		Shadow:         color.RGBA{0x00, 0x00, 0x00, 0x30},
		Scrollbar:      color.RGBA{0xE7, 0xEC, 0xF4, 0xFF},
		ScrollThumb:    color.RGBA{0x9C, 0xAA, 0xBE, 0xFF},
		TitleHeightDp:  28,
		StatusHeightDp: 22,
		PanelHeightDp:  34,
		GutterPadDp:    8,
		ContentPadDp:   6,
	}
}

func DarkTheme() Theme {
	t := LightTheme()
	t.Desktop = color.RGBA{0x1B, 0x1E, 0x24, 0xFF}
	t.Frame = color.RGBA{0x3A, 0x40, 0x4C, 0xFF}
	t.TitleBar = color.RGBA{0x2F, 0x4F, 0x80, 0xFF}
	t.TitleBarIdle = color.RGBA{0x36, 0x3C, 0x48, 0xFF}
	t.TitleText = color.RGBA{0xE6, 0xEA, 0xF0, 0xFF}
	t.Page = color.RGBA{0x26, 0x29, 0x30, 0xFF}
	t.Text = color.RGBA{0xDC, 0xDF, 0xE4, 0xFF}
	t.Gutter = color.RGBA{0x21, 0x24, 0x2A, 0xFF}
	t.GutterText = color.RGBA{0x6B, 0x73, 0x80, 0xFF}
	t.CurrentLine = color.RGBA{0x2C, 0x30, 0x38, 0xFF}
	t.Selection = color.RGBA{0x26, 0x4F, 0x78, 0xFF}
	t.Match = color.RGBA{0xC8, 0x96, 0x1E, 0x80}
	t.Caret = color.RGBA{0x9C, 0xC4, 0xFF, 0xFF}
	t.Border = color.RGBA{0x3A, 0x40, 0x4C, 0xFF}
	t.StatusBar = color.RGBA{0x21, 0x24, 0x2A, 0xFF}
	t.StatusText = color.RGBA{0xB8, 0xBE, 0xC8, 0xFF}
	t.Panel = color.RGBA{0x2A, 0x2E, 0x36, 0xFF}
	t.Field = color.RGBA{0x1E, 0x21, 0x27, 0xFF}
	t.FieldMissing = color.RGBA{0x6E, 0x2A, 0x30, 0xFF}
	t.FieldText = color.RGBA{0xDC, 0xDF, 0xE4, 0xFF}
	t.Accent = color.RGBA{0x5A, 0x8F, 0xD8, 0xFF}
	t.Shadow = color.RGBA{0x00, 0x00, 0x00, 0x60}
	t.Scrollbar = color.RGBA{0x2A, 0x2E, 0x36, 0xFF}
	t.ScrollThumb = color.RGBA{0x55, 0x5D, 0x6A, 0xFF}
	return t
}

func ThemeFor(scheme platform.ColorScheme) Theme {
	if scheme == platform.SchemeDark {
		return DarkTheme()
	}
	return LightTheme()
}
