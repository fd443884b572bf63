package render

import (
	"image"
	"image/color"
	"testing"
)

func TestFillRectClipsToBuffer(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	red := color.RGBA{R: 255, A: 255}
	fb.FillRect(-2, -2, 4, 4, red)
	if fb.At(1, 1) != red || fb.At(2, 2) != (color.RGBA{}) {
		t.Fatalf("unexpected pixels: %v %v", fb.At(1, 1), fb.At(2, 2))
	}
}

func TestClipLimitsFills(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	fb.SetClip(image.Rect(2, 2, 5, 5))
	blue := color.RGBA{B: 255, A: 255}
	fb.FillRect(0, 0, 10, 10, blue)
	if fb.At(1, 1) != (color.RGBA{}) || fb.At(2, 2) != blue || fb.At(5, 5) != (color.RGBA{}) {
		t.Fatalf("expected fill limited to clip")
	}
	fb.ResetClip()
	fb.FillRect(9, 9, 1, 1, blue)
	if fb.At(9, 9) != blue {
		t.Fatalf("expected reset clip to cover the buffer")
	}
}

func TestBlendRectMixesColors(t *testing.T) {
	fb := NewFrameBuffer(2, 1)
	fb.Clear(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fb.BlendRect(0, 0, 1, 1, color.RGBA{R: 0, G: 0, B: 0, A: 128})
	got := fb.At(0, 0)
	if got.R < 125 || got.R > 129 || got.A != 255 {
		t.Fatalf("unexpected blended pixel: %v", got)
	}
	if fb.At(1, 0).R != 255 {
		t.Fatalf("expected neighbouring pixel untouched")
	}
}
