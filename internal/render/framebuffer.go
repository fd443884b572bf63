package render

import (
	"image"
	"image/color"
)

type FrameBuffer struct {
	W      int
	H      int
	Pixels []uint8 // RGBA

	clip image.Rectangle
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	fb := &FrameBuffer{W: w, H: h, Pixels: make([]uint8, w*h*4)}
	fb.ResetClip()
	return fb
}

// SetClip limits every later fill to r, intersected with the buffer bounds.
func (fb *FrameBuffer) SetClip(r image.Rectangle) {
	fb.clip = r.Intersect(fb.Bounds())
}

func (fb *FrameBuffer) ResetClip() {
	fb.clip = fb.Bounds()
}

func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.W, fb.H)
}

func (fb *FrameBuffer) Clear(c color.RGBA) {
	for i := 0; i < len(fb.Pixels); i += 4 {
		fb.Pixels[i+0] = c.R
		fb.Pixels[i+1] = c.G
		fb.Pixels[i+2] = c.B
		fb.Pixels[i+3] = c.A
	}
}

// At returns the pixel at x, y, or transparent black outside the buffer.
func (fb *FrameBuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= fb.W || y >= fb.H {
		return color.RGBA{}
	}
	i := (y*fb.W + x) * 4
	return color.RGBA{R: fb.Pixels[i], G: fb.Pixels[i+1], B: fb.Pixels[i+2], A: fb.Pixels[i+3]}
}

func (fb *FrameBuffer) FillRect(x, y, w, h int, c color.RGBA) {
	r, ok := fb.clipped(x, y, w, h)
	if !ok {
		return
	}
	for row := r.Min.Y; row < r.Max.Y; row++ {
		off := (row*fb.W + r.Min.X) * 4
		for col := 0; col < r.Dx(); col++ {
			idx := off + col*4
			fb.Pixels[idx+0] = c.R
			fb.Pixels[idx+1] = c.G
			fb.Pixels[idx+2] = c.B
			fb.Pixels[idx+3] = c.A
		}
	}
}

// BlendRect composites c over the existing pixels using c.A as coverage.
// c is non-premultiplied.
func (fb *FrameBuffer) BlendRect(x, y, w, h int, c color.RGBA) {
	if c.A == 0xFF {
		fb.FillRect(x, y, w, h, c)
		return
	}
	r, ok := fb.clipped(x, y, w, h)
	if !ok || c.A == 0 {
		return
	}
	a := uint32(c.A)
	inv := 255 - a
	for row := r.Min.Y; row < r.Max.Y; row++ {
		off := (row*fb.W + r.Min.X) * 4
		for col := 0; col < r.Dx(); col++ {
			idx := off + col*4
			fb.Pixels[idx+0] = uint8((uint32(c.R)*a + uint32(fb.Pixels[idx+0])*inv + 127) / 255)
			fb.Pixels[idx+1] = uint8((uint32(c.G)*a + uint32(fb.Pixels[idx+1])*inv + 127) / 255)
			fb.Pixels[idx+2] = uint8((uint32(c.B)*a + uint32(fb.Pixels[idx+2])*inv + 127) / 255)
			fb.Pixels[idx+3] = uint8(a + (uint32(fb.Pixels[idx+3])*inv+127)/255)
		}
	}
}

func (fb *FrameBuffer) StrokeRect(x, y, w, h, line int, c color.RGBA) {
	if line <= 0 {
		line = 1
	}
	fb.FillRect(x, y, w, line, c)
	fb.FillRect(x, y+h-line, w, line, c)
	fb.FillRect(x, y, line, h, c)
	fb.FillRect(x+w-line, y, line, h, c)
}

func (fb *FrameBuffer) clipped(x, y, w, h int) (image.Rectangle, bool) {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(fb.clip)
	return r, !r.Empty()
}
