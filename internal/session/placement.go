package session

import "image"

var (
	cascadeOrigin = image.Pt(100, 100)
	cascadeStep   = image.Pt(30, 30)

	DefaultWindowSize = image.Pt(760, 520)
)

// NextWindowPosition returns where the next window of the given size goes and
// advances the cascade. The cascade restarts at the origin once the following
// window would no longer fit on screen.
func (s *Session) NextWindowPosition(size image.Point) image.Point {
	pos := s.anchor
	s.anchor = s.anchor.Add(cascadeStep)
	far := s.anchor.Add(size)
	if far.X > s.screen.Max.X || far.Y > s.screen.Max.Y {
		s.anchor = cascadeOrigin
	}
	return pos
}

// SetScreen updates the area windows are placed in.
func (s *Session) SetScreen(r image.Rectangle) {
	if r.Empty() {
		return
	}
	s.screen = r
}

func (s *Session) Screen() image.Rectangle { return s.screen }

func (s *Session) SetWindowSize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	s.windowSize = size
}

func (s *Session) WindowSize() image.Point { return s.windowSize }
