package fonts

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"plainpad/internal/prefs"
)

var ErrUnsupportedFont = errors.New("fonts: unsupported font file")

type faceKey struct {
	path string
	size int // hundredths of a point
}

// Bank parses font files once and caches faces per size.
type Bank struct {
	mono    *opentype.Font
	regular *opentype.Font
	bold    *opentype.Font
	files   map[string]*opentype.Font
	broken  map[string]error
	faces   map[faceKey]font.Face
	ui      map[faceKey]font.Face
}

func NewBank() *Bank {
	b := &Bank{
		files:  map[string]*opentype.Font{},
		broken: map[string]error{},
		faces:  map[faceKey]font.Face{},
		ui:     map[faceKey]font.Face{},
	}
	if f, err := opentype.Parse(gomono.TTF); err == nil {
		b.mono = f
	}
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		b.regular = f
	}
	if f, err := opentype.Parse(gobold.TTF); err == nil {
		b.bold = f
	}
	return b
}

// Editor returns the face for the document text at sizePt. A font file that
// cannot be loaded yields the embedded mono face together with the error.
func (b *Bank) Editor(f prefs.Font, sizePt float64) (font.Face, error) {
	key := faceKey{path: f.Path, size: int(math.Round(sizePt * 100))}
	if face, ok := b.faces[key]; ok {
		return face, nil
	}
	base := b.mono
	var loadErr error
	if f.Path != "" {
		parsed, err := b.load(f.Path)
		if err != nil {
			loadErr = err
			key.path = ""
		} else {
			base = parsed
		}
	}
	if face, ok := b.faces[key]; ok {
		return face, loadErr
	}
	face := newFace(base, sizePt)
	b.faces[key] = face
	return face, loadErr
}

// UI returns a face for chrome labels.
func (b *Bank) UI(sizePt float64, bold bool) font.Face {
	key := faceKey{size: int(math.Round(sizePt * 100))}
	if bold {
		key.path = "bold"
	}
	if face, ok := b.ui[key]; ok {
		return face
	}
	base := b.regular
	if bold {
		base = b.bold
	}
	face := newFace(base, sizePt)
	b.ui[key] = face
	return face
}

// Forget drops cached faces so the next lookup re-reads font files.
func (b *Bank) Forget() {
	b.files = map[string]*opentype.Font{}
	b.broken = map[string]error{}
	b.faces = map[faceKey]font.Face{}
}

func (b *Bank) load(path string) (*opentype.Font, error) {
	if f, ok := b.files[path]; ok {
		return f, nil
	}
	if err, ok := b.broken[path]; ok {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		b.broken[path] = fmt.Errorf("read font: %w", err)
		return nil, b.broken[path]
	}
	f, err := opentype.Parse(data)
	if err != nil {
		b.broken[path] = fmt.Errorf("%w: %v", ErrUnsupportedFont, err)
		return nil, b.broken[path]
	}
	b.files[path] = f
	return f, nil
}

func newFace(base *opentype.Font, sizePt float64) font.Face {
	if base == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{Size: sizePt, DPI: 96, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// Describe reads the family name of the font file at path and returns a
// preferences entry for it at sizePt.
func Describe(path string, sizePt int) (prefs.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return prefs.Font{}, fmt.Errorf("read font: %w", err)
	}
	family, err := FamilyName(data)
	if err != nil {
		return prefs.Font{}, err
	}
	if family == "" {
		family = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if sizePt <= 0 {
		sizePt = prefs.DefaultFontSizePt
	}
	return prefs.Font{Family: family, Path: path, SizePt: sizePt}, nil
}

// FamilyName returns the family recorded in the font's name table.
func FamilyName(data []byte) (string, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFont, err)
	}
	var buf sfnt.Buffer
	for _, id := range []sfnt.NameID{sfnt.NameIDTypographicFamily, sfnt.NameIDFamily} {
		name, err := f.Name(&buf, id)
		if err == nil && name != "" {
			return name, nil
		}
	}
	return "", nil
}

// Measure returns the advance width of s in pixels.
func Measure(face font.Face, s string) int {
	if face == nil || s == "" {
		return 0
	}
	adv := font.MeasureString(face, s)
	px := (int(adv) + 32) >> 6
	if px < 0 {
		px = 0
	}
	return px
}

// LineHeight returns the distance between baselines, never below 1px.
func LineHeight(face font.Face) int {
	m := face.Metrics()
	h := m.Height.Ceil()
	if h <= 0 {
		h = m.Ascent.Ceil() + m.Descent.Ceil()
	}
	if h <= 0 {
		h = 1
	}
	return h
}
