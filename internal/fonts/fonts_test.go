package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"

	"plainpad/internal/prefs"
)

func TestFamilyNameOfEmbeddedMono(t *testing.T) {
	name, err := FamilyName(gomono.TTF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != prefs.DefaultFontFamily {
		t.Fatalf("unexpected family: %q", name)
	}
}

func TestDescribeFontFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	f, err := Describe(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Family != "Go Mono" || f.Path != path || f.SizePt != prefs.DefaultFontSizePt {
		t.Fatalf("unexpected font: %+v", f)
	}
}

func TestDescribeRejectsNonFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Describe(path, 12); !errors.Is(err, ErrUnsupportedFont) {
		t.Fatalf("expected ErrUnsupportedFont, got %v", err)
	}
}

func TestEditorFaceCachingAndFallback(t *testing.T) {
	b := NewBank()
	first, err := b.Editor(prefs.DefaultFont(), 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, _ := b.Editor(prefs.DefaultFont(), 12)
	if first != again {
		t.Fatalf("expected cached face")
	}
	missing := prefs.Font{Family: "Gone", Path: filepath.Join(t.TempDir(), "gone.ttf"), SizePt: 12}
	face, err := b.Editor(missing, 12)
	if err == nil {
		t.Fatalf("expected error for missing font file")
	}
	if face != first {
		t.Fatalf("expected fallback to the embedded face")
	}
	if Measure(face, "abc") <= 0 || LineHeight(face) <= 0 {
		t.Fatalf("expected measurable face")
	}
}
