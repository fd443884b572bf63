package desktop

import (
	"os"
	"path/filepath"
	"testing"

	"plainpad/internal/platform"
)

func TestFilesRoundTrip(t *testing.T) {
	var f Files
	path := filepath.Join(t.TempDir(), "notes.txt")
	if f.Exists(path) {
		t.Fatalf("expected missing file")
	}
	if err := f.WriteAll(path, "first\nsecond"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !f.Exists(path) {
		t.Fatalf("expected file after write")
	}
	got, err := f.ReadAll(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got != "first\nsecond" {
		t.Fatalf("unexpected content: %q", got)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file to be renamed away, found %d entries", len(entries))
	}
}

func TestWriteKeepsPermissions(t *testing.T) {
	var f Files
	path := filepath.Join(t.TempDir(), "script.sh")
	if err := os.WriteFile(path, []byte("echo"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := f.WriteAll(path, "echo hi"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("unexpected mode: %v", info.Mode().Perm())
	}
}

func TestWriteIntoMissingDirectoryFails(t *testing.T) {
	var f Files
	path := filepath.Join(t.TempDir(), "missing", "notes.txt")
	if err := f.WriteAll(path, "x"); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestAppearanceFromEnvironment(t *testing.T) {
	env := map[string]string{}
	look := Appearance{Getenv: func(k string) string { return env[k] }}
	if look.ColorScheme() != platform.SchemeLight {
		t.Fatalf("expected light by default")
	}
	env["GTK_THEME"] = "Adwaita:dark"
	if look.ColorScheme() != platform.SchemeDark {
		t.Fatalf("expected dark from GTK_THEME")
	}
	env[ThemeEnv] = "light"
	if look.ColorScheme() != platform.SchemeLight {
		t.Fatalf("expected override to win")
	}
}
