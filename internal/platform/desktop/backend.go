package desktop

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"

	"plainpad/internal/platform"
)

// ThemeEnv forces "dark" or "light" regardless of the desktop setting.
const ThemeEnv = "PLAINPAD_THEME"

type Backend struct {
	files   Files
	dialogs Dialogs
	look    Appearance
}

func New() *Backend {
	return &Backend{look: Appearance{Getenv: os.Getenv}}
}

func (b *Backend) Name() string                    { return "desktop" }
func (b *Backend) Files() platform.Files           { return b.files }
func (b *Backend) Dialogs() platform.Dialogs       { return b.dialogs }
func (b *Backend) Appearance() platform.Appearance { return b.look }

// Files reads and writes through the OS. Writes go to a sibling temp file
// that replaces the target on success.
type Files struct{}

func (Files) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (Files) ReadAll(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (Files) WriteAll(path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, mode); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

// Dialogs shows native pickers and message boxes.
type Dialogs struct{}

func (Dialogs) OpenFiles(dir string) ([]string, error) {
	path, err := dialog.File().
		Filter("Text files", "txt", "md", "log", "csv", "ini", "cfg").
		Filter("All files", "*").
		SetStartDir(dir).
		Load()
	if err != nil {
		return nil, pickerError("open", err)
	}
	return []string{path}, nil
}

func (Dialogs) SaveFile(dir, name string) (string, error) {
	builder := dialog.File().
		Filter("Text files", "txt").
		Filter("All files", "*").
		SetStartDir(dir)
	if name != "" {
		builder = builder.SetStartFile(name)
	}
	path, err := builder.Save()
	if err != nil {
		return "", pickerError("save", err)
	}
	return path, nil
}

func (Dialogs) PickFont(dir string) (string, error) {
	path, err := dialog.File().
		Title("Font").
		Filter("Font files", "ttf", "otf").
		SetStartDir(dir).
		Load()
	if err != nil {
		return "", pickerError("font", err)
	}
	return path, nil
}

// Confirm asks whether to save and, on "no", whether to discard. Declining
// both cancels.
func (Dialogs) Confirm(title, message string) platform.Answer {
	if dialog.Message("%s", message).Title(title).YesNo() {
		return platform.AnswerSave
	}
	if dialog.Message("%s", "Discard the changes?").Title(title).YesNo() {
		return platform.AnswerDiscard
	}
	return platform.AnswerCancel
}

func (Dialogs) Alert(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}

func pickerError(op string, err error) error {
	if errors.Is(err, dialog.ErrCancelled) {
		return platform.ErrCancelled
	}
	return fmt.Errorf("%s dialog: %w", op, err)
}

// Appearance reads the preferred scheme from the environment.
type Appearance struct {
	Getenv func(string) string
}

func (a Appearance) ColorScheme() platform.ColorScheme {
	if a.Getenv == nil {
		return platform.SchemeLight
	}
	switch strings.ToLower(a.Getenv(ThemeEnv)) {
	case "dark":
		return platform.SchemeDark
	case "light":
		return platform.SchemeLight
	}
	for _, key := range []string{"GTK_THEME", "QT_STYLE_OVERRIDE"} {
		if strings.Contains(strings.ToLower(a.Getenv(key)), "dark") {
			return platform.SchemeDark
		}
	}
	return platform.SchemeLight
}
