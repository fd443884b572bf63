package platform

import "errors"

// ErrCancelled is returned by pickers when the user dismisses them.
var ErrCancelled = errors.New("platform: cancelled")

type WindowConfig struct {
	Title       string
	WidthPx     int
	HeightPx    int
	MinWidthPx  int
	MinHeightPx int
}

// Answer is the result of a save-changes prompt.
type Answer int

const (
	AnswerCancel Answer = iota
	AnswerSave
	AnswerDiscard
)

func (a Answer) String() string {
	switch a {
	case AnswerSave:
		return "save"
	case AnswerDiscard:
		return "discard"
	default:
		return "cancel"
	}
}

type ColorScheme int

const (
	SchemeLight ColorScheme = iota
	SchemeDark
)

// Files is raw whole-file text I/O.
type Files interface {
	Exists(path string) bool
	ReadAll(path string) (string, error)
	WriteAll(path, text string) error
}

// Dialogs are the modal pickers and prompts. Pickers return ErrCancelled
// when dismissed.
type Dialogs interface {
	OpenFiles(dir string) ([]string, error)
	SaveFile(dir, name string) (string, error)
	PickFont(dir string) (string, error)
	Confirm(title, message string) Answer
	Alert(title, message string)
}

type Appearance interface {
	ColorScheme() ColorScheme
}

// Platform bundles the collaborators one backend provides.
type Platform interface {
	Name() string
	Files() Files
	Dialogs() Dialogs
	Appearance() Appearance
}
