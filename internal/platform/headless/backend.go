package headless

import (
	"io/fs"
	"sort"

	"plainpad/internal/platform"
)

// Backend is an in-memory platform with scripted dialogs. It backs tests and
// any run without a desktop.
type Backend struct {
	FS      *Files
	Prompts *Dialogs
	Scheme  platform.ColorScheme
}

func New() *Backend {
	return &Backend{FS: NewFiles(), Prompts: &Dialogs{}}
}

func (b *Backend) Name() string                      { return "headless" }
func (b *Backend) Files() platform.Files             { return b.FS }
func (b *Backend) Dialogs() platform.Dialogs         { return b.Prompts }
func (b *Backend) Appearance() platform.Appearance   { return b }
func (b *Backend) ColorScheme() platform.ColorScheme { return b.Scheme }

type Files struct {
	data map[string]string

	// WriteErr, when set, fails every WriteAll.
	WriteErr error
	Writes   int
}

func NewFiles() *Files {
	return &Files{data: map[string]string{}}
}

func (f *Files) Put(path, text string) { f.data[path] = text }

func (f *Files) Get(path string) (string, bool) {
	text, ok := f.data[path]
	return text, ok
}

func (f *Files) Paths() []string {
	out := make([]string, 0, len(f.data))
	for p := range f.data {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (f *Files) Exists(path string) bool {
	_, ok := f.data[path]
	return ok
}

func (f *Files) ReadAll(path string) (string, error) {
	text, ok := f.data[path]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return text, nil
}

func (f *Files) WriteAll(path, text string) error {
	if f.WriteErr != nil {
		return &fs.PathError{Op: "write", Path: path, Err: f.WriteErr}
	}
	f.data[path] = text
	f.Writes++
	return nil
}

// Dialogs replays queued responses. An empty queue behaves like the user
// dismissing the dialog.
type Dialogs struct {
	OpenResults [][]string
	SaveResults []string
	FontResults []string
	Answers     []platform.Answer

	Confirms []string
	Alerts   []string
	Dirs     []string
}

func (d *Dialogs) OpenFiles(dir string) ([]string, error) {
	d.Dirs = append(d.Dirs, dir)
	if len(d.OpenResults) == 0 {
		return nil, platform.ErrCancelled
	}
	paths := d.OpenResults[0]
	d.OpenResults = d.OpenResults[1:]
	return paths, nil
}

func (d *Dialogs) SaveFile(dir, name string) (string, error) {
	d.Dirs = append(d.Dirs, dir)
	return pop(&d.SaveResults)
}

func (d *Dialogs) PickFont(dir string) (string, error) {
	d.Dirs = append(d.Dirs, dir)
	return pop(&d.FontResults)
}

func (d *Dialogs) Confirm(title, message string) platform.Answer {
	d.Confirms = append(d.Confirms, message)
	if len(d.Answers) == 0 {
		return platform.AnswerCancel
	}
	a := d.Answers[0]
	d.Answers = d.Answers[1:]
	return a
}

func (d *Dialogs) Alert(title, message string) {
	d.Alerts = append(d.Alerts, message)
}

func pop(queue *[]string) (string, error) {
	if len(*queue) == 0 || (*queue)[0] == "" {
		if len(*queue) > 0 {
			*queue = (*queue)[1:]
		}
		return "", platform.ErrCancelled
	}
	v := (*queue)[0]
	*queue = (*queue)[1:]
	return v, nil
}
