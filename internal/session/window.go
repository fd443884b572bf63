package session

import (
	"image"
	"path/filepath"

	"plainpad/internal/editor"
	"plainpad/internal/i18n"
	"plainpad/internal/platform"
	"plainpad/internal/prefs"
	"plainpad/internal/search"
)

// FileError records a failed open or save of a document.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }
func (e *FileError) Unwrap() error { return e.Err }

// View is the display state a window mirrors from the shared preferences.
type View struct {
	Zoom        int
	Font        prefs.Font
	FontSize    float64
	WordWrap    bool
	LineNumbers bool
	StatusBar   bool
}

func viewOf(p *prefs.Preferences) View {
	return View{
		Zoom:        p.Zoom,
		Font:        p.Font,
		FontSize:    p.EffectiveFontSize(),
		WordWrap:    p.WordWrap,
		LineNumbers: p.ShowLineNumbers,
		StatusBar:   p.ShowStatusBar,
	}
}

// Window is one open document. It is Clean when the buffer matches the file
// on disk and Dirty otherwise.
type Window struct {
	session *Session
	path    string
	dirty   bool
	buf     *editor.Buffer
	view    View
	pos     image.Point
	closed  bool
	finder  *search.Controller

	unwatch     func()
	unsubscribe func()
}

func (s *Session) newWindow(path string) (*Window, error) {
	w := &Window{session: s, path: path}
	text := ""
	if path != "" {
		if s.files.Exists(path) {
			content, err := s.files.ReadAll(path)
			if err != nil {
				return nil, &FileError{Op: "open", Path: path, Err: err}
			}
			text = content
		} else {
			w.dirty = true
		}
	}
	w.buf = editor.NewBuffer(text)
	w.view = viewOf(s.prefs)
	w.pos = s.NextWindowPosition(s.windowSize)
	w.unwatch = w.buf.Subscribe(w.edited)
	w.unsubscribe = s.Subscribe(w.apply)
	s.windows = append(s.windows, w)
	return w, nil
}

func (w *Window) Path() string           { return w.path }
func (w *Window) Dirty() bool            { return w.dirty }
func (w *Window) Buffer() *editor.Buffer { return w.buf }
func (w *Window) View() View             { return w.view }
func (w *Window) Position() image.Point  { return w.pos }
func (w *Window) Closed() bool           { return w.closed }
func (w *Window) Session() *Session      { return w.session }
func (w *Window) Raise()                 { w.session.Focus(w) }
func (w *Window) MoveTo(p image.Point)   { w.pos = p }
func (w *Window) Untitled() bool         { return w.path == "" }

// DisplayName is the file's base name, or the translated "Untitled".
func (w *Window) DisplayName() string {
	if w.path == "" {
		return w.session.tr.T(i18n.Untitled)
	}
	return filepath.Base(w.path)
}

// Title is "[*]<name> - Plainpad".
func (w *Window) Title() string {
	title := w.DisplayName() + " - " + AppName
	if w.dirty {
		return "*" + title
	}
	return title
}

func (w *Window) edited() {
	if w.path == "" {
		w.dirty = !w.buf.Empty()
		return
	}
	w.dirty = true
}

func (w *Window) apply(c Change) {
	switch c {
	case ChangeSearch:
		if w.finder != nil {
			w.finder.Refresh()
		}
	default:
		w.view = viewOf(w.session.prefs)
	}
}

// Save writes the buffer to the window's file. Untitled windows ask for a
// destination first; a Clean window is left alone.
func (w *Window) Save() error {
	if w.path == "" {
		return w.SaveAs()
	}
	if !w.dirty {
		return nil
	}
	return w.write()
}

// SaveAs writes the buffer to a newly chosen file and rebinds the window to
// it. Another window already showing that file is closed without asking.
func (w *Window) SaveAs() error {
	s := w.session
	dir := s.prefs.RecentDir
	name := ""
	if w.path != "" {
		dir = filepath.Dir(w.path)
		name = filepath.Base(w.path)
	}
	picked, err := s.dialogs.SaveFile(dir, name)
	if err != nil {
		return err
	}
	path, err := Resolve(picked)
	if err != nil {
		return err
	}
	s.prefs.RecentDir = filepath.Dir(path)
	if path != w.path {
		if other := s.Lookup(path); other != nil && other != w {
			other.destroy()
		}
		w.path = path
		s.AddRecent(path)
	}
	return w.write()
}

func (w *Window) write() error {
	if err := w.session.files.WriteAll(w.path, w.buf.Text()); err != nil {
		return &FileError{Op: "save", Path: w.path, Err: err}
	}
	w.dirty = false
	return nil
}

// Close destroys a Clean window. A Dirty window first asks whether to save;
// it stays open on Cancel or when saving fails. Close reports whether the
// window is gone.
func (w *Window) Close() bool {
	if w.closed {
		return true
	}
	if !w.dirty {
		w.destroy()
		return true
	}
	s := w.session
	s.Focus(w)
	answer := s.dialogs.Confirm(s.tr.T(i18n.SaveChangesHdr), s.tr.T(i18n.SaveChanges, w.DisplayName()))
	switch answer {
	case platform.AnswerSave:
		if err := w.Save(); err != nil {
			s.Report(err)
			return false
		}
	case platform.AnswerDiscard:
	default:
		return false
	}
	w.destroy()
	return true
}

// Search returns the window's find/replace controller, creating it on first use.
func (w *Window) Search() *search.Controller {
	if w.finder == nil {
		w.finder = search.NewController(w.session.prefs, w.buf)
	}
	return w.finder
}

// CloseSearch drops the controller and its highlighting.
func (w *Window) CloseSearch() {
	if w.finder == nil {
		return
	}
	w.finder.Close()
	w.finder = nil
}

func (w *Window) destroy() {
	if w.closed {
		return
	}
	w.CloseSearch()
	w.unwatch()
	w.unsubscribe()
	w.session.remove(w)
	w.closed = true
}
