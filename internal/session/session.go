package session

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"plainpad/internal/fonts"
	"plainpad/internal/i18n"
	"plainpad/internal/instance"
	"plainpad/internal/platform"
	"plainpad/internal/prefs"
)

const AppName = "Plainpad"

// Change names the preference a broadcast is about.
type Change int

const (
	ChangeZoom Change = iota
	ChangeWordWrap
	ChangeLineNumbers
	ChangeStatusBar
	ChangeFont
	ChangeRecent
	ChangeLanguage
	ChangeSearch
)

type Config struct {
	Prefs      *prefs.Preferences
	Files      platform.Files
	Dialogs    platform.Dialogs
	Screen     image.Rectangle
	WindowSize image.Point
}

type observer struct {
	id int
	fn func(Change)
}

// Session is the registry of open document windows plus the state they share.
// It is only touched from the UI loop.
type Session struct {
	prefs   *prefs.Preferences
	files   platform.Files
	dialogs platform.Dialogs
	tr      *i18n.Translator

	windows   []*Window // back to front
	observers []observer
	nextID    int

	screen     image.Rectangle
	windowSize image.Point
	anchor     image.Point

	notice string
}

func New(cfg Config) *Session {
	p := cfg.Prefs
	if p == nil {
		p = prefs.Default()
	}
	screen := cfg.Screen
	if screen.Empty() {
		screen = image.Rect(0, 0, 1920, 1080)
	}
	size := cfg.WindowSize
	if size == (image.Point{}) {
		size = DefaultWindowSize
	}
	s := &Session{
		prefs:      p,
		files:      cfg.Files,
		dialogs:    cfg.Dialogs,
		tr:         i18n.New(p.Language),
		screen:     screen,
		windowSize: size,
		anchor:     cascadeOrigin,
	}
	p.Language = s.tr.Code()
	return s
}

func (s *Session) Preferences() *prefs.Preferences { return s.prefs }
func (s *Session) Translator() *i18n.Translator    { return s.tr }

// Windows returns the open windows from back to front.
func (s *Session) Windows() []*Window {
	return append([]*Window(nil), s.windows...)
}

func (s *Session) Focused() *Window {
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

// Focus brings w to the front.
func (s *Session) Focus(w *Window) {
	i := s.indexOf(w)
	if i < 0 || i == len(s.windows)-1 {
		return
	}
	s.windows = append(s.windows[:i], s.windows[i+1:]...)
	s.windows = append(s.windows, w)
}

// Lookup returns the window bound to the resolved path, if any.
func (s *Session) Lookup(path string) *Window {
	if path == "" {
		return nil
	}
	for _, w := range s.windows {
		if w.path == path {
			return w
		}
	}
	return nil
}

// Open shows the file at path. A path already open only focuses its window.
func (s *Session) Open(path string) (*Window, error) {
	abs, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	if w := s.Lookup(abs); w != nil {
		s.Focus(w)
		return w, nil
	}
	w, err := s.newWindow(abs)
	if err != nil {
		return nil, err
	}
	s.AddRecent(abs)
	return w, nil
}

func (s *Session) NewWindow() *Window {
	w, _ := s.newWindow("")
	return w
}

// OpenDialog asks for files and opens each one, remembering the directory.
func (s *Session) OpenDialog() ([]*Window, error) {
	paths, err := s.dialogs.OpenFiles(s.prefs.RecentDir)
	if err != nil {
		return nil, err
	}
	var opened []*Window
	var errs []error
	for _, p := range paths {
		w, err := s.Open(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.prefs.RecentDir = filepath.Dir(w.path)
		opened = append(opened, w)
	}
	return opened, errors.Join(errs...)
}

// CloseAll asks every window to close. A cancelled window stays open and the
// rest are still asked. It reports whether no windows remain.
func (s *Session) CloseAll() bool {
	for _, w := range s.Windows() {
		w.Close()
	}
	return len(s.windows) == 0
}

func (s *Session) SetZoom(zoom int) bool {
	if !prefs.ValidZoom(zoom) {
		return false
	}
	s.prefs.Zoom = zoom
	s.broadcast(ChangeZoom)
	return true
}

func (s *Session) ZoomIn() bool    { return s.stepZoom(prefs.ZoomStep) }
func (s *Session) ZoomOut() bool   { return s.stepZoom(-prefs.ZoomStep) }
func (s *Session) ResetZoom() bool { return s.SetZoom(prefs.DefaultZoom) }

// stepZoom moves by delta, stopping at the limits.
func (s *Session) stepZoom(delta int) bool {
	zoom := min(max(s.prefs.Zoom+delta, prefs.MinZoom), prefs.MaxZoom)
	if zoom == s.prefs.Zoom {
		return false
	}
	return s.SetZoom(zoom)
}

func (s *Session) SetWordWrap(on bool) {
	s.prefs.WordWrap = on
	s.broadcast(ChangeWordWrap)
}

func (s *Session) ShowLineNumbers(on bool) {
	s.prefs.ShowLineNumbers = on
	s.broadcast(ChangeLineNumbers)
}

func (s *Session) ShowStatusBar(on bool) {
	s.prefs.ShowStatusBar = on
	s.broadcast(ChangeStatusBar)
}

func (s *Session) SetFont(f prefs.Font) {
	if f.SizePt <= 0 {
		f.SizePt = prefs.DefaultFontSizePt
	}
	if f.Family == "" {
		f = prefs.DefaultFont()
	}
	s.prefs.Font = f
	s.broadcast(ChangeFont)
}

// RefreshFont re-announces the current font and zoom without changing them.
func (s *Session) RefreshFont() {
	s.broadcast(ChangeFont)
}

// SelectFont lets the user pick a font file and applies it at the current size.
func (s *Session) SelectFont() error {
	dir := s.prefs.RecentDir
	if s.prefs.Font.Path != "" {
		dir = filepath.Dir(s.prefs.Font.Path)
	}
	path, err := s.dialogs.PickFont(dir)
	if err != nil {
		return err
	}
	f, err := fonts.Describe(path, s.prefs.Font.SizePt)
	if err != nil {
		return err
	}
	s.SetFont(f)
	return nil
}

func (s *Session) ClearRecent() {
	s.prefs.ClearRecent()
	s.broadcast(ChangeRecent)
}

func (s *Session) AddRecent(path string) {
	if s.prefs.AddRecent(path) {
		s.broadcast(ChangeRecent)
	}
}

// SetLanguage switches the display language to the closest supported match.
func (s *Session) SetLanguage(code string) {
	s.tr = i18n.New(code)
	s.prefs.Language = s.tr.Code()
	s.broadcast(ChangeLanguage)
}

// SearchChanged tells every window that the shared find target or options
// moved, so open highlighters follow.
func (s *Session) SearchChanged() {
	s.broadcast(ChangeSearch)
}

// Dispatch executes a request forwarded by another process.
func (s *Session) Dispatch(cmd instance.Command) error {
	switch cmd.Kind {
	case instance.New:
		s.NewWindow()
		return nil
	case instance.Open:
		_, err := s.Open(cmd.Path)
		return err
	default:
		return fmt.Errorf("%w: %s", instance.ErrUnknownCommand, cmd)
	}
}

// Report records err for the status line and alerts the user. Cancellation
// is silent.
func (s *Session) Report(err error) {
	if err == nil || errors.Is(err, platform.ErrCancelled) {
		return
	}
	s.notice = err.Error()
	var fe *FileError
	if errors.As(err, &fe) {
		switch fe.Op {
		case "open":
			s.notice = s.tr.T(i18n.OpenFailed, filepath.Base(fe.Path), fe.Err)
		case "save":
			s.notice = s.tr.T(i18n.SaveFailed, fe.Err)
		}
	}
	if s.dialogs != nil {
		s.dialogs.Alert(AppName, s.notice)
	}
}

// Notify records a status message without alerting.
func (s *Session) Notify(msg string) { s.notice = msg }

// TakeNotice returns and clears the pending status message.
func (s *Session) TakeNotice() (string, bool) {
	msg := s.notice
	s.notice = ""
	return msg, msg != ""
}

// Subscribe registers fn for every broadcast until the returned func is called.
func (s *Session) Subscribe(fn func(Change)) func() {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) broadcast(c Change) {
	for _, o := range append([]observer(nil), s.observers...) {
		o.fn(c)
	}
}

func (s *Session) indexOf(w *Window) int {
	for i, x := range s.windows {
		if x == w {
			return i
		}
	}
	return -1
}

func (s *Session) remove(w *Window) {
	if i := s.indexOf(w); i >= 0 {
		s.windows = append(s.windows[:i], s.windows[i+1:]...)
	}
}

// Resolve returns the absolute, symlink-free form of path. For a path that
// does not exist yet the deepest existing ancestor is resolved and the missing
// tail re-attached.
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolveExisting(abs), nil
}

func resolveExisting(abs string) string {
	if _, err := os.Lstat(abs); err == nil {
		if real, err := filepath.EvalSymlinks(abs); err == nil {
			return real
		}
		return abs
	}
	dir := filepath.Dir(abs)
	if dir == abs {
		return abs
	}
	return filepath.Join(resolveExisting(dir), filepath.Base(abs))
}
