package prefs

import (
	"os"
	"path/filepath"
)

const (
	MinZoom     = 10
	MaxZoom     = 500
	DefaultZoom = 100
	ZoomStep    = 10

	DefaultFontFamily = "Go Mono"
	DefaultFontSizePt = 12
	DefaultLanguage   = "en"

	// PathEnv overrides the location of the persisted record.
	PathEnv = "PLAINPAD_PREFS"
)

// Font describes the editor font. An empty Path selects the embedded Go Mono face.
type Font struct {
	Family string
	Path   string
	SizePt int
}

// Preferences is the user settings record shared by every window of a session.
type Preferences struct {
	RecentDir       string
	RecentPaths     []string
	FindTarget      string
	ReplaceTarget   string
	MatchCase       bool
	MatchWholeWord  bool
	ShowLineNumbers bool
	ShowStatusBar   bool
	WordWrap        bool
	Zoom            int
	Font            Font
	Language        string
}

func Default() *Preferences {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Preferences{
		RecentDir:       home,
		RecentPaths:     []string{},
		ShowLineNumbers: true,
		ShowStatusBar:   true,
		WordWrap:        false,
		Zoom:            DefaultZoom,
		Font:            DefaultFont(),
		Language:        DefaultLanguage,
	}
}

func DefaultFont() Font {
	return Font{Family: DefaultFontFamily, SizePt: DefaultFontSizePt}
}

// DefaultPath returns where the record lives unless PLAINPAD_PREFS says otherwise.
func DefaultPath() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "plainpad_preferences.dat"
	}
	return filepath.Join(dir, "plainpad", "preferences.dat")
}

// Load replaces p with the persisted record at path. On any failure p is left
// untouched and false is returned.
func (p *Preferences) Load(path string) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	loaded, err := decodeRecord(b)
	if err != nil {
		return false
	}
	loaded.normalize(p)
	*p = *loaded
	return true
}

func (p *Preferences) Save(path string) error {
	blob, err := encodeRecord(p)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// AddRecent appends path unless it is already listed.
func (p *Preferences) AddRecent(path string) bool {
	for _, existing := range p.RecentPaths {
		if existing == path {
			return false
		}
	}
	p.RecentPaths = append(p.RecentPaths, path)
	return true
}

func (p *Preferences) ClearRecent() {
	p.RecentPaths = []string{}
}

func ValidZoom(zoom int) bool {
	return zoom >= MinZoom && zoom <= MaxZoom
}

// EffectiveFontSize is the font size after zoom, never below 1pt.
func (p *Preferences) EffectiveFontSize() float64 {
	size := p.Font.SizePt
	if size <= 0 {
		size = DefaultFontSizePt
	}
	pt := float64(size) * float64(p.Zoom) / 100
	if pt < 1 {
		pt = 1
	}
	return pt
}

// normalize repairs fields a stale or hand-edited record may carry, falling
// back to the values in prev.
func (p *Preferences) normalize(prev *Preferences) {
	if !ValidZoom(p.Zoom) {
		p.Zoom = prev.Zoom
	}
	if p.RecentDir == "" {
		p.RecentDir = prev.RecentDir
	}
	if p.Font.SizePt <= 0 {
		p.Font.SizePt = DefaultFontSizePt
	}
	if p.Font.Family == "" {
		p.Font = DefaultFont()
	}
	if p.Language == "" {
		p.Language = prev.Language
	}
	seen := make(map[string]bool, len(p.RecentPaths))
	recent := make([]string, 0, len(p.RecentPaths))
	for _, path := range p.RecentPaths {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		recent = append(recent, path)
	}
	p.RecentPaths = recent
}
