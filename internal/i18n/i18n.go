package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the UI languages in menu order. English is the fallback.
var Supported = []language.Tag{
	language.English,
	language.French,
	language.German,
	language.SimplifiedChinese,
}

var (
	matcher    = language.NewMatcher(Supported)
	dictionary = buildCatalog()
)

// Translator formats UI strings for one display language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for the closest supported match of code.
// Unknown or malformed codes fall back to English.
func New(code string) *Translator {
	tag := Match(code)
	return &Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(dictionary))}
}

// Match resolves a BCP 47 code to one of the Supported tags.
func Match(code string) language.Tag {
	code = strings.TrimSpace(code)
	if code == "" {
		return language.English
	}
	requested, _, err := language.ParseAcceptLanguage(code)
	if err != nil || len(requested) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(requested...)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

// Code returns the canonical code stored in preferences, e.g. "zh-Hans".
func (t *Translator) Code() string { return t.tag.String() }

func (t *Translator) Tag() language.Tag { return t.tag }

// T formats key in the translator's language. Keys are the English text.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Name returns the self-name of a supported language, e.g. "Français".
func Name(tag language.Tag) string {
	name := display.Self.Name(tag)
	if name == "" {
		return tag.String()
	}
	return name
}

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			_ = b.SetString(tag, key, msg)
		}
	}
	for _, key := range allKeys {
		_ = b.SetString(language.English, key, key)
	}
	return b
}
