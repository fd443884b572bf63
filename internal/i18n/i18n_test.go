package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatchFallsBackToEnglish(t *testing.T) {
	cases := map[string]language.Tag{
		"":        language.English,
		"fr-CA":   language.French,
		"de":      language.German,
		"zh-CN":   language.SimplifiedChinese,
		"sw":      language.English,
		"not a ☃": language.English,
	}
	for code, want := range cases {
		if got := Match(code); got != want {
			t.Fatalf("unexpected match for %q: %v", code, got)
		}
	}
}

func TestTranslatorFormats(t *testing.T) {
	fr := New("fr")
	if got := fr.T(Untitled); got != "Sans titre" {
		t.Fatalf("unexpected french text: %q", got)
	}
	if got := fr.T(SaveChanges, "notes.txt"); got != "Enregistrer les modifications de notes.txt ?" {
		t.Fatalf("unexpected french prompt: %q", got)
	}
	en := New("en-GB")
	if got := en.T(Zoom, 150); got != "Zoom 150%" {
		t.Fatalf("unexpected english zoom: %q", got)
	}
	if en.Code() != "en" {
		t.Fatalf("unexpected code: %q", en.Code())
	}
}

func TestEveryLanguageCoversEveryKey(t *testing.T) {
	for tag, entries := range translations {
		for _, key := range allKeys {
			if key == Help {
				continue
			}
			if _, ok := entries[key]; !ok {
				t.Fatalf("%v is missing %q", tag, key)
			}
		}
	}
}

func TestNameUsesSelfName(t *testing.T) {
	if got := Name(language.German); got != "Deutsch" {
		t.Fatalf("unexpected language name: %q", got)
	}
}
