package i18n

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestEmbeddedCatalogsAreComplete(t *testing.T) {
	bundle := Default()
	locales := bundle.Locales()
	if len(locales) < 2 || !bundle.HasLocale(BaseLocale) {
		t.Fatalf("unexpected locales %v", locales)
	}
	for _, locale := range locales {
		if missing := bundle.Missing(locale); len(missing) > 0 {
			t.Errorf("locale %s is missing %v", locale, missing)
		}
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadFromFS(fstest.MapFS{
		"locales/en-US/feedback.yaml": {Data: []byte("locale: en-US\nmessages:\n  greeting: Hello\n  farewell: Bye\n")},
		"locales/pl-PL/feedback.yaml": {Data: []byte("locale: pl-PL\nmessages:\n  greeting: Cześć\n")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := bundle.Message("pl-PL", "greeting"); got != "Cześć" {
		t.Errorf("expected Polish greeting, got %q", got)
	}
	if got, ok := bundle.Message("pl-PL", "farewell"); !ok || got != "Bye" {
		t.Errorf("expected fallback to English, got %q", got)
	}
	if _, ok := bundle.Message("pl-PL", "unknown"); ok {
		t.Error("unknown key should not be found")
	}
	if missing := bundle.Missing("pl-PL"); len(missing) != 1 || missing[0] != "farewell" {
		t.Errorf("unexpected missing keys %v", missing)
	}
}

func TestInvalidCatalogs(t *testing.T) {
	for name, fsys := range map[string]fstest.MapFS{
		"no catalogs": {},
		"no base locale": {
			"locales/de-DE/feedback.yaml": {Data: []byte("locale: de-DE\nmessages:\n  a: b\n")}},
		"locale mismatch": {
			"locales/en-US/feedback.yaml": {Data: []byte("locale: en-GB\nmessages:\n  a: b\n")}},
		"no messages": {
			"locales/en-US/feedback.yaml": {Data: []byte("locale: en-US\n")}},
		"duplicate key": {
			"locales/en-US/a.yaml": {Data: []byte("locale: en-US\nmessages:\n  a: b\n")},
			"locales/en-US/b.yaml": {Data: []byte("locale: en-US\nmessages:\n  a: c\n")}},
	} {
		if _, err := LoadFromFS(fsys); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestPrinterMatchesLocale(t *testing.T) {
	for _, tc := range []struct {
		locale string
		want   string
	}{
		{"de-DE", "Jawohl"},
		{"de-AT", "Jawohl"},
		{"en-GB", "Copy that"},
		{"xx-invalid-!", "Copy that"},
	} {
		if got := Printer(tc.locale).Sprintf("order.accepted"); !strings.HasPrefix(got, tc.want) {
			t.Errorf("%s: expected a message starting with %q, got %q", tc.locale, tc.want, got)
		}
	}
}
