package gui

import (
	"testing"

	"codeberg.org/snonux/libretranslator/internal/language"
	"codeberg.org/snonux/libretranslator/internal/locale"
)

func TestLanguageOptions(t *testing.T) {
	loc := locale.New("en")
	labels, lookup := languageOptions(loc, language.Sources())

	if len(labels) != len(language.Sources()) {
		t.Fatalf("expected %d labels, got %d", len(language.Sources()), len(labels))
	}
	if labels[0] != "Auto Detect" {
		t.Errorf("expected Auto Detect first, got %q", labels[0])
	}
	for _, l := range labels {
		if _, ok := lookup[l]; !ok {
			t.Errorf("label %q missing from lookup", l)
		}
	}
	if lookup[loc.Label("DE")] != "DE" {
		t.Errorf("expected DE for %q", loc.Label("DE"))
	}
}

func TestLanguageOptionsFollowUILanguage(t *testing.T) {
	en, _ := languageOptions(locale.New("en"), []language.Code{"DE"})
	de, _ := languageOptions(locale.New("de"), []language.Code{"DE"})
	if en[0] == de[0] {
		t.Errorf("expected localized labels, both were %q", en[0])
	}
}

func TestUILanguageOptions(t *testing.T) {
	labels, lookup := uiLanguageOptions()
	if len(labels) != len(locale.Supported) {
		t.Fatalf("expected %d options, got %d", len(locale.Supported), len(labels))
	}
	if lookup["Deutsch"] != "de" || lookup["中文"] != "zh" || lookup["English"] != "en" {
		t.Errorf("unexpected lookup: %v", lookup)
	}
}

func TestHotkeyAction(t *testing.T) {
	tests := []struct {
		r    rune
		want action
	}{
		{'t', actionTranslate},
		{'T', actionTranslate},
		{'s', actionSwap},
		{'a', actionToggleAuto},
		{'c', actionCopyResult},
		{'y', actionCopySource},
		{'?', actionHelp},
		{'q', actionQuit},
		{'i', actionFocusSource},
		{'o', actionFocusResult},
		{'z', actionNone},
	}
	for _, tt := range tests {
		if got := hotkeyAction(tt.r); got != tt.want {
			t.Errorf("hotkeyAction(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestAppendNewestFirst(t *testing.T) {
	var msgs []string
	for _, m := range []string{"a", "b", "c"} {
		msgs = appendNewestFirst(msgs, m, 2)
	}
	if len(msgs) != 2 || msgs[0] != "c" || msgs[1] != "b" {
		t.Errorf("unexpected messages: %v", msgs)
	}
}
