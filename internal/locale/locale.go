// Package locale provides UI strings in English, Chinese and German and
// display names for language codes.
package locale

import (
	"embed"
	"encoding/json"
	"strings"
	"sync"

	golocale "github.com/jeandeaual/go-locale"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	lang "codeberg.org/snonux/libretranslator/internal/language"
)

//go:embed messages/*.json
var messageFS embed.FS

// Message IDs
const (
	Title              = "title"
	TranslationSuccess = "translationSuccess"
	TranslationFailed  = "translationFailed"
	TranslationError   = "translationError"
	CopySuccess        = "copySuccess"
	CopyFailed         = "copyFailed"
	WrongPassword      = "wrongPassword"
	EnterPassword      = "enterPassword"
	Submit             = "submit"
	AutoTranslate      = "autoTranslate"
	AutoDetect         = "Auto"
	Swap               = "swap"
	InputPlaceholder   = "inputPlaceholder"
	OutputPlaceholder  = "outputPlaceholder"
	CharCount          = "charCount"
	Copy               = "copy"
	Translate          = "translate"
	Translating        = "translating"
	UILanguage         = "uiLanguage"
	PoweredBy          = "poweredBy"
)

// Fallback is used for any unsupported UI language
const Fallback = "en"

// Supported lists the UI languages
var Supported = []string{"en", "zh", "de"}

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
)

func loadBundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
		for _, l := range Supported {
			if _, err := bundle.LoadMessageFileFS(messageFS, "messages/active."+l+".json"); err != nil {
				panic("locale: " + err.Error())
			}
		}
	})
	return bundle
}

// Normalize maps a locale string such as "de-AT" or "zh_CN.UTF-8" to a
// supported UI language, falling back to English
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_."); i >= 0 {
		s = s[:i]
	}
	for _, l := range Supported {
		if s == l {
			return l
		}
	}
	return Fallback
}

// Detect returns the supported UI language closest to the system locale
func Detect() string {
	l, err := golocale.GetLanguage()
	if err != nil {
		return Fallback
	}
	return Normalize(l)
}

// Provider renders UI strings in the selected language
type Provider struct {
	mu        sync.RWMutex
	lang      string
	localizer *i18n.Localizer
}

// New creates a provider for the UI language l
func New(l string) *Provider {
	p := &Provider{}
	p.SetLanguage(l)
	return p
}

// SetLanguage switches the UI language
func (p *Provider) SetLanguage(l string) {
	l = Normalize(l)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lang = l
	p.localizer = i18n.NewLocalizer(loadBundle(), l)
}

// Language returns the current UI language
func (p *Provider) Language() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lang
}

// T returns the message for id, or id itself when unknown
func (p *Provider) T(id string) string {
	return p.Tf(id, nil)
}

// Tf renders the message template for id with data
func (p *Provider) Tf(id string, data map[string]any) string {
	p.mu.RLock()
	loc := p.localizer
	p.mu.RUnlock()

	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// LanguageName returns the display name of an endpoint language code in the
// current UI language
func (p *Provider) LanguageName(c lang.Code) string {
	if c == lang.Auto {
		return p.T(AutoDetect)
	}
	tag, err := language.Parse(string(c))
	if err != nil {
		return string(c)
	}
	if name := display.Tags(language.Make(p.Language())).Name(tag); name != "" {
		return name
	}
	return string(c)
}

// Label returns "Name (CODE)" for pickers
func (p *Provider) Label(c lang.Code) string {
	if c == lang.Auto {
		return p.LanguageName(c)
	}
	return p.LanguageName(c) + " (" + string(c) + ")"
}
