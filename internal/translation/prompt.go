package translation

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	lang "codeberg.org/snonux/libretranslator/internal/language"
)

const systemPrompt = "You are a professional translator. Translate the user's text faithfully, " +
	"keeping formatting and line breaks. Respond with only the translation, nothing else."

// englishName returns the English display name of an endpoint code, e.g. "ZH-HANS" → "Simplified Chinese"
func englishName(c lang.Code) string {
	tag, err := language.Parse(string(c))
	if err != nil {
		return string(c)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return string(c)
}

// buildPrompt renders the user message for chat-model providers
func buildPrompt(req Request) string {
	target := englishName(req.Target)
	if req.Source == lang.Auto || req.Source == "" {
		return fmt.Sprintf("Detect the language of the following text and translate it to %s.\n\n%s", target, req.Text)
	}
	return fmt.Sprintf("Translate the following %s text to %s.\n\n%s", englishName(req.Source), target, req.Text)
}
