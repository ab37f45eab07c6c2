package gui

import (
	"codeberg.org/snonux/libretranslator/internal/language"
	"codeberg.org/snonux/libretranslator/internal/locale"
)

// languageOptions returns picker labels for codes in display order along
// with the label to code lookup
func languageOptions(loc *locale.Provider, codes []language.Code) ([]string, map[string]language.Code) {
	labels := make([]string, 0, len(codes))
	lookup := make(map[string]language.Code, len(codes))
	for _, c := range codes {
		l := loc.Label(c)
		labels = append(labels, l)
		lookup[l] = c
	}
	return labels, lookup
}

// uiLanguageNames are shown in their own language
var uiLanguageNames = map[string]string{
	"en": "English",
	"zh": "中文",
	"de": "Deutsch",
}

func uiLanguageOptions() ([]string, map[string]string) {
	labels := make([]string, 0, len(locale.Supported))
	lookup := make(map[string]string, len(locale.Supported))
	for _, l := range locale.Supported {
		name := uiLanguageNames[l]
		labels = append(labels, name)
		lookup[name] = l
	}
	return labels, lookup
}

// action is a hotkey target while no entry has focus
type action int

const (
	actionNone action = iota
	actionFocusSource
	actionFocusResult
	actionTranslate
	actionSwap
	actionToggleAuto
	actionCopyResult
	actionCopySource
	actionHelp
	actionQuit
)

// hotkeyAction maps a typed rune to its action
func hotkeyAction(r rune) action {
	switch r {
	case 'i', 'I':
		return actionFocusSource
	case 'o', 'O':
		return actionFocusResult
	case 't', 'T':
		return actionTranslate
	case 's', 'S':
		return actionSwap
	case 'a', 'A':
		return actionToggleAuto
	case 'c', 'C':
		return actionCopyResult
	case 'y', 'Y':
		return actionCopySource
	case 'h', 'H', '?':
		return actionHelp
	case 'q', 'Q':
		return actionQuit
	}
	return actionNone
}

const hotkeyHelp = `## Focus
**i** Focus input  
**o** Focus translation  
**Tab** Switch fields  
**Esc** Unfocus field  

## Translation
**t** Translate now  
**Ctrl+Enter** Translate from an input field  
**s** Swap languages  
**a** Toggle auto translate  

## Clipboard
**y** Copy input  
**c** Copy translation  

## Help
**h** Show hotkeys  
**q** Quit application  
`
