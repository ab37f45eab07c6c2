package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Translate  key.Binding
	Swap       key.Binding
	Auto       key.Binding
	NextSource key.Binding
	NextTarget key.Binding
	CopySource key.Binding
	CopyResult key.Binding
	Paste      key.Binding
	Focus      key.Binding
	UILanguage key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Translate:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "translate")),
		Swap:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "swap")),
		Auto:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "auto translate")),
		NextSource: key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "source language")),
		NextTarget: key.NewBinding(key.WithKeys("alt+t"), key.WithHelp("alt+t", "target language")),
		CopySource: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "copy input")),
		CopyResult: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy translation")),
		Paste:      key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		UILanguage: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "interface language")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Translate, k.Swap, k.Auto, k.CopyResult, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Translate, k.Auto, k.Swap, k.NextSource, k.NextTarget},
		{k.CopySource, k.CopyResult, k.Paste, k.Focus},
		{k.UILanguage, k.Help, k.Quit},
	}
}
