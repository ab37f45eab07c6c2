package processor

import (
	"context"

	"codeberg.org/snonux/libretranslator/internal/cli"
	"codeberg.org/snonux/libretranslator/internal/gui"
	"codeberg.org/snonux/libretranslator/internal/session"
	"codeberg.org/snonux/libretranslator/internal/translation"
	"codeberg.org/snonux/libretranslator/internal/tui"
)

// SessionConfig builds an interactive session configuration from flags,
// environment and config file
func SessionConfig(ctx context.Context) (session.Config, error) {
	t, err := translation.NewTranslator(ctx, cli.TranslatorConfig())
	if err != nil {
		return session.Config{}, err
	}
	pair, err := cli.GetPair()
	if err != nil {
		return session.Config{}, err
	}
	return session.Config{
		Translator:    t,
		Pair:          pair,
		AutoTranslate: cli.GetAutoTranslate(),
		Passphrase:    cli.GetPassphrase(),
		UILanguage:    cli.GetUILanguage(),
	}, nil
}

// RunGUIMode launches the GUI application
func RunGUIMode(ctx context.Context) error {
	cfg, err := SessionConfig(ctx)
	if err != nil {
		return err
	}
	app, err := gui.New(ctx, cfg)
	if err != nil {
		return err
	}
	app.Run()
	return nil
}

// RunTUIMode launches the terminal UI
func RunTUIMode(ctx context.Context) error {
	cfg, err := SessionConfig(ctx)
	if err != nil {
		return err
	}
	return tui.Run(ctx, cfg)
}
