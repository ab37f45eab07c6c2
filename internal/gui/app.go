package gui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/libretranslator/internal"
	"codeberg.org/snonux/libretranslator/internal/job"
	"codeberg.org/snonux/libretranslator/internal/language"
	"codeberg.org/snonux/libretranslator/internal/locale"
	"codeberg.org/snonux/libretranslator/internal/logging"
	"codeberg.org/snonux/libretranslator/internal/session"
)

// Application is the Fyne front end of a translation session
type Application struct {
	app     fyne.App
	window  fyne.Window
	session *session.Session
	loc     *locale.Provider

	// Translator screen
	sourceEntry     *CustomMultiLineEntry
	resultEntry     *CustomMultiLineEntry
	sourceCount     *widget.Label
	resultCount     *widget.Label
	sourceSelect    *widget.Select
	targetSelect    *widget.Select
	uiSelect        *widget.Select
	autoCheck       *widget.Check
	translateButton *ttwidget.Button
	swapButton      *ttwidget.Button
	copySourceBtn   *ttwidget.Button
	copyResultBtn   *ttwidget.Button
	helpButton      *ttwidget.Button
	banner          *MessageBanner
	footer          *widget.Label
	logViewer       *LogViewer

	// Passphrase screen
	passwordEntry *widget.Entry
	unlockButton  *widget.Button
	gateBanner    *MessageBanner
	gateLabel     *widget.Label

	translatorContent fyne.CanvasObject
	gateContent       fyne.CanvasObject

	sourceLookup map[string]language.Code
	targetLookup map[string]language.Code
	uiLookup     map[string]string

	// Set while render updates widgets so their callbacks do not feed back
	// into the session. Only touched on the UI goroutine.
	rendering      bool
	unlocked       bool
	pickerLanguage string
}

// New creates the GUI application and its session
func New(ctx context.Context, cfg session.Config) (*Application, error) {
	s, err := session.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	myApp := app.NewWithID("org.codeberg.snonux.libretranslator")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:     myApp,
		session: s,
		loc:     s.Locale(),
	}
	a.setupUI()
	s.SetOnUpdate(func(session.Snapshot) {
		fyne.Do(func() { a.render(a.session.Snapshot()) })
	})
	a.render(s.Snapshot())
	return a, nil
}

// setupUI creates the window and both screens
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("LibreTranslator v%s", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(1000, 640))

	a.logViewer = NewLogViewer()
	logging.AddWriter(a.logViewer)

	a.buildTranslator()
	a.buildGate()

	a.window.SetOnClosed(func() {
		a.session.Close()
	})

	if a.session.Locked() {
		a.showGate()
	} else {
		a.showTranslator()
	}
}

func (a *Application) buildTranslator() {
	a.sourceEntry = NewCustomMultiLineEntry()
	a.sourceEntry.OnChanged = func(text string) {
		if !a.rendering {
			a.session.Edit(text)
		}
	}
	a.sourceEntry.SetOnEscape(func() { a.window.Canvas().Unfocus() })
	a.sourceEntry.SetOnSubmit(a.onTranslate)

	a.resultEntry = NewCustomMultiLineEntry()
	a.resultEntry.OnChanged = func(text string) {
		if !a.rendering {
			a.session.EditResult(text)
		}
	}
	a.resultEntry.SetOnEscape(func() { a.window.Canvas().Unfocus() })
	a.resultEntry.SetOnSubmit(a.onTranslate)

	a.sourceCount = widget.NewLabel("")
	a.resultCount = widget.NewLabel("")

	a.sourceSelect = widget.NewSelect(nil, func(label string) {
		if c, ok := a.sourceLookup[label]; ok && !a.rendering {
			a.reportError(a.session.SetSource(c))
		}
	})
	a.targetSelect = widget.NewSelect(nil, func(label string) {
		if c, ok := a.targetLookup[label]; ok && !a.rendering {
			a.reportError(a.session.SetTarget(c))
		}
	})

	var uiLabels []string
	uiLabels, a.uiLookup = uiLanguageOptions()
	a.uiSelect = widget.NewSelect(uiLabels, func(label string) {
		if l, ok := a.uiLookup[label]; ok && !a.rendering {
			a.session.SetUILanguage(l)
		}
	})

	a.autoCheck = widget.NewCheck("", func(on bool) {
		if !a.rendering {
			a.session.SetAutoTranslate(on)
		}
	})

	a.translateButton = ttwidget.NewButtonWithIcon("", theme.MediaPlayIcon(), a.onTranslate)
	a.translateButton.Importance = widget.HighImportance
	a.swapButton = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.onSwap)
	a.copySourceBtn = ttwidget.NewButtonWithIcon("", theme.ContentCopyIcon(), a.onCopySource)
	a.copyResultBtn = ttwidget.NewButtonWithIcon("", theme.ContentCopyIcon(), a.onCopyResult)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	a.banner = NewMessageBanner()
	a.footer = widget.NewLabel("")
	a.footer.Alignment = fyne.TextAlignTrailing

	toolbar := container.NewBorder(nil, nil,
		container.NewHBox(a.sourceSelect, a.swapButton, a.targetSelect),
		container.NewHBox(a.autoCheck, a.translateButton, a.uiSelect, a.helpButton),
	)

	sourcePane := container.NewBorder(nil,
		container.NewBorder(nil, nil, a.sourceCount, a.copySourceBtn),
		nil, nil, a.sourceEntry)
	resultPane := container.NewBorder(nil,
		container.NewBorder(nil, nil, a.resultCount, a.copyResultBtn),
		nil, nil, a.resultEntry)
	panes := container.NewHSplit(sourcePane, resultPane)

	logs := widget.NewAccordion(widget.NewAccordionItem("Log", a.logViewer))
	bottom := container.NewVBox(a.banner, logs, a.footer)

	a.translatorContent = container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		bottom, nil, nil, panes)
}

func (a *Application) buildGate() {
	a.gateLabel = widget.NewLabel("")
	a.gateLabel.Alignment = fyne.TextAlignCenter
	a.passwordEntry = widget.NewPasswordEntry()
	a.passwordEntry.OnSubmitted = func(string) { a.onUnlock() }
	a.unlockButton = widget.NewButton("", a.onUnlock)
	a.unlockButton.Importance = widget.HighImportance
	a.gateBanner = NewMessageBanner()

	form := container.NewVBox(a.gateLabel, a.passwordEntry, a.unlockButton, a.gateBanner)
	a.gateContent = container.NewCenter(container.NewGridWrap(fyne.NewSize(360, 200), form))
}

func (a *Application) showTranslator() {
	a.unlocked = true
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(a.translatorContent, a.window.Canvas()))
	a.setupKeyboardShortcuts()
}

func (a *Application) showGate() {
	a.window.SetContent(a.gateContent)
	a.window.Canvas().Focus(a.passwordEntry)
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// render applies a session snapshot to the widgets
func (a *Application) render(s session.Snapshot) {
	a.rendering = true
	defer func() { a.rendering = false }()

	if s.Unlocked && !a.unlocked {
		a.showTranslator()
	}
	a.renderTexts()

	if a.resultEntry.Text != s.Result {
		a.resultEntry.SetText(s.Result)
	}
	a.sourceCount.SetText(fmt.Sprintf("%s: %d", a.loc.T(locale.CharCount), s.Source.Length))
	a.resultCount.SetText(fmt.Sprintf("%s: %d", a.loc.T(locale.CharCount), s.ResultLength))

	a.renderPair(s.Pair)
	a.autoCheck.SetChecked(s.AutoTranslate)
	if name := uiLanguageNames[s.UILanguage]; a.uiSelect.Selected != name {
		a.uiSelect.SetSelected(name)
	}

	if s.State == job.Pending {
		a.translateButton.SetText(a.loc.T(locale.Translating))
		a.translateButton.Disable()
	} else {
		a.translateButton.SetText(a.loc.T(locale.Translate))
		a.translateButton.Enable()
	}
	if s.Pair.CanSwap() {
		a.swapButton.Enable()
	} else {
		a.swapButton.Disable()
	}

	a.banner.Show(s.Message, s.HasMessage)
	a.gateBanner.Show(s.Message, s.HasMessage)
}

// renderTexts refreshes every localized string
func (a *Application) renderTexts() {
	a.window.SetTitle(fmt.Sprintf("%s - LibreTranslator v%s", a.loc.T(locale.Title), internal.Version))
	a.sourceEntry.SetPlaceHolder(a.loc.T(locale.InputPlaceholder))
	a.resultEntry.SetPlaceHolder(a.loc.T(locale.OutputPlaceholder))
	a.autoCheck.Text = a.loc.T(locale.AutoTranslate)
	a.autoCheck.Refresh()
	a.footer.SetText(a.loc.Tf(locale.PoweredBy, map[string]any{"Provider": a.session.Provider()}))
	a.gateLabel.SetText(a.loc.T(locale.EnterPassword))
	a.unlockButton.SetText(a.loc.T(locale.Submit))

	if a.unlocked {
		a.translateButton.SetToolTip(a.loc.T(locale.Translate) + " (t)")
		a.swapButton.SetToolTip(a.loc.T(locale.Swap) + " (s)")
		a.copySourceBtn.SetToolTip(a.loc.T(locale.Copy) + " (y)")
		a.copyResultBtn.SetToolTip(a.loc.T(locale.Copy) + " (c)")
		a.helpButton.SetToolTip("Show hotkeys (h)")
		a.uiSelect.PlaceHolder = a.loc.T(locale.UILanguage)
	}
}

// renderPair relabels the pickers in the current UI language and selects
// the session's pair
func (a *Application) renderPair(p language.Pair) {
	if lang := a.loc.Language(); lang != a.pickerLanguage {
		a.pickerLanguage = lang
		a.sourceSelect.Options, a.sourceLookup = languageOptions(a.loc, language.Sources())
		a.targetSelect.Options, a.targetLookup = languageOptions(a.loc, language.Targets())
		a.sourceSelect.Refresh()
		a.targetSelect.Refresh()
	}

	if l := a.loc.Label(p.Source); a.sourceSelect.Selected != l {
		a.sourceSelect.SetSelected(l)
	}
	if l := a.loc.Label(p.Target); a.targetSelect.Selected != l {
		a.targetSelect.SetSelected(l)
	}
}

func (a *Application) onTranslate() {
	a.session.Translate()
}

func (a *Application) onSwap() {
	a.session.Swap()
}

func (a *Application) onCopySource() {
	_ = a.session.CopySource()
}

func (a *Application) onCopyResult() {
	_ = a.session.CopyResult()
}

func (a *Application) onUnlock() {
	if err := a.session.Unlock(a.passwordEntry.Text); err != nil {
		a.passwordEntry.SetText("")
	}
}

func (a *Application) reportError(err error) {
	if err != nil {
		logging.Error(err.Error())
		dialog.ShowError(err, a.window)
	}
}

// onShowHotkeys displays a dialog with all available keyboard shortcuts
func (a *Application) onShowHotkeys() {
	content := widget.NewRichTextFromMarkdown(hotkeyHelp)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(420, 400))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)
	d.Show()
}

// setupKeyboardShortcuts handles hotkeys while no entry has focus
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if a.inputFocused() {
			return
		}
		a.runAction(hotkeyAction(r))
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			a.window.Canvas().Unfocus()
		case fyne.KeyTab:
			a.handleTabNavigation()
		}
	})
}

func (a *Application) inputFocused() bool {
	focused := a.window.Canvas().Focused()
	return focused == a.sourceEntry || focused == a.resultEntry
}

func (a *Application) runAction(act action) {
	switch act {
	case actionFocusSource:
		a.window.Canvas().Focus(a.sourceEntry)
	case actionFocusResult:
		a.window.Canvas().Focus(a.resultEntry)
	case actionTranslate:
		a.onTranslate()
	case actionSwap:
		a.onSwap()
	case actionToggleAuto:
		a.session.SetAutoTranslate(!a.session.Snapshot().AutoTranslate)
	case actionCopyResult:
		a.onCopyResult()
	case actionCopySource:
		a.onCopySource()
	case actionHelp:
		a.onShowHotkeys()
	case actionQuit:
		a.window.Close()
	}
}

// handleTabNavigation cycles focus between input and translation
func (a *Application) handleTabNavigation() {
	if a.window.Canvas().Focused() == a.sourceEntry {
		a.window.Canvas().Focus(a.resultEntry)
		return
	}
	a.window.Canvas().Focus(a.sourceEntry)
}
