// Package session wires one interactive translation session: input
// tracking, debouncing, the request lifecycle, transient messages, the
// passphrase gate and the clipboard. Front ends drive a Session and redraw
// from Snapshot whenever the update callback fires.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"codeberg.org/snonux/libretranslator/internal"
	"codeberg.org/snonux/libretranslator/internal/clipboard"
	"codeberg.org/snonux/libretranslator/internal/clock"
	"codeberg.org/snonux/libretranslator/internal/debounce"
	"codeberg.org/snonux/libretranslator/internal/gate"
	"codeberg.org/snonux/libretranslator/internal/input"
	"codeberg.org/snonux/libretranslator/internal/job"
	"codeberg.org/snonux/libretranslator/internal/language"
	"codeberg.org/snonux/libretranslator/internal/locale"
	"codeberg.org/snonux/libretranslator/internal/logging"
	"codeberg.org/snonux/libretranslator/internal/notify"
	"codeberg.org/snonux/libretranslator/internal/translation"
)

// Config holds everything a session needs
type Config struct {
	Translator    translation.Translator
	Pair          language.Pair
	AutoTranslate bool
	Passphrase    string
	UILanguage    string

	// Optional; wall clock, the system clipboard and debounce.DefaultDelay
	// are used when unset
	Clock     clock.Clock
	Clipboard clipboard.Writer
	Delay     time.Duration
}

// Snapshot is a consistent view for rendering
type Snapshot struct {
	Source        input.EditableText
	Composing     bool
	Result        string
	ResultLength  int
	Pair          language.Pair
	AutoTranslate bool
	State         job.State
	Message       notify.Message
	HasMessage    bool
	Unlocked      bool
	UILanguage    string
}

// Session is one interactive translation session
type Session struct {
	tracker   *input.Tracker
	scheduler *debounce.Scheduler
	lifecycle *job.Lifecycle
	board     *notify.Board
	gate      *gate.Gate
	locale    *locale.Provider
	clip      clipboard.Writer
	provider  string

	mu       sync.RWMutex
	pair     language.Pair
	onUpdate func(Snapshot)

	closeOnce sync.Once
}

// New creates a session and starts it
func New(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Translator == nil {
		return nil, errors.New("session: translator is required")
	}
	if cfg.Pair == (language.Pair{}) {
		cfg.Pair = language.DefaultPair()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.System
	}
	if cfg.Delay <= 0 {
		cfg.Delay = debounce.DefaultDelay
	}

	s := &Session{
		lifecycle: job.NewLifecycle(ctx, cfg.Translator),
		board:     notify.NewBoard(cfg.Clock),
		gate:      gate.New(cfg.Passphrase),
		locale:    locale.New(cfg.UILanguage),
		clip:      cfg.Clipboard,
		provider:  cfg.Translator.Name(),
		pair:      cfg.Pair,
	}

	s.scheduler = debounce.New(s.fire,
		debounce.WithClock(cfg.Clock),
		debounce.WithDelay(cfg.Delay),
		debounce.WithBusy(s.lifecycle.Pending),
	)
	s.scheduler.SetEnabled(cfg.AutoTranslate)

	s.tracker = input.NewTracker(s.commit)
	s.tracker.SetOnChange(func(input.EditableText) { s.changed() })
	s.lifecycle.SetCallbacks(func(*job.Job) { s.changed() }, s.completed)
	s.board.SetOnChange(func(*notify.Message) { s.changed() })

	logging.SessionStart(s.provider, string(cfg.Pair.Source), string(cfg.Pair.Target), cfg.AutoTranslate)
	return s, nil
}

// SetOnUpdate registers the redraw callback. It may run on any goroutine.
func (s *Session) SetOnUpdate(f func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = f
}

func (s *Session) changed() {
	s.mu.RLock()
	f := s.onUpdate
	s.mu.RUnlock()
	if f != nil {
		f(s.Snapshot())
	}
}

// commit receives committed text from the tracker
func (s *Session) commit(text string) {
	if !s.gate.Open() {
		return
	}
	s.scheduler.Arm(text)
}

// fire is the debounce callback
func (s *Session) fire(text string) {
	s.submit(text)
}

// submit starts a request for text with the current language pair
func (s *Session) submit(text string) bool {
	if !s.gate.Open() {
		return false
	}
	pair := s.Pair()
	_, ok := s.lifecycle.Submit(text, pair.Source, pair.Target)
	return ok
}

func (s *Session) completed(j *job.Job) {
	err := j.Err()
	switch {
	case err == nil:
		s.board.Info(s.locale.T(locale.TranslationSuccess))
	case translation.IsApplicationError(err):
		logging.Warnf("translation failed: %v", err)
		s.board.Error(s.locale.T(locale.TranslationFailed))
	default:
		logging.Errorf("translation error: %v", err)
		s.board.Error(s.locale.T(locale.TranslationError))
	}
}

// Tracker exposes the input tracker for front ends that report
// composition events
func (s *Session) Tracker() *input.Tracker {
	return s.tracker
}

// Edit reports a plain edit of the source text. Ignored while locked.
func (s *Session) Edit(text string) {
	if !s.gate.Open() {
		return
	}
	s.tracker.Edit(text)
}

// Paste reports pasted source text. Ignored while locked.
func (s *Session) Paste(text string) {
	if !s.gate.Open() {
		return
	}
	s.tracker.Paste(text)
}

// Translate submits the current source text right away. The armed debounce
// timer, if any, is dropped.
func (s *Session) Translate() bool {
	if !s.gate.Open() {
		return false
	}
	text := s.tracker.Text().Content
	if internal.IsBlank(text) || s.lifecycle.Pending() {
		return false
	}
	s.scheduler.Cancel()
	return s.submit(text)
}

// SetAutoTranslate toggles auto-translation
func (s *Session) SetAutoTranslate(on bool) {
	s.scheduler.SetEnabled(on)
	s.changed()
}

// Pair returns the selected languages
func (s *Session) Pair() language.Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair
}

// SetSource selects the source language
func (s *Session) SetSource(c language.Code) error {
	if !language.IsValidSource(c) {
		return fmt.Errorf("unsupported source language: %q", c)
	}
	s.mu.Lock()
	s.pair.Source = c
	s.mu.Unlock()
	s.changed()
	return nil
}

// SetTarget selects the target language
func (s *Session) SetTarget(c language.Code) error {
	if !language.IsValidTarget(c) {
		return fmt.Errorf("unsupported target language: %q", c)
	}
	s.mu.Lock()
	s.pair.Target = c
	s.mu.Unlock()
	s.changed()
	return nil
}

// Swap exchanges source and target when the pair allows it
func (s *Session) Swap() bool {
	s.mu.Lock()
	if !s.pair.CanSwap() {
		s.mu.Unlock()
		return false
	}
	s.pair = s.pair.Swap()
	s.mu.Unlock()
	s.changed()
	return true
}

// Unlock checks the passphrase. A mismatch shows an error message and keeps
// the session locked.
func (s *Session) Unlock(passphrase string) error {
	if err := s.gate.Unlock(passphrase); err != nil {
		logging.Warn("wrong passphrase")
		s.board.Error(s.locale.T(locale.WrongPassword))
		return err
	}
	s.changed()
	return nil
}

// Locked reports whether the passphrase gate is still closed
func (s *Session) Locked() bool {
	return !s.gate.Open()
}

// CopySource copies the source text to the clipboard
func (s *Session) CopySource() error {
	return s.copy(s.tracker.Text().Content)
}

// CopyResult copies the displayed result to the clipboard
func (s *Session) CopyResult() error {
	return s.copy(s.lifecycle.Result())
}

func (s *Session) copy(text string) error {
	if err := clipboard.Copy(s.clip, text); err != nil {
		logging.Warnf("copy failed: %v", err)
		s.board.Error(s.locale.T(locale.CopyFailed))
		return err
	}
	s.board.Info(s.locale.T(locale.CopySuccess))
	return nil
}

// EditResult replaces the displayed result with user-edited text
func (s *Session) EditResult(text string) {
	s.lifecycle.EditResult(text)
	s.changed()
}

// Locale returns the UI string provider
func (s *Session) Locale() *locale.Provider {
	return s.locale
}

// SetUILanguage switches the UI language
func (s *Session) SetUILanguage(l string) {
	s.locale.SetLanguage(l)
	s.changed()
}

// Provider returns the translation provider name
func (s *Session) Provider() string {
	return s.provider
}

// CurrentJob returns the most recent translation job or nil
func (s *Session) CurrentJob() *job.Job {
	return s.lifecycle.Current()
}

// Snapshot returns the current session state
func (s *Session) Snapshot() Snapshot {
	result := s.lifecycle.Result()
	msg, hasMsg := s.board.Current()
	return Snapshot{
		Source:        s.tracker.Text(),
		Composing:     s.tracker.Composing(),
		Result:        result,
		ResultLength:  internal.CharCount(result),
		Pair:          s.Pair(),
		AutoTranslate: s.scheduler.Enabled(),
		State:         s.lifecycle.State(),
		Message:       msg,
		HasMessage:    hasMsg,
		Unlocked:      s.gate.Open(),
		UILanguage:    s.locale.Language(),
	}
}

// Close tears the session down: the debounce timer is cancelled, an
// in-flight request is cancelled and awaited, message timers are stopped
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.SetOnUpdate(nil)
		s.scheduler.Stop()
		s.lifecycle.Close()
		s.board.Close()
		logging.SessionEnd(s.lifecycle.Completed())
	})
}
