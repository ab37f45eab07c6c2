package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/snonux/libretranslator/internal/debounce"
	"codeberg.org/snonux/libretranslator/internal/gate"
	"codeberg.org/snonux/libretranslator/internal/job"
	"codeberg.org/snonux/libretranslator/internal/language"
	"codeberg.org/snonux/libretranslator/internal/locale"
	"codeberg.org/snonux/libretranslator/internal/notify"
	"codeberg.org/snonux/libretranslator/internal/testutil"
	"codeberg.org/snonux/libretranslator/internal/translation"
)

const waitTimeout = 2 * time.Second

type fixture struct {
	s    *Session
	clk  *testutil.FakeClock
	clip *testutil.MockClipboard
}

func newFixture(t *testing.T, tr translation.Translator, mutate func(*Config)) *fixture {
	t.Helper()
	clk := testutil.NewFakeClock()
	clip := &testutil.MockClipboard{}
	cfg := Config{
		Translator:    tr,
		Pair:          language.Pair{Source: language.Auto, Target: "ZH"},
		AutoTranslate: true,
		UILanguage:    "en",
		Clock:         clk,
		Clipboard:     clip,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(s.Close)
	return &fixture{s: s, clk: clk, clip: clip}
}

func endpointServer(t *testing.T, body string) translation.Translator {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	e, err := translation.NewEndpoint(srv.URL, "token")
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func (f *fixture) waitSettled(t *testing.T) Snapshot {
	t.Helper()
	testutil.Eventually(t, waitTimeout, func() bool {
		snap := f.s.Snapshot()
		return snap.State != job.Pending && snap.State != job.Idle && snap.HasMessage
	}, "translation did not settle")
	return f.s.Snapshot()
}

func TestSuccessScenario(t *testing.T) {
	f := newFixture(t, endpointServer(t, `{"code":200,"data":"你好"}`), nil)

	f.s.Edit("Hello")
	f.clk.Advance(debounce.DefaultDelay)

	snap := f.waitSettled(t)
	if snap.State != job.Succeeded {
		t.Fatalf("State = %v", snap.State)
	}
	if snap.Result != "你好" || snap.ResultLength != 2 {
		t.Errorf("Result = %q (%d)", snap.Result, snap.ResultLength)
	}
	if snap.Message.IsError || snap.Message.Text != "Translation successful" {
		t.Errorf("Message = %+v", snap.Message)
	}
	if snap.Source.Length != 5 {
		t.Errorf("Source.Length = %d", snap.Source.Length)
	}

	f.clk.Advance(notify.DisplayDuration)
	if f.s.Snapshot().HasMessage {
		t.Error("message did not clear after 2000ms")
	}
}

func TestApplicationFailureKeepsResult(t *testing.T) {
	mock := testutil.NewMockTranslator(map[string]string{"Hi": "Hallo"})
	mock.Errors["Hello"] = &translation.ApplicationError{Code: 500}
	f := newFixture(t, mock, nil)

	f.s.Edit("Hi")
	f.clk.Advance(debounce.DefaultDelay)
	f.waitSettled(t)
	f.clk.Advance(notify.DisplayDuration)

	f.s.Edit("Hello")
	f.clk.Advance(debounce.DefaultDelay)
	snap := f.waitSettled(t)

	if snap.State != job.Failed {
		t.Fatalf("State = %v", snap.State)
	}
	if snap.Result != "Hallo" {
		t.Errorf("Result = %q, want previous result", snap.Result)
	}
	if !snap.Message.IsError || snap.Message.Text != "Translation failed" {
		t.Errorf("Message = %+v", snap.Message)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()
	e, _ := translation.NewEndpoint(addr, "")

	f := newFixture(t, e, nil)
	f.s.EditResult("previous")
	f.s.Edit("Hello")
	f.clk.Advance(debounce.DefaultDelay)
	snap := f.waitSettled(t)

	if snap.State != job.Failed || snap.Result != "previous" {
		t.Errorf("State = %v, Result = %q", snap.State, snap.Result)
	}
	if !snap.Message.IsError || snap.Message.Text != "Error during translation" {
		t.Errorf("Message = %+v", snap.Message)
	}
}

func TestCompositionTriggersOneArm(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	f := newFixture(t, mock, nil)

	tr := f.s.Tracker()
	tr.StartComposition("")
	tr.UpdateComposition("你")
	f.clk.Advance(2 * debounce.DefaultDelay)
	if mock.CallCount() != 0 {
		t.Fatalf("composition triggered %d calls", mock.CallCount())
	}

	tr.EndComposition("你好")
	f.clk.Advance(debounce.DefaultDelay)
	f.waitSettled(t)

	calls := mock.Calls()
	if len(calls) != 1 || calls[0].Text != "你好" {
		t.Errorf("calls = %+v", calls)
	}
}

func TestCoalescing(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	f := newFixture(t, mock, nil)

	for _, text := range []string{"H", "He", "Hel", "Hell", "Hello"} {
		f.s.Edit(text)
		f.clk.Advance(200 * time.Millisecond)
	}
	f.clk.Advance(debounce.DefaultDelay)
	f.waitSettled(t)

	calls := mock.Calls()
	if len(calls) != 1 || calls[0].Text != "Hello" {
		t.Errorf("calls = %+v", calls)
	}
}

func TestNoSecondRequestWhilePending(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	mock.Block = true
	f := newFixture(t, mock, nil)

	f.s.Edit("one")
	f.clk.Advance(debounce.DefaultDelay)
	<-mock.Started()

	f.s.Edit("one two")
	f.clk.Advance(2 * debounce.DefaultDelay)
	if f.s.Translate() {
		t.Error("manual Translate accepted while Pending")
	}
	if f.s.Snapshot().State != job.Pending {
		t.Errorf("State = %v", f.s.Snapshot().State)
	}

	mock.Release()
	f.waitSettled(t)
	if mock.CallCount() != 1 {
		t.Errorf("translator called %d times", mock.CallCount())
	}
}

func TestAutoTranslateOff(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	f := newFixture(t, mock, func(c *Config) { c.AutoTranslate = false })

	f.s.Edit("Hello")
	f.clk.Advance(2 * debounce.DefaultDelay)
	if mock.CallCount() != 0 {
		t.Fatal("auto-translate off still translated")
	}

	if !f.s.Translate() {
		t.Fatal("manual Translate rejected")
	}
	f.waitSettled(t)
	if mock.CallCount() != 1 {
		t.Errorf("translator called %d times", mock.CallCount())
	}
}

func TestManualTranslateBlank(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	f := newFixture(t, mock, nil)

	f.s.Edit("   ")
	if f.s.Translate() {
		t.Error("blank Translate accepted")
	}
	f.clk.Advance(2 * debounce.DefaultDelay)
	if mock.CallCount() != 0 || f.s.Snapshot().State != job.Idle {
		t.Errorf("blank input changed state: calls %d, state %v", mock.CallCount(), f.s.Snapshot().State)
	}
}

func TestRequestUsesPairAtSubmit(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	f := newFixture(t, mock, nil)

	f.s.Edit("Bonjour")
	if err := f.s.SetSource("FR"); err != nil {
		t.Fatal(err)
	}
	if err := f.s.SetTarget("DE"); err != nil {
		t.Fatal(err)
	}
	f.clk.Advance(debounce.DefaultDelay)
	f.waitSettled(t)

	calls := mock.Calls()
	if len(calls) != 1 || calls[0].Source != "FR" || calls[0].Target != "DE" {
		t.Errorf("calls = %+v", calls)
	}

	if err := f.s.SetTarget(language.Auto); err == nil {
		t.Error("AUTO accepted as target")
	}
}

func TestSwap(t *testing.T) {
	f := newFixture(t, testutil.NewMockTranslator(nil), nil)

	if f.s.Swap() {
		t.Error("swap with AUTO source succeeded")
	}

	_ = f.s.SetSource("DE")
	_ = f.s.SetTarget("EN")
	if !f.s.Swap() {
		t.Fatal("swap rejected")
	}
	if p := f.s.Pair(); p.Source != "EN" || p.Target != "DE" {
		t.Errorf("Pair = %v", p)
	}
	f.s.Swap()
	if p := f.s.Pair(); p.Source != "DE" || p.Target != "EN" {
		t.Errorf("double swap Pair = %v", p)
	}
}

func TestGate(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	f := newFixture(t, mock, func(c *Config) { c.Passphrase = "open sesame" })

	if !f.s.Locked() {
		t.Fatal("session unlocked without passphrase")
	}
	f.s.Edit("Hello")
	f.clk.Advance(2 * debounce.DefaultDelay)
	if f.s.Translate() || mock.CallCount() != 0 {
		t.Fatal("locked session translated")
	}

	err := f.s.Unlock("guess")
	if !errors.Is(err, gate.ErrWrongPassphrase) {
		t.Errorf("Unlock(guess) = %v", err)
	}
	snap := f.s.Snapshot()
	if snap.Unlocked || !snap.HasMessage || !snap.Message.IsError || snap.Message.Text != "Wrong password" {
		t.Errorf("after wrong passphrase: %+v", snap)
	}

	if err := f.s.Unlock("open sesame"); err != nil {
		t.Fatalf("Unlock() = %v", err)
	}
	f.s.Edit("Hello!")
	f.clk.Advance(debounce.DefaultDelay)
	f.waitSettled(t)
	if mock.CallCount() != 1 {
		t.Errorf("translator called %d times after unlock", mock.CallCount())
	}
}

func TestCopy(t *testing.T) {
	f := newFixture(t, testutil.NewMockTranslator(nil), nil)

	f.s.Edit("source text")
	f.s.EditResult("result text")

	if err := f.s.CopySource(); err != nil {
		t.Fatal(err)
	}
	if f.clip.Last() != "source text" {
		t.Errorf("clipboard = %q", f.clip.Last())
	}
	if err := f.s.CopyResult(); err != nil {
		t.Fatal(err)
	}
	if f.clip.Last() != "result text" {
		t.Errorf("clipboard = %q", f.clip.Last())
	}
	if snap := f.s.Snapshot(); snap.Message.Text != "Copied to clipboard" || snap.Message.IsError {
		t.Errorf("Message = %+v", snap.Message)
	}

	f.clip.Err = errors.New("no display")
	if err := f.s.CopyResult(); err == nil {
		t.Error("expected copy error")
	}
	if snap := f.s.Snapshot(); snap.Message.Text != "Copy failed" || !snap.Message.IsError {
		t.Errorf("Message = %+v", snap.Message)
	}
}

func TestUILanguage(t *testing.T) {
	f := newFixture(t, testutil.NewMockTranslator(nil), func(c *Config) { c.UILanguage = "zh-CN" })

	if f.s.Snapshot().UILanguage != "zh" {
		t.Errorf("UILanguage = %q", f.s.Snapshot().UILanguage)
	}
	f.s.SetUILanguage("de")
	if got := f.s.Locale().T(locale.Translate); got != "Übersetzen" {
		t.Errorf("T(translate) = %q", got)
	}
}

func TestOnUpdate(t *testing.T) {
	f := newFixture(t, testutil.NewMockTranslator(nil), nil)

	updates := make(chan Snapshot, 16)
	f.s.SetOnUpdate(func(s Snapshot) {
		select {
		case updates <- s:
		default:
		}
	})

	f.s.Edit("abc")
	select {
	case snap := <-updates:
		if snap.Source.Content != "abc" {
			t.Errorf("update carried %q", snap.Source.Content)
		}
	case <-time.After(waitTimeout):
		t.Fatal("no update after edit")
	}
}

func TestCloseCancelsTimers(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	f := newFixture(t, mock, nil)

	f.s.Edit("Hello")
	f.s.Close()
	f.clk.Advance(2 * debounce.DefaultDelay)

	if mock.CallCount() != 0 {
		t.Error("timer fired after Close")
	}
	if f.clk.Pending() != 0 {
		t.Errorf("%d timers alive after Close", f.clk.Pending())
	}
}

func TestNewRequiresTranslator(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Error("expected error without translator")
	}
}

func TestDebounceTimerSubmitsCommittedText(t *testing.T) {
	mock := testutil.NewMockTranslator(map[string]string{"Hello": "Hallo"})
	f := newFixture(t, mock, nil)

	f.s.Paste("Hello")
	if mock.CallCount() != 0 {
		t.Fatal("submitted before the debounce delay")
	}
	f.clk.Advance(debounce.DefaultDelay)
	snap := f.waitSettled(t)

	if snap.State != job.Succeeded || snap.Result != "Hallo" {
		t.Errorf("State = %v, Result = %q", snap.State, snap.Result)
	}
	if calls := mock.Calls(); len(calls) != 1 || calls[0].Text != "Hello" {
		t.Errorf("calls = %+v", calls)
	}
}

func TestOutcomeMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    string
		isError bool
	}{
		{"success", nil, "Translation successful", false},
		{"application error", &translation.ApplicationError{Code: 500}, "Translation failed", true},
		{"wrapped application error", fmt.Errorf("proxy: %w", &translation.ApplicationError{Code: 403}), "Translation failed", true},
		{"transport error", &translation.TransportError{Op: "post", Err: errors.New("connection refused")}, "Error during translation", true},
		{"other error", errors.New("boom"), "Error during translation", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockTranslator(nil)
			if tt.err != nil {
				mock.Errors["Hello"] = tt.err
			}
			f := newFixture(t, mock, nil)

			f.s.Edit("Hello")
			f.clk.Advance(debounce.DefaultDelay)
			snap := f.waitSettled(t)

			if snap.Message.Text != tt.want || snap.Message.IsError != tt.isError {
				t.Errorf("Message = %+v, want %q (error %v)", snap.Message, tt.want, tt.isError)
			}
		})
	}
}

func TestLockedSessionIgnoresEdits(t *testing.T) {
	mock := testutil.NewMockTranslator(nil)
	f := newFixture(t, mock, func(c *Config) { c.Passphrase = "secret" })

	f.s.Edit("Hello")
	f.s.Paste("World")
	if src := f.s.Snapshot().Source; src.Content != "" || src.Length != 0 {
		t.Errorf("locked session source = %+v, want empty", src)
	}

	if err := f.s.Unlock("secret"); err != nil {
		t.Fatal(err)
	}
	f.s.Edit("Hello")
	if got := f.s.Snapshot().Source.Content; got != "Hello" {
		t.Errorf("source after unlock = %q", got)
	}
}
