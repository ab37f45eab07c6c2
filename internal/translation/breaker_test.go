package translation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type scriptedTranslator struct {
	calls int32
	err   error
	out   string
}

func (s *scriptedTranslator) Name() string { return "scripted" }

func (s *scriptedTranslator) Translate(ctx context.Context, req Request) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

func TestBreakerTranslator_TripsOnTransportErrors(t *testing.T) {
	inner := &scriptedTranslator{err: &TransportError{Op: "post", Err: errors.New("connection refused")}}
	b := NewBreakerTranslator(inner, BreakerSettings{ConsecutiveFailures: 3, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		if _, err := b.Translate(context.Background(), Request{Text: "x", Target: "EN"}); !IsTransportError(err) {
			t.Fatalf("call %d: expected transport error, got %v", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	_, err := b.Translate(context.Background(), Request{Text: "x", Target: "EN"})
	if !IsTransportError(err) {
		t.Errorf("open breaker should surface a transport error, got %v", err)
	}
	if got := atomic.LoadInt32(&inner.calls); got != 3 {
		t.Errorf("inner calls = %d, want 3", got)
	}
}

func TestBreakerTranslator_IgnoresApplicationErrors(t *testing.T) {
	inner := &scriptedTranslator{err: &ApplicationError{Code: 500}}
	b := NewBreakerTranslator(inner, BreakerSettings{ConsecutiveFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 5; i++ {
		if _, err := b.Translate(context.Background(), Request{Text: "x", Target: "EN"}); !IsApplicationError(err) {
			t.Fatalf("call %d: expected application error, got %v", i, err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerTranslator_PassesThrough(t *testing.T) {
	inner := &scriptedTranslator{out: "Hallo"}
	b := NewBreakerTranslator(inner, DefaultBreakerSettings())

	out, err := b.Translate(context.Background(), Request{Text: "hello", Target: "DE"})
	if err != nil || out != "Hallo" {
		t.Errorf("Translate() = %q, %v", out, err)
	}
	if b.Name() != "scripted" {
		t.Errorf("Name() = %q", b.Name())
	}
}
