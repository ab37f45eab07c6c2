package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"codeberg.org/snonux/libretranslator/internal/clock"
	"codeberg.org/snonux/libretranslator/internal/translation"
)

// MockTranslator records calls and answers from fixed tables. When Block is
// set, every call waits until Release is called (or ctx ends).
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	Block        bool

	mu      sync.Mutex
	calls   []translation.Request
	release chan struct{}
	started chan struct{}
}

// NewMockTranslator creates a mock that translates from the given table
func NewMockTranslator(translations map[string]string) *MockTranslator {
	if translations == nil {
		translations = make(map[string]string)
	}
	return &MockTranslator{
		Translations: translations,
		Errors:       make(map[string]error),
		release:      make(chan struct{}),
		started:      make(chan struct{}, 16),
	}
}

// Name returns the provider name
func (m *MockTranslator) Name() string { return "mock" }

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, req translation.Request) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	block := m.Block
	release := m.release
	m.mu.Unlock()

	select {
	case m.started <- struct{}{}:
	default:
	}

	if block {
		select {
		case <-release:
		case <-ctx.Done():
			return "", &translation.TransportError{Op: "mock", Err: ctx.Err()}
		}
	}

	if err, ok := m.Errors[req.Text]; ok {
		return "", err
	}
	if out, ok := m.Translations[req.Text]; ok {
		return out, nil
	}
	return fmt.Sprintf("mock translation of %s", req.Text), nil
}

// Started returns a channel that receives once per Translate call
func (m *MockTranslator) Started() <-chan struct{} {
	return m.started
}

// Release unblocks every waiting and future call
func (m *MockTranslator) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	select {
	case <-m.release:
	default:
		close(m.release)
	}
}

// Calls returns a copy of the recorded requests
func (m *MockTranslator) Calls() []translation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]translation.Request(nil), m.calls...)
}

// CallCount returns the number of Translate calls
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// FakeClock is a manual clock. Timers fire only from Advance, on the
// caller's goroutine.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	when    time.Time
	f       func()
	stopped bool
	fired   bool
}

// NewFakeClock starts at a fixed instant
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs every due timer in deadline order
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].when.Before(c.timers[j].when) })
		var next *fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && !t.when.After(target) {
				next = t
				break
			}
		}
		if next == nil {
			c.now = target
			c.compact()
			c.mu.Unlock()
			return
		}
		next.fired = true
		c.now = next.when
		c.mu.Unlock()

		next.f()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *FakeClock) compact() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.timers = live
}

// MockClipboard records written text and can be made to fail
type MockClipboard struct {
	mu      sync.Mutex
	Err     error
	written []string
}

// WriteAll records text unless Err is set
func (m *MockClipboard) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.written = append(m.written, text)
	return nil
}

// Last returns the most recently written text
func (m *MockClipboard) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.written) == 0 {
		return ""
	}
	return m.written[len(m.written)-1]
}
