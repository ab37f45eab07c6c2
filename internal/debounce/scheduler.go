// Package debounce coalesces committed edits into one delayed translation
// trigger.
package debounce

import (
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/libretranslator/internal/clock"
)

// DefaultDelay is the pause after the last commit before translating
const DefaultDelay = 1000 * time.Millisecond

// Scheduler owns the single debounce timer of a session
type Scheduler struct {
	mu      sync.Mutex
	clock   clock.Clock
	delay   time.Duration
	enabled bool
	busy    func() bool
	fire    func(text string)

	timer  clock.Timer
	gen    uint64
	closed bool
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClock replaces the wall clock
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithDelay replaces DefaultDelay
func WithDelay(d time.Duration) Option {
	return func(s *Scheduler) { s.delay = d }
}

// WithBusy makes Arm a no-op while busy returns true
func WithBusy(busy func() bool) Option {
	return func(s *Scheduler) { s.busy = busy }
}

// New creates an enabled scheduler that calls fire with the last armed text
func New(fire func(text string), opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:   clock.Real,
		delay:   DefaultDelay,
		enabled: true,
		busy:    func() bool { return false },
		fire:    fire,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Arm restarts the delay for text. It does nothing while disabled, busy or
// stopped. Blank text cancels the armed timer without arming a new one. Arm
// reports whether a timer is now armed.
func (s *Scheduler) Arm(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.enabled || s.busy() {
		return false
	}

	s.cancelLocked()
	if strings.TrimSpace(text) == "" {
		return false
	}

	gen := s.gen
	s.timer = s.clock.AfterFunc(s.delay, func() { s.expire(gen, text) })
	return true
}

func (s *Scheduler) expire(gen uint64, text string) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.timer == nil {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.gen++
	fire := s.fire
	s.mu.Unlock()

	if fire != nil {
		fire(text)
	}
}

func (s *Scheduler) cancelLocked() bool {
	if s.timer == nil {
		return false
	}
	s.timer.Stop()
	s.timer = nil
	s.gen++
	return true
}

// Cancel drops the armed timer, if any
func (s *Scheduler) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked()
}

// Armed reports whether a timer is waiting to fire
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// SetEnabled toggles auto-translation. Disabling cancels the armed timer.
func (s *Scheduler) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
	if !enabled {
		s.cancelLocked()
	}
}

// Enabled reports the auto-translate flag
func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Stop cancels the timer for good. Later Arm calls are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.closed = true
}
