// Package notify shows one transient message at a time. Each message clears
// itself after DisplayDuration unless a newer message replaced it first.
package notify

import (
	"sync"
	"time"

	"codeberg.org/snonux/libretranslator/internal/clock"
)

// DisplayDuration is how long a message stays visible
const DisplayDuration = 2000 * time.Millisecond

// Message is a user-facing outcome
type Message struct {
	Text      string
	IsError   bool
	ExpiresAt time.Time
}

// Board holds the visible message
type Board struct {
	mu       sync.Mutex
	clock    clock.Clock
	current  *Message
	gen      uint64
	timers   map[uint64]clock.Timer
	onChange func(*Message)
	closed   bool
}

// NewBoard creates an empty board. A nil clock uses the wall clock.
func NewBoard(c clock.Clock) *Board {
	if c == nil {
		c = clock.Real
	}
	return &Board{clock: c, timers: make(map[uint64]clock.Timer)}
}

// SetOnChange registers a callback for every change of the visible message.
// It receives nil when the board clears.
func (b *Board) SetOnChange(f func(*Message)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = f
}

// Info shows a non-error message
func (b *Board) Info(text string) Message {
	return b.post(text, false)
}

// Error shows an error message
func (b *Board) Error(text string) Message {
	return b.post(text, true)
}

func (b *Board) post(text string, isErr bool) Message {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return Message{Text: text, IsError: isErr}
	}
	b.gen++
	gen := b.gen
	msg := &Message{Text: text, IsError: isErr, ExpiresAt: b.clock.Now().Add(DisplayDuration)}
	b.current = msg
	b.timers[gen] = b.clock.AfterFunc(DisplayDuration, func() { b.expire(gen) })
	onChange := b.onChange
	b.mu.Unlock()

	if onChange != nil {
		onChange(msg)
	}
	return *msg
}

// expire clears the board only if the message posted as gen is still shown
func (b *Board) expire(gen uint64) {
	b.mu.Lock()
	delete(b.timers, gen)
	if b.closed || gen != b.gen || b.current == nil {
		b.mu.Unlock()
		return
	}
	b.current = nil
	onChange := b.onChange
	b.mu.Unlock()

	if onChange != nil {
		onChange(nil)
	}
}

// Current returns the visible message, if any
func (b *Board) Current() (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Message{}, false
	}
	return *b.current, true
}

// Close stops all expiry timers and drops the visible message
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for gen, t := range b.timers {
		t.Stop()
		delete(b.timers, gen)
	}
	b.current = nil
	b.closed = true
}
