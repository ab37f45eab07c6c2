package notify

import (
	"sync"
	"testing"
	"time"

	"codeberg.org/snonux/libretranslator/internal/testutil"
)

func TestMessageExpires(t *testing.T) {
	clk := testutil.NewFakeClock()
	b := NewBoard(clk)

	msg := b.Info("Translation successful")
	if msg.IsError {
		t.Error("Info produced an error message")
	}
	if !msg.ExpiresAt.Equal(clk.Now().Add(DisplayDuration)) {
		t.Errorf("ExpiresAt = %v", msg.ExpiresAt)
	}

	clk.Advance(1999 * time.Millisecond)
	if _, ok := b.Current(); !ok {
		t.Fatal("message cleared early")
	}

	clk.Advance(time.Millisecond)
	if _, ok := b.Current(); ok {
		t.Error("message still visible after 2000ms")
	}
}

func TestNewerMessageOutlivesOlderTimer(t *testing.T) {
	clk := testutil.NewFakeClock()
	b := NewBoard(clk)

	b.Info("first")
	clk.Advance(1500 * time.Millisecond)
	b.Error("second")

	// The first message's timer fires here and must not clear "second"
	clk.Advance(600 * time.Millisecond)
	got, ok := b.Current()
	if !ok || got.Text != "second" || !got.IsError {
		t.Fatalf("Current() = %+v, %v", got, ok)
	}

	clk.Advance(1400 * time.Millisecond)
	if _, ok := b.Current(); ok {
		t.Error("second message did not expire")
	}
}

func TestOnChange(t *testing.T) {
	clk := testutil.NewFakeClock()
	b := NewBoard(clk)

	var mu sync.Mutex
	var seen []string
	b.SetOnChange(func(m *Message) {
		mu.Lock()
		defer mu.Unlock()
		if m == nil {
			seen = append(seen, "<clear>")
			return
		}
		seen = append(seen, m.Text)
	})

	b.Info("copied")
	clk.Advance(DisplayDuration)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != "copied" || seen[1] != "<clear>" {
		t.Errorf("seen = %v", seen)
	}
}

func TestClose(t *testing.T) {
	clk := testutil.NewFakeClock()
	b := NewBoard(clk)

	b.Info("a")
	b.Close()

	if clk.Pending() != 0 {
		t.Errorf("%d timers left after Close", clk.Pending())
	}
	if _, ok := b.Current(); ok {
		t.Error("message visible after Close")
	}
	b.Info("ignored")
	if _, ok := b.Current(); ok {
		t.Error("closed board accepted a message")
	}
}
