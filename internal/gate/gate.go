// Package gate guards a session behind an optional passphrase.
package gate

import (
	"crypto/subtle"
	"errors"
	"sync"
)

// ErrWrongPassphrase is returned by Unlock on mismatch
var ErrWrongPassphrase = errors.New("wrong passphrase")

// Gate is open when no passphrase is configured or after a successful Unlock
type Gate struct {
	mu         sync.RWMutex
	passphrase string
	open       bool
}

// New creates a gate. An empty passphrase leaves it permanently open.
func New(passphrase string) *Gate {
	return &Gate{passphrase: passphrase, open: passphrase == ""}
}

// Required reports whether a passphrase is configured
func (g *Gate) Required() bool {
	return g.passphrase != ""
}

// Open reports whether the gate lets the session through
func (g *Gate) Open() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.open
}

// Unlock opens the gate when attempt matches. A mismatch leaves the gate as
// it was.
func (g *Gate) Unlock(attempt string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.open {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(attempt), []byte(g.passphrase)) != 1 {
		return ErrWrongPassphrase
	}
	g.open = true
	return nil
}
