package gate

import (
	"errors"
	"testing"
)

func TestNoPassphraseAlwaysOpen(t *testing.T) {
	g := New("")
	if !g.Open() || g.Required() {
		t.Errorf("Open() = %v, Required() = %v", g.Open(), g.Required())
	}
	if err := g.Unlock("anything"); err != nil {
		t.Errorf("Unlock() = %v", err)
	}
}

func TestUnlock(t *testing.T) {
	g := New("s3cret")
	if g.Open() {
		t.Fatal("gate open before Unlock")
	}

	if err := g.Unlock("wrong"); !errors.Is(err, ErrWrongPassphrase) {
		t.Errorf("Unlock(wrong) = %v", err)
	}
	if g.Open() {
		t.Error("mismatch opened the gate")
	}
	if err := g.Unlock(""); !errors.Is(err, ErrWrongPassphrase) {
		t.Errorf("Unlock(\"\") = %v", err)
	}

	if err := g.Unlock("s3cret"); err != nil {
		t.Fatalf("Unlock(correct) = %v", err)
	}
	if !g.Open() {
		t.Error("gate closed after correct passphrase")
	}
	if err := g.Unlock("wrong"); err != nil {
		t.Errorf("open gate should ignore later attempts, got %v", err)
	}
}
