// Package clipboard copies text to and reads text from the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	cb "github.com/atotto/clipboard"
)

// ErrUnavailable wraps every failed clipboard operation
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer is the write side of a clipboard
type Writer interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	if cb.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return cb.WriteAll(text)
}

// System is the OS clipboard
var System Writer = systemClipboard{}

// Copy writes text to w. Failures wrap ErrUnavailable.
func Copy(w Writer, text string) error {
	if err := w.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Read returns the system clipboard text
func Read() (string, error) {
	if cb.Unsupported {
		return "", ErrUnavailable
	}
	text, err := cb.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return text, nil
}
