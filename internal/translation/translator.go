package translation

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/libretranslator/internal/language"
)

// ErrEmptyInput is returned for text that is empty after trimming
var ErrEmptyInput = errors.New("empty input")

// Request is a single translation request
type Request struct {
	Text   string
	Source language.Code // language.Auto lets the endpoint detect it
	Target language.Code
}

// Translator translates text through a remote service
type Translator interface {
	// Translate returns the translated text. Failures are reported as
	// *ApplicationError or *TransportError.
	Translate(ctx context.Context, req Request) (string, error)

	// Name returns the provider name
	Name() string
}

// ApplicationError means the endpoint answered but did not signal success
type ApplicationError struct {
	Code    int
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("translation endpoint returned code %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("translation endpoint returned code %d", e.Code)
}

// TransportError means the endpoint could not be reached or its answer could not be read
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsApplicationError reports whether err carries an *ApplicationError
func IsApplicationError(err error) bool {
	var appErr *ApplicationError
	return errors.As(err, &appErr)
}

// IsTransportError reports whether err carries a *TransportError
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
