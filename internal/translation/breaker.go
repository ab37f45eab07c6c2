package translation

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSettings tunes the circuit breaker
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker rejects calls before probing again
	OpenTimeout time.Duration
}

// DefaultBreakerSettings trips after 5 transport failures in a row and rejects for 30s
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
	}
}

// BreakerTranslator fails fast while the wrapped translator keeps failing at
// the transport level. Application errors do not count as failures.
type BreakerTranslator struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerTranslator wraps next with a circuit breaker
func NewBreakerTranslator(next Translator, settings BreakerSettings) *BreakerTranslator {
	if settings.ConsecutiveFailures == 0 {
		settings = DefaultBreakerSettings()
	}
	threshold := settings.ConsecutiveFailures

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !IsTransportError(err)
		},
	})

	return &BreakerTranslator{next: next, cb: cb}
}

// Name returns the wrapped provider name
func (b *BreakerTranslator) Name() string {
	return b.next.Name()
}

// State returns the breaker state ("closed", "half-open", "open")
func (b *BreakerTranslator) State() string {
	return b.cb.State().String()
}

// Translate runs the wrapped translator unless the breaker is open
func (b *BreakerTranslator) Translate(ctx context.Context, req Request) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, req)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return "", &TransportError{Op: "circuit breaker " + b.next.Name(), Err: err}
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
