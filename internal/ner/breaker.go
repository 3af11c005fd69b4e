package ner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings controls when a failing recognizer is taken out of rotation.
type BreakerSettings struct {
	MinRequests      uint32
	FailureThreshold float64
	Timeout          time.Duration
}

// DefaultBreakerSettings trips after five calls with at least half failing and
// retries after a minute.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{MinRequests: 5, FailureThreshold: 0.5, Timeout: time.Minute}
}

// Breaker wraps a Recognizer with a circuit breaker. While open, calls fail fast
// with gobreaker.ErrOpenState and callers fall back to heuristics.
type Breaker struct {
	next Recognizer
	cb   *gobreaker.CircuitBreaker[[]string]
}

// NewBreaker wraps next.
func NewBreaker(name string, next Recognizer, cfg BreakerSettings, logger *slog.Logger) *Breaker {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        fmt.Sprintf("NER-%s", name),
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("recognizer circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &Breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]string](settings),
	}
}

// FindPersons delegates to the wrapped recognizer under breaker protection.
// A panic in the wrapped recognizer counts as a failure.
func (b *Breaker) FindPersons(ctx context.Context, text string) ([]string, error) {
	return b.cb.Execute(func() (names []string, err error) {
		defer func() {
			if p := recover(); p != nil {
				names, err = nil, fmt.Errorf("recognizer panicked: %v", p)
			}
		}()
		return b.next.FindPersons(ctx, text)
	})
}

// closed reports whether calls currently reach the wrapped recognizer.
func (b *Breaker) closed() bool {
	return b.cb.State() == gobreaker.StateClosed
}

// WithBreaker wraps the recognizer handed out by p in a single shared Breaker.
// Load errors from p are returned unchanged.
func WithBreaker(name string, p Provider, cfg BreakerSettings, logger *slog.Logger) Provider {
	return &breakerProvider{lazy: NewLazy(name, func() (Recognizer, error) {
		r, err := p.Recognizer()
		if err != nil {
			return nil, err
		}
		return NewBreaker(name, r, cfg, logger), nil
	})}
}

type breakerProvider struct {
	lazy *Lazy
}

func (p *breakerProvider) Recognizer() (Recognizer, error) {
	r, err := p.lazy.Recognizer()
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) && le.Cause != nil {
			var inner *LoadError
			if errors.As(le.Cause, &inner) {
				return nil, inner
			}
		}
		return nil, err
	}
	return r, nil
}
