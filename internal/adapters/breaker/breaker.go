// Package breaker wraps the catalog client and completion gateway in
// circuit breakers so a failing upstream is rejected fast instead of
// holding every request for its full timeout.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/metrics"
)

// Settings configures one breaker.
type Settings struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// The breaker opens once MinRequests have been seen in the current
	// interval and the failure share reaches FailureRatio.
	MinRequests  uint32
	FailureRatio float64
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newBreaker[T any](s Settings, logger zerolog.Logger) *gobreaker.CircuitBreaker[T] {
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests || counts.Requests == 0 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= s.FailureRatio {
				logger.Warn().
					Str("breaker", s.Name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_ratio", ratio).
					Msg("opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
		IsSuccessful: isSuccessful,
	})
}

// isSuccessful keeps answers the upstream gave on purpose, and callers
// giving up, from counting against the upstream's health.
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	switch domain.KindOf(err) {
	case domain.KindNotFound, domain.KindInvalidInput:
		return true
	}
	return false
}

// execute runs fn through cb and turns breaker rejections into UpstreamError.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func execute[T any](cb *gobreaker.CircuitBreaker[T], logger zerolog.Logger, fn func() (T, error)) (T, error) {
	result, err := cb.Execute(fn)
	if err != nil && (errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)) {
		metrics.CircuitBreakerRejections.WithLabelValues(cb.Name()).Inc()
		logger.Warn().Str("breaker", cb.Name()).Err(err).Msg("request rejected")
		var zero T
		return zero, domain.UpstreamError(cb.Name(), fmt.Errorf("circuit breaker: %w", err))
	}
	return result, err
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
