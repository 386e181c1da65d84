package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestError_IsAndKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     Kind
		message  string
	}{
		{
			name:     "not found keeps catalog message",
			err:      NotFound("omdb", "Movie not found!"),
			sentinel: ErrNotFound,
			kind:     KindNotFound,
			message:  "omdb: Movie not found!",
		},
		{
			name:     "timeout wraps cause",
			err:      UpstreamTimeout("completion", context.DeadlineExceeded),
			sentinel: ErrUpstreamTimeout,
			kind:     KindUpstreamTimeout,
			message:  "completion: context deadline exceeded",
		},
		{
			name:     "upstream error survives fmt wrapping",
			err:      fmt.Errorf("service: %w", UpstreamError("omdb", errors.New("status 502"))),
			sentinel: ErrUpstreamError,
			kind:     KindUpstreamError,
			message:  "service: omdb: status 502",
		},
		{
			name:     "invalid input",
			err:      InvalidInput("", "title is required"),
			sentinel: ErrInvalidInput,
			kind:     KindInvalidInput,
			message:  "title is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.sentinel) {
				t.Fatalf("expected errors.Is(%v, %v)", tc.err, tc.sentinel)
			}
			if got := KindOf(tc.err); got != tc.kind {
				t.Fatalf("kind: got %v, want %v", got, tc.kind)
			}
			if got := tc.err.Error(); got != tc.message {
				t.Fatalf("message: got %q, want %q", got, tc.message)
			}
		})
	}
}

func TestError_DoesNotMatchOtherKinds(t *testing.T) {
	err := NotFound("omdb", "Movie not found!")
	for _, other := range []error{ErrUpstreamTimeout, ErrUpstreamError, ErrInvalidInput} {
		if errors.Is(err, other) {
			t.Fatalf("not found must not match %v", other)
		}
	}
	if errors.Is(UpstreamTimeout("x", context.DeadlineExceeded), context.Canceled) {
		t.Fatal("timeout must not match context.Canceled")
	}
	if !errors.Is(UpstreamTimeout("x", context.DeadlineExceeded), context.DeadlineExceeded) {
		t.Fatal("timeout should unwrap to its cause")
	}
}

func TestOutcomeOf(t *testing.T) {
	if got := OutcomeOf(nil); got != "ok" {
		t.Fatalf("got %q", got)
	}
	if got := OutcomeOf(NotFound("omdb", "x")); got != "not_found" {
		t.Fatalf("got %q", got)
	}
	if got := OutcomeOf(errors.New("boom")); got != "unknown" {
		t.Fatalf("got %q", got)
	}
}
