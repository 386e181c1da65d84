package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure so the driving adapter can map it
// to a user-visible status.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindUpstreamTimeout
	KindUpstreamError
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUpstreamTimeout:
		return "upstream_timeout"
	case KindUpstreamError:
		return "upstream_error"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against a *Error of the matching kind.
var (
	ErrNotFound        = errors.New("not found")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrUpstreamError   = errors.New("upstream error")
	ErrInvalidInput    = errors.New("invalid input")
)

// Error is the typed failure returned by the catalog client, the
// completion gateway and the orchestrator.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.sentinel().Error()
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.sentinel()
	return s != nil && target == s
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindUpstreamTimeout:
		return ErrUpstreamTimeout
	case KindUpstreamError:
		return ErrUpstreamError
	case KindInvalidInput:
		return ErrInvalidInput
	default:
		return nil
	}
}

// NotFound reports that the catalog has no match. message is the
// catalog's own explanation, e.g. "Movie not found!".
func NotFound(op, message string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

func UpstreamTimeout(op string, err error) *Error {
	return &Error{Kind: KindUpstreamTimeout, Op: op, Err: err}
}

func UpstreamError(op string, err error) *Error {
	return &Error{Kind: KindUpstreamError, Op: op, Err: err}
}

func InvalidInput(op, message string) *Error {
	return &Error{Kind: KindInvalidInput, Op: op, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
