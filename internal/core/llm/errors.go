package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies gateway failures.
type ErrorKind string

const (
	KindAuthFailure     ErrorKind = "auth_failure"
	KindUnavailable     ErrorKind = "unavailable"
	KindInvalidResponse ErrorKind = "invalid_response"
)

var (
	ErrAuthFailure     = errors.New("llm: auth failure")
	ErrUnavailable     = errors.New("llm: unavailable")
	ErrInvalidResponse = errors.New("llm: invalid response")

	// ErrConfigMissing means no credential is configured for the provider.
	ErrConfigMissing = errors.New("llm: no credential configured")
)

// Error is a classified gateway failure.
type Error struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches the kind sentinels, so errors.Is(err, ErrUnavailable) works.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrAuthFailure:
		return e.Kind == KindAuthFailure
	case ErrUnavailable:
		return e.Kind == KindUnavailable
	case ErrInvalidResponse:
		return e.Kind == KindInvalidResponse
	}
	return false
}

func newError(kind ErrorKind, provider string, status int, cause error) *Error {
	return &Error{Kind: kind, Provider: provider, StatusCode: status, Cause: cause}
}

func invalidResponse(provider, format string, args ...interface{}) *Error {
	return newError(KindInvalidResponse, provider, 0, fmt.Errorf(format, args...))
}

// kindForStatus maps an HTTP status onto a kind. Non-auth rejections count
// as unavailable.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuthFailure
	default:
		return KindUnavailable
	}
}
