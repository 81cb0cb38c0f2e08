package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies terminating failures so main can map them to
// exit codes and the handler can attach the right suggestion.
type ErrorType int

const (
	// ErrTypeUnknown is the fallback for unclassified errors.
	ErrTypeUnknown ErrorType = iota
	// ErrTypePrecondition covers failures detected before any work starts,
	// e.g. no writable install path could be determined.
	ErrTypePrecondition
	// ErrTypeNetwork covers transport failures and non-2xx responses from
	// the release index or archive endpoints.
	ErrTypeNetwork
	// ErrTypeParse covers malformed semantic versions or constraint ranges.
	ErrTypeParse
	// ErrTypeInteractive covers selector failures: no terminal, user abort.
	ErrTypeInteractive
	// ErrTypeFilesystem covers install-target write and permission failures.
	ErrTypeFilesystem
)

// InstallError is the single error shape that crosses package boundaries
// on the fatal path. Cache-persist warnings never become one of these.
type InstallError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
}

func (e *InstallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap supports errors.Is and errors.As.
func (e *InstallError) Unwrap() error {
	return e.Cause
}

// WithSuggestion attaches a remediation hint shown by the handler.
func (e *InstallError) WithSuggestion(suggestion string) *InstallError {
	e.Suggestion = suggestion
	return e
}

// New creates an InstallError without a cause.
func New(errType ErrorType, message string) *InstallError {
	return &InstallError{Type: errType, Message: message}
}

// Wrap creates an InstallError wrapping an underlying cause.
func Wrap(errType ErrorType, message string, cause error) *InstallError {
	return &InstallError{Type: errType, Message: message, Cause: cause}
}

// TypeOf reports the classified type of err, or ErrTypeUnknown for
// errors produced outside this package.
func TypeOf(err error) ErrorType {
	var ie *InstallError
	if errors.As(err, &ie) {
		return ie.Type
	}
	return ErrTypeUnknown
}
