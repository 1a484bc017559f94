// Package errors is the error toolkit used across the repository.
// It keeps the standard library API (Is, As, Unwrap) and adds stack traces,
// multi-errors and a human-readable formatter.
package errors

import (
	stdErrors "errors"
	"fmt"

	pkgErrors "github.com/pkg/errors"
)

// StackTrace is the call stack captured when an error was created.
type StackTrace = pkgErrors.StackTrace

type stackTracer interface {
	StackTrace() pkgErrors.StackTrace
}

// New returns an error with the message and the current stack trace.
func New(message string) error {
	return pkgErrors.New(message)
}

// Errorf formats the message, supports the %w verb.
func Errorf(format string, a ...any) error {
	return pkgErrors.WithStack(fmt.Errorf(format, a...)) // nolint: goerr113
}

// Wrap returns an error with the message, the original error is kept as a cause.
func Wrap(err error, message string) error {
	return &wrappedError{msg: message, cause: pkgErrors.WithStack(err)}
}

// Wrapf is a formatted version of the Wrap.
func Wrapf(err error, format string, a ...any) error {
	return Wrap(err, fmt.Sprintf(format, a...))
}

// WithStack annotates the error with the current stack trace.
func WithStack(err error) error {
	return pkgErrors.WithStack(err)
}

func Is(err, target error) bool {
	return stdErrors.Is(err, target)
}

func As(err error, target any) bool {
	return stdErrors.As(err, target)
}

func Unwrap(err error) error {
	return stdErrors.Unwrap(err)
}

// wrappedError replaces the error message, but the original error is still reachable by Unwrap.
type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

func (e *wrappedError) StackTrace() StackTrace {
	var tracer stackTracer
	if As(e.cause, &tracer) {
		return tracer.StackTrace()
	}
	return nil
}
