package errors

import (
	"sync"
)

// MultiError collects multiple errors, it is safe for concurrent use.
type MultiError interface {
	error
	Len() int
	Append(errs ...error)
	AppendWithPrefix(err error, prefix string)
	AppendWithPrefixf(err error, format string, a ...any)
	WrappedErrors() []error
	Unwrap() []error
	ErrorOrNil() error
}

type multiErrorGetter interface {
	WrappedErrors() []error
}

type multiError struct {
	lock   *sync.Mutex
	errors []error
}

type prefixedError struct {
	prefix string
	err    error
}

func NewMultiError() MultiError {
	return &multiError{lock: &sync.Mutex{}}
}

func (e *multiError) Len() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return len(e.errors)
}

func (e *multiError) Error() string {
	return Format(e)
}

func (e *multiError) Unwrap() []error {
	return e.WrappedErrors()
}

func (e *multiError) WrappedErrors() []error {
	e.lock.Lock()
	defer e.lock.Unlock()
	out := make([]error, len(e.errors))
	copy(out, e.errors)
	return out
}

// Append adds errors, nil values are ignored and nested multi-errors are flattened.
func (e *multiError) Append(errs ...error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	for _, err := range errs {
		if err == nil {
			continue
		}
		if v, ok := err.(MultiError); ok { // nolint: errorlint
			e.errors = append(e.errors, v.WrappedErrors()...)
		} else {
			e.errors = append(e.errors, err)
		}
	}
}

func (e *multiError) AppendWithPrefix(err error, prefix string) {
	if err == nil {
		return
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	e.errors = append(e.errors, &prefixedError{prefix: prefix, err: err})
}

func (e *multiError) AppendWithPrefixf(err error, format string, a ...any) {
	e.AppendWithPrefix(err, sprintf(format, a...))
}

// ErrorOrNil returns nil if there is no error.
// If there is only one error, it is returned directly.
func (e *multiError) ErrorOrNil() error {
	switch e.Len() {
	case 0:
		return nil
	case 1:
		return e.WrappedErrors()[0]
	default:
		return e
	}
}

func (e *prefixedError) Error() string {
	return Format(e)
}

func (e *prefixedError) Unwrap() error {
	return e.err
}

// PrefixError returns an error with the prefix, the error is printed as an indented bullet.
func PrefixError(err error, prefix string) error {
	return &prefixedError{prefix: prefix, err: err}
}

// PrefixErrorf is a formatted version of the PrefixError.
func PrefixErrorf(err error, format string, a ...any) error {
	return PrefixError(err, sprintf(format, a...))
}
