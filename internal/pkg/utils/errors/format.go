package errors

import (
	"fmt"
	"strings"
)

const (
	Indent = "  "
	Bullet = "- "
)

type FormatOption func(c *formatConfig)

type formatConfig struct {
	withStack bool
}

// FormatWithStack appends the location where the error was created.
func FormatWithStack() FormatOption {
	return func(c *formatConfig) {
		c.withStack = true
	}
}

// Format converts the error to a human-readable, possibly multi-line, string.
// Nested errors are printed as an indented bullet list.
func Format(err error, opts ...FormatOption) string {
	c := formatConfig{}
	for _, o := range opts {
		o(&c)
	}
	return c.format(err)
}

func (c formatConfig) format(err error) string {
	// nolint: errorlint
	switch v := err.(type) {
	case *prefixedError:
		return formatPrefix(v.prefix) + "\n" + c.list(subErrors(v.err))
	case multiErrorGetter:
		return c.list(v.WrappedErrors())
	default:
		return c.message(err)
	}
}

func (c formatConfig) list(errs []error) string {
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, Bullet+strings.ReplaceAll(c.format(err), "\n", "\n"+Indent))
	}
	return strings.Join(lines, "\n")
}

func (c formatConfig) message(err error) string {
	msg := err.Error()
	if !c.withStack {
		return msg
	}

	var tracer stackTracer
	if v, ok := err.(stackTracer); ok { // nolint: errorlint
		tracer = v
	} else if !As(err, &tracer) {
		return msg
	}

	if trace := tracer.StackTrace(); len(trace) > 0 {
		return fmt.Sprintf("%s [%s:%d]", msg, trace[0], trace[0])
	}
	return msg
}

func subErrors(err error) []error {
	if v, ok := err.(multiErrorGetter); ok { // nolint: errorlint
		return v.WrappedErrors()
	}
	return []error{err}
}

func formatPrefix(prefix string) string {
	return strings.TrimRight(prefix, ".,: ") + ":"
}

func sprintf(format string, a ...any) string {
	return fmt.Sprintf(format, a...)
}
