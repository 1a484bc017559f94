// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

type Logger interface {
	// Debug logs message in the debug level, fields from the context are attached, see ContextWith.
	Debug(ctx context.Context, message string)
	// Info logs message in the info level, fields from the context are attached, see ContextWith.
	Info(ctx context.Context, message string)
	// Warn logs message in the warning level, fields from the context are attached, see ContextWith.
	Warn(ctx context.Context, message string)
	// Error logs message in the error level, fields from the context are attached, see ContextWith.
	Error(ctx context.Context, message string)

	Debugf(ctx context.Context, template string, args ...any)
	Infof(ctx context.Context, template string, args ...any)
	Warnf(ctx context.Context, template string, args ...any)
	Errorf(ctx context.Context, template string, args ...any)

	// With returns a logger with the fields attached to each message.
	With(fields ...zap.Field) Logger
	// WithComponent returns a logger with the component field, nested components are joined by a dot.
	WithComponent(component string) Logger

	DebugWriter() *LevelWriter
	InfoWriter() *LevelWriter
	WarnWriter() *LevelWriter
	ErrorWriter() *LevelWriter

	Sync() error
}

type ctxFieldsKey struct{}

// ContextWith returns a context carrying the log fields, they are attached to each message logged with the context.
func ContextWith(ctx context.Context, fields ...zap.Field) context.Context {
	existing, _ := ctx.Value(ctxFieldsKey{}).([]zap.Field)
	merged := make([]zap.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxFieldsKey{}, merged)
}

func fieldsFromContext(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxFieldsKey{}).([]zap.Field)
	return fields
}

// NewNopLogger returns a logger which discards all messages.
func NewNopLogger() Logger {
	return loggerFromZap(zap.NewNop(), "")
}
