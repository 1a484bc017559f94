package log

import (
	"context"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LevelWriter is an io.Writer, each written line is logged as a message with the level.
type LevelWriter struct {
	logger Logger
	level  zapcore.Level
}

func (w *LevelWriter) Write(p []byte) (n int, err error) {
	ctx := context.Background()
	lines := strings.TrimRight(string(p), "\n")
	for _, msg := range strings.Split(lines, "\n") {
		switch w.level {
		case DebugLevel:
			w.logger.Debug(ctx, msg)
		case WarnLevel:
			w.logger.Warn(ctx, msg)
		case ErrorLevel:
			w.logger.Error(ctx, msg)
		default:
			w.logger.Info(ctx, msg)
		}
	}
	return len(p), nil
}

func (w *LevelWriter) Close() error {
	return w.logger.Sync()
}
