// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"strings"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MemoryLogger keeps all messages in memory, it is used in tests.
type MemoryLogger struct {
	Logger
	logs *observer.ObservedLogs
}

func NewMemoryLogger() *MemoryLogger {
	core, logs := observer.New(zapcore.DebugLevel)
	return &MemoryLogger{Logger: loggerFromZapCore(core), logs: logs}
}

// AllMessages returns all messages, one per line, in the "LEVEL  message" form.
func (l *MemoryLogger) AllMessages() string {
	return l.messages(func(zapcore.Level) bool { return true })
}

func (l *MemoryLogger) InfoMessages() string {
	return l.messages(func(level zapcore.Level) bool { return level == InfoLevel })
}

func (l *MemoryLogger) WarnAndErrorMessages() string {
	return l.messages(func(level zapcore.Level) bool { return level >= WarnLevel })
}

// Fields returns context fields of all entries with the message.
func (l *MemoryLogger) Fields(message string) map[string]any {
	out := make(map[string]any)
	for _, entry := range l.logs.FilterMessage(message).All() {
		for k, v := range entry.ContextMap() {
			out[k] = v
		}
	}
	return out
}

func (l *MemoryLogger) Truncate() {
	l.logs.TakeAll()
}

func (l *MemoryLogger) messages(filter func(zapcore.Level) bool) string {
	var b strings.Builder
	for _, entry := range l.logs.All() {
		if filter(entry.Level) {
			b.WriteString(entry.Level.CapitalString())
			b.WriteString("  ")
			b.WriteString(entry.Message)
			b.WriteString("\n")
		}
	}
	return b.String()
}
