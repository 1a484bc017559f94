// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCliLogger creates a logger for the command line.
//   - debug (only if verbose), info -> stdout
//   - warn, error                  -> stderr
//   - all levels                   -> log file, if any
func NewCliLogger(stdout io.Writer, stderr io.Writer, logFile *File, format LogFormat, verbose bool) Logger {
	var cores []zapcore.Core

	// Log to file
	if logFile != nil {
		cores = append(cores, fileCore(logFile))
	}

	// Log to stdout
	stdoutLevels := zapcore.LevelEnabler(zapcore.InfoLevel)
	if verbose {
		stdoutLevels = zapcore.DebugLevel
	}
	cores = append(cores, consoleCore(stdout, format, verbose, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return stdoutLevels.Enabled(l) && l < zapcore.WarnLevel
	})))

	// Log to stderr
	cores = append(cores, consoleCore(stderr, format, verbose, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	})))

	return loggerFromZapCore(zapcore.NewTee(cores...))
}

func consoleCore(w io.Writer, format LogFormat, verbose bool, levels zapcore.LevelEnabler) zapcore.Core {
	if format == LogFormatJSON {
		encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:     "time",
			LevelKey:    "level",
			MessageKey:  "message",
			EncodeLevel: zapcore.LowercaseLevelEncoder,
			EncodeTime:  zapcore.ISO8601TimeEncoder,
		})
		return zapcore.NewCore(encoder, zapcore.AddSync(w), levels)
	}

	// Level is printed only in the verbose mode
	config := zapcore.EncoderConfig{MessageKey: "message", ConsoleSeparator: "\t"}
	if verbose {
		config.LevelKey = "level"
		config.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	// Console output contains messages only, fields go to the log file
	return &messageOnlyCore{Core: zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w), levels)}
}

func fileCore(logFile *File) zapcore.Core {
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:     "time",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
		EncodeTime:  zapcore.ISO8601TimeEncoder,
	})
	return zapcore.NewCore(encoder, zapcore.AddSync(logFile.File()), zapcore.DebugLevel)
}

type messageOnlyCore struct {
	zapcore.Core
}

func (c *messageOnlyCore) With(_ []zapcore.Field) zapcore.Core {
	return c
}

func (c *messageOnlyCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *messageOnlyCore) Write(entry zapcore.Entry, _ []zapcore.Field) error {
	return c.Core.Write(entry, nil)
}
