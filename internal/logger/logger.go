// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). Output is produced by zap; the logger is
// safe for concurrent use.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// ParseLevel maps "off", "normal"/"info" and "verbose"/"debug" to a Level.
// Anything else is LevelNormal.
func ParseLevel(s string) Level {
	switch s {
	case "off", "quiet", "none":
		return LevelOff
	case "verbose", "debug":
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// disabled sits above every zap level, so nothing is enabled.
const disabled = zapcore.FatalLevel + 1

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
	base  *zap.Logger
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeCaller = zapcore.ShortCallerEncoder

	atom := zap.NewAtomicLevelAt(zapLevel(level))
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(out), atom)
	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &Logger{
		level: atom,
		sugar: base.Sugar(),
		base:  base,
	}
}

func zapLevel(level Level) zapcore.Level {
	switch level {
	case LevelOff:
		return disabled
	case LevelVerbose:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(zapLevel(level))
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	switch l.level.Level() {
	case disabled:
		return LevelOff
	case zapcore.DebugLevel:
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// Sync flushes buffered output.
func (l *Logger) Sync() error { return l.base.Sync() }

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}
