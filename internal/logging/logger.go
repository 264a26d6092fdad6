// Package logging provides a leveled logger over the standard log package.
package logging

import (
	"log"
	"strings"
)

// Level represents logging verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel maps a LOG_LEVEL value to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "DEBUG", "TRACE":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger provides leveled logging
type Logger struct {
	level  Level
	logger *log.Logger
}

// New creates a logger writing through the standard logger.
func New(level Level) *Logger {
	return &Logger{level: level, logger: log.Default()}
}

// WithLogger creates a logger writing to l.
func WithLogger(level Level, l *log.Logger) *Logger {
	return &Logger{level: level, logger: l}
}

// Level returns the configured verbosity.
func (l *Logger) Level() Level {
	return l.level
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, "[ERROR] ", format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, "[WARN] ", format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, "[INFO] ", format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, "[DEBUG] ", format, args...)
}

func (l *Logger) logf(level Level, prefix, format string, args ...interface{}) {
	if l.level >= level {
		l.logger.Printf(prefix+format, args...)
	}
}
