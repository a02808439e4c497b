package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level represents logging severity.
type Level int

const (
	// LevelDebug for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo for general informational messages.
	LevelInfo
	// LevelWarn for warning messages.
	LevelWarn
	// LevelError for error messages.
	LevelError
	// LevelNone disables all logging.
	LevelNone
)

// Logger is the logging interface used throughout the retrieval engine.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// DefaultLogger implements Logger using Go's standard log package.
type DefaultLogger struct {
	logger *log.Logger
	level  Level
}

// NewDefaultLogger creates a new default logger writing to stderr.
func NewDefaultLogger(level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(os.Stderr, "[smartborrow] ", log.LstdFlags),
		level:  level,
	}
}

// NewCustomLogger creates a logger with custom output.
func NewCustomLogger(out io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(out, "[smartborrow] ", log.LstdFlags),
		level:  level,
	}
}

// Debug logs debug messages.
func (l *DefaultLogger) Debug(format string, v ...any) {
	if l.level <= LevelDebug {
		l.logger.Printf("[DEBUG] "+format, v...)
	}
}

// Info logs informational messages.
func (l *DefaultLogger) Info(format string, v ...any) {
	if l.level <= LevelInfo {
		l.logger.Printf("[INFO] "+format, v...)
	}
}

// Warn logs warning messages.
func (l *DefaultLogger) Warn(format string, v ...any) {
	if l.level <= LevelWarn {
		l.logger.Printf("[WARN] "+format, v...)
	}
}

// Error logs error messages.
func (l *DefaultLogger) Error(format string, v ...any) {
	if l.level <= LevelError {
		l.logger.Printf("[ERROR] "+format, v...)
	}
}

// NoOpLogger is a logger that discards everything.
type NoOpLogger struct{}

// Debug does nothing.
func (l *NoOpLogger) Debug(format string, v ...any) {}

// Info does nothing.
func (l *NoOpLogger) Info(format string, v ...any) {}

// Warn does nothing.
func (l *NoOpLogger) Warn(format string, v ...any) {}

// Error does nothing.
func (l *NoOpLogger) Error(format string, v ...any) {}

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// ParseLevel converts a level name into a Level. Unknown names map to LevelInfo.
func ParseLevel(name string) Level {
	switch name {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	case "none", "NONE", "disable":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Package-level logger (default is DefaultLogger with info level).
var defaultLogger Logger = NewDefaultLogger(LevelInfo)

// SetDefaultLogger sets the package-level logger.
// This allows callers to enable logging globally without passing logger objects around.
func SetDefaultLogger(logger Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the current package-level logger.
func GetDefaultLogger() Logger {
	return defaultLogger
}

// SetLevel creates and sets a default logger with the specified log level.
func SetLevel(level Level) {
	defaultLogger = NewDefaultLogger(level)
}

// Debug logs a debug message using the package-level logger.
func Debug(format string, v ...any) {
	defaultLogger.Debug(format, v...)
}

// Info logs an informational message using the package-level logger.
func Info(format string, v ...any) {
	defaultLogger.Info(format, v...)
}

// Warn logs a warning message using the package-level logger.
func Warn(format string, v ...any) {
	defaultLogger.Warn(format, v...)
}

// Error logs an error message using the package-level logger.
func Error(format string, v ...any) {
	defaultLogger.Error(format, v...)
}
