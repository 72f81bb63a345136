package usblog

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Component identifies a subsystem for log filtering.
type Component string

// Stack component identifiers.
const (
	ComponentCore      Component = "core"
	ComponentEP0       Component = "ep0"
	ComponentTransfer  Component = "transfer"
	ComponentLifecycle Component = "lifecycle"
	ComponentLLD       Component = "lld"
	ComponentLoopback  Component = "loopback"
)

// Format specifies the output format for logging.
type Format int

// Log format options.
const (
	FormatText Format = iota // Text format (default)
	FormatJSON               // JSON format
)

var (
	// defaultLogger is the default logger used by the USB stack.
	defaultLogger *slog.Logger

	// level controls the minimum log level.
	level = new(slog.LevelVar)

	mutex sync.RWMutex
)

func init() {
	level.Set(slog.LevelWarn)
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetLevel sets the minimum log level for all stack logging.
func SetLevel(l slog.Level) {
	mutex.Lock()
	defer mutex.Unlock()
	level.Set(l)
}

// Level returns the current minimum log level.
func Level() slog.Level {
	mutex.RLock()
	defer mutex.RUnlock()
	return level.Level()
}

// SetLogger replaces the default logger with a custom logger.
func SetLogger(logger *slog.Logger) {
	mutex.Lock()
	defer mutex.Unlock()
	defaultLogger = logger
}

// SetFormat configures the default logger to use the specified format.
// The logger writes to os.Stderr and uses the current log level.
func SetFormat(format Format) {
	mutex.Lock()
	defer mutex.Unlock()
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		defaultLogger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	default:
		defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
}

// New creates a new text logger writing to w.
func New(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: level}
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Debug logs a debug message with the given component.
func Debug(c Component, msg string, args ...any) { emit(slog.LevelDebug, c, msg, args) }

// Info logs an info message with the given component.
func Info(c Component, msg string, args ...any) { emit(slog.LevelInfo, c, msg, args) }

// Warn logs a warning message with the given component.
func Warn(c Component, msg string, args ...any) { emit(slog.LevelWarn, c, msg, args) }

// Error logs an error message with the given component.
func Error(c Component, msg string, args ...any) { emit(slog.LevelError, c, msg, args) }

func emit(lvl slog.Level, c Component, msg string, args []any) {
	mutex.RLock()
	logger := defaultLogger
	mutex.RUnlock()
	logger.Log(nil, lvl, msg, append([]any{"component", string(c)}, args...)...)
}
