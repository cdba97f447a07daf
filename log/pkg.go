package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// DefaultContextProvider returns the context used by the logging functions
// and methods that do not take one.
var DefaultContextProvider = context.TODO

var (
	defaultMu  sync.RWMutex
	defaultLog = Make(os.Stderr)
)

// Default returns the package-level logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultLog
}

// Config reconfigures the package-level logger. Attributes previously added
// with [SetAttrs] are preserved.
func Config(opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultLog = defaultLog.Wrap(opts...).With(defaultAttrs...)
}

var defaultAttrs []slog.Attr

// SetAttrs replaces the attributes attached to every record written through
// the package-level logger.
func SetAttrs(attrs ...slog.Attr) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultAttrs = attrs
	defaultLog = defaultLog.Wrap().With(attrs...)
}

// TraceContext logs at [LevelTrace] using the package-level logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, callerSkip, LevelTrace, msg, attrs...)
}

// DebugContext logs at [LevelDebug] using the package-level logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, callerSkip, LevelDebug, msg, attrs...)
}

// Debug logs at [LevelDebug] using the package-level logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().logContext(DefaultContextProvider(), callerSkip, LevelDebug, msg, attrs...)
}

// InfoContext logs at [LevelInfo] using the package-level logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, callerSkip, LevelInfo, msg, attrs...)
}

// Info logs at [LevelInfo] using the package-level logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().logContext(DefaultContextProvider(), callerSkip, LevelInfo, msg, attrs...)
}

// WarnContext logs at [LevelWarn] using the package-level logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, callerSkip, LevelWarn, msg, attrs...)
}

// Warn logs at [LevelWarn] using the package-level logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().logContext(DefaultContextProvider(), callerSkip, LevelWarn, msg, attrs...)
}

// ErrorContext logs at [LevelError] using the package-level logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logContext(ctx, callerSkip, LevelError, msg, attrs...)
}

// Error logs at [LevelError] using the package-level logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().logContext(DefaultContextProvider(), callerSkip, LevelError, msg, attrs...)
}

// With returns the package-level logger with attrs added.
func With(attrs ...slog.Attr) Logger {
	return Default().With(attrs...)
}
