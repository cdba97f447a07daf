package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger is an immutable, concurrency-safe logger value.
// The zero value discards everything.
type Logger struct {
	*slog.Logger
	config
}

// Make creates a [Logger] writing to w with the default configuration
// overridden by opts.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// Wrap returns a new [Logger] using the receiver's configuration overridden
// by opts. Attributes added with [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := l.config
	if cfg.output == nil {
		cfg = makeConfig(nil)
	}

	cfg = apply(cfg, opts...)

	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// With returns a new [Logger] that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil || len(attrs) == 0 {
		return l
	}

	return Logger{
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
		config: l.config,
	}
}

// Level returns the minimum level.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the output format.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	return l.format
}

// Enabled reports whether a record at level would be written.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	if l.Logger == nil {
		return false
	}

	return l.Handler().Enabled(ctx, slog.Level(level))
}

// TraceContext logs at [LevelTrace].
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, callerSkip, LevelTrace, msg, attrs...)
}

// Trace logs at [LevelTrace].
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), callerSkip, LevelTrace, msg, attrs...)
}

// DebugContext logs at [LevelDebug].
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, callerSkip, LevelDebug, msg, attrs...)
}

// Debug logs at [LevelDebug].
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), callerSkip, LevelDebug, msg, attrs...)
}

// InfoContext logs at [LevelInfo].
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, callerSkip, LevelInfo, msg, attrs...)
}

// Info logs at [LevelInfo].
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), callerSkip, LevelInfo, msg, attrs...)
}

// WarnContext logs at [LevelWarn].
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, callerSkip, LevelWarn, msg, attrs...)
}

// Warn logs at [LevelWarn].
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), callerSkip, LevelWarn, msg, attrs...)
}

// ErrorContext logs at [LevelError].
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, callerSkip, LevelError, msg, attrs...)
}

// Error logs at [LevelError].
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), callerSkip, LevelError, msg, attrs...)
}

// callerSkip skips runtime.Callers, logContext and the exported method so the
// recorded PC belongs to the code that called the method.
const callerSkip = 3

func (l Logger) logContext(
	ctx context.Context,
	skip int,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	if l.Logger == nil {
		return
	}

	if ctx == nil {
		ctx = DefaultContextProvider()
	}

	if !l.Handler().Enabled(ctx, slog.Level(level)) {
		return
	}

	var pcs [1]uintptr

	runtime.Callers(skip, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.Handler().Handle(ctx, r)
}
