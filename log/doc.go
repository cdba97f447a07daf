// Package log is a small structured logging layer over [log/slog].
//
// A [Logger] is an immutable value configured with functional options at
// creation time:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.TraceContext(ctx, "lowered block", slog.Int("steps", 3))
//
// Every level has a context-aware and a context-free method. The context-free
// variants use [DefaultContextProvider].
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and
// [LevelError]. Trace sits below slog's Debug and is used by the parser,
// lowering engine and runtime to report their steps.
//
// Output is JSON ([FormatJSON], default) or key=value text ([FormatText]).
// With [WithPretty] both are colorized and unquoted.
//
// The package-level functions ([Info], [ErrorContext], ...) write through a
// shared default logger that the command line reconfigures with [Config].
package log
