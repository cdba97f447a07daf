package cli

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
)

// logFormat configures the logger format as a side effect of parsing, so
// errors reported by kong itself use the requested format.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"json"    enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp layout ('none' disables timestamps)."`
	Caller     bool      `default:"false"                           help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

func (f *logConfig) options() []log.Option {
	return []log.Option{
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	}
}

// start applies every parsed logger option, including those that do not
// configure the logger while parsing.
func (f *logConfig) start(ctx context.Context) {
	log.Config(f.options()...)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags found in args before kong parses them, so the
// logger is configured regardless of flag position. Scanning stops at "--".
//
// Flags are recognized as --log-NAME=VALUE, --log-NAME VALUE, and
// --[no-]log-NAME for the negatable booleans.
func (f *logConfig) scan(args []string) {
	var opts []log.Option

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		negated := strings.HasPrefix(arg, "--no-log-")

		name, ok := strings.CutPrefix(arg, "--log-")
		if negated {
			name, ok = strings.TrimPrefix(arg, "--no-log-"), true
		}

		if !ok {
			continue
		}

		name, value, assigned := strings.Cut(name, "=")

		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		switch name {
		case "level":
			f.Level = logLevel(next())
			opts = append(opts, log.WithLevel(log.ParseLevel(string(f.Level))))

		case "format":
			f.Format = logFormat(next())
			opts = append(opts, log.WithFormat(log.ParseFormat(string(f.Format))))

		case "time-layout":
			f.TimeLayout = next()
			opts = append(opts, log.WithTimeLayout(f.TimeLayout))

		case "caller":
			f.Caller = flagBool(negated, assigned, value)
			opts = append(opts, log.WithCaller(f.Caller))

		case "pretty":
			f.Pretty = flagBool(negated, assigned, value)
			opts = append(opts, log.WithPretty(f.Pretty))
		}
	}

	if len(opts) > 0 {
		log.Config(opts...)
	}
}

// flagBool interprets a boolean flag occurrence.
func flagBool(negated, assigned bool, value string) bool {
	if !assigned {
		return !negated
	}

	switch strings.ToLower(value) {
	case "false", "0", "no", "off":
		return negated
	default:
		return !negated
	}
}
