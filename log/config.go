package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Option applies a configuration option to config.
type Option func(config) config

// FormatTime formats a timestamp. An empty result omits the time attribute.
type FormatTime func(time.Time) string

const (
	// DefaultTimeLayout is used when no valid time layout is provided.
	DefaultTimeLayout = time.RFC3339

	// DefaultCaller is the default setting for including caller information.
	DefaultCaller = false

	// DefaultPretty is the default setting for colorized output.
	DefaultPretty = true
)

// config is copied by value into every Logger, so a Logger never observes
// changes made through another Logger.
type config struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

func makeConfig(w io.Writer, opts ...Option) config {
	return apply(WithDefaults(w)(config{}), opts...)
}

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

func (c config) handlerOptions() *slog.HandlerOptions {
	formatTime := c.formatTime
	if formatTime == nil {
		formatTime = makeFormatTimeFunc(DefaultTimeLayout)
	}

	return &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}

			switch a.Key {
			case slog.TimeKey:
				t, ok := a.Value.Any().(time.Time)
				if !ok {
					return a
				}

				s := formatTime(t)
				if s == "" {
					return slog.Attr{}
				}

				return slog.String(slog.TimeKey, s)

			case slog.LevelKey:
				if l, ok := a.Value.Any().(slog.Level); ok {
					return slog.String(
						slog.LevelKey,
						strings.ToUpper(Level(l).String()),
					)
				}
			}

			return a
		},
	}
}

// handler builds the slog.Handler described by c.
func (c config) handler() slog.Handler {
	out := c.output
	if out == nil {
		out = io.Discard
	}

	opts := c.handlerOptions()

	switch {
	case c.format == FormatJSON && c.pretty:
		return newPrettyHandler(out, opts, true)
	case c.format == FormatText && c.pretty:
		return newPrettyHandler(out, opts, false)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(out, opts)
	case c.format == FormatText:
		return slog.NewTextHandler(out, opts)
	default:
		return slog.DiscardHandler
	}
}

// WithDefaults resets every setting to its default and directs output to w
// ([io.Discard] if nil).
func WithDefaults(w io.Writer) Option {
	return func(config) config {
		if w == nil {
			w = io.Discard
		}

		return config{
			output:     w,
			formatTime: makeFormatTimeFunc(DefaultTimeLayout),
			level:      DefaultLevel,
			format:     DefaultFormat,
			caller:     DefaultCaller,
			pretty:     DefaultPretty,
		}
	}
}

// WithOutput sets the destination writer ([io.Discard] if nil).
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel sets the minimum level; records below it are discarded.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the timestamp layout.
//
// Named layouts from the [time] package are recognized case-insensitively
// ("RFC3339", "rfc3339nano", "Kitchen", ...) along with the short aliases
// "ms", "us" and "ns". Any other string is used verbatim with
// [time.Time.Format]. An empty layout, or "none", disables timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.formatTime = makeFormatTimeFunc(layout)

		return c
	}
}

// WithCaller controls whether the source location of the call is logged.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty controls colorized, unquoted output.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

var timeLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"rfc1123":     time.RFC1123,
	"rfc1123z":    time.RFC1123Z,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
	"ms":          time.StampMilli,
	"us":          time.StampMicro,
	"ns":          time.StampNano,
	"none":        "",
}

func makeFormatTimeFunc(layout string) FormatTime {
	key := strings.Map(
		func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}

			return -1
		},
		strings.ToLower(layout),
	)

	if named, ok := timeLayout[key]; ok {
		layout = named
	}

	if strings.TrimSpace(layout) == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
