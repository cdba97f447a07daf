package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Palette used by the pretty handler. Color output is disabled by the color
// package itself when the process is not attached to a terminal.
var (
	keyColor    = color.New(color.FgHiBlack)
	stringColor = color.New(color.FgCyan)
	numberColor = color.New(color.FgYellow)
	trueColor   = color.New(color.FgGreen)
	falseColor  = color.New(color.FgRed)
	timeColor   = color.New(color.FgBlue)
	durColor    = color.New(color.FgMagenta)
	levelColors = map[Level]*color.Color{
		LevelTrace: color.New(color.FgHiBlack),
		LevelDebug: color.New(color.FgBlue),
		LevelInfo:  color.New(color.FgGreen),
		LevelWarn:  color.New(color.FgYellow),
		LevelError: color.New(color.FgRed, color.Bold),
	}
)

// prettyHandler writes either one colorized key=value line per record or an
// indented, colorized JSON-like object per record.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
	json   bool
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	json bool,
) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, json: json}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// qualify prefixes attribute keys with the open groups.
func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}

	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, len(attrs))

	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = append(fields, h.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		src := r.Source()
		if src != nil && src.File != "" {
			fields = append(fields, slog.String(
				slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	var recordAttrs []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		recordAttrs = append(recordAttrs, a)

		return true
	})

	fields = append(fields, h.qualify(recordAttrs)...)

	buf := new(bytes.Buffer)
	if h.json {
		h.writeObject(buf, fields)
	} else {
		h.writeLine(buf, fields)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// replace applies the configured ReplaceAttr to top-level attributes.
func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, fields []slog.Attr) {
	for _, a := range fields {
		if a.Equal(slog.Attr{}) {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(keyColor.Sprint(a.Key))
		buf.WriteByte('=')
		buf.WriteString(formatValue(a.Value))
	}
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, fields []slog.Attr) {
	buf.WriteString("{")

	first := true

	for _, a := range fields {
		if a.Equal(slog.Attr{}) {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.WriteString("\n  ")
		buf.WriteString(keyColor.Sprint(a.Key))
		buf.WriteString(": ")
		buf.WriteString(formatValue(a.Value))
	}

	buf.WriteString("\n}")
}

func formatValue(v slog.Value) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		return stringColor.Sprint(v.String())

	case slog.KindInt64:
		return numberColor.Sprint(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return numberColor.Sprint(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return numberColor.Sprint(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return trueColor.Sprint("true")
		}

		return falseColor.Sprint("false")

	case slog.KindDuration:
		return durColor.Sprint(v.Duration().String())

	case slog.KindTime:
		return timeColor.Sprint(v.Time().Format(time.RFC3339))

	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, keyColor.Sprint(a.Key)+"="+formatValue(a.Value))
		}

		return "{" + strings.Join(parts, " ") + "}"

	default:
		if l, ok := v.Any().(slog.Level); ok {
			c, ok := levelColors[Level(l)]
			if !ok {
				c = stringColor
			}

			return c.Sprint(strings.ToUpper(Level(l).String()))
		}

		return stringColor.Sprint(fmt.Sprint(v.Any()))
	}
}
