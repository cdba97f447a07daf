package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Error is an error with an optional wrapped cause, source location and
// structured logging attributes. It implements [slog.LogValuer].
//
// Sentinels are declared with [NewError] and decorated per occurrence with
// [Error.With], [Error.At] and [Error.Wrap]. Each decorator returns a new
// value; decorated values still match their sentinel with [errors.Is].
type Error struct {
	msg    string
	err    error
	loc    fmt.Stringer
	attrs  []slog.Attr
	origin *Error
}

// NewError creates a sentinel error.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.origin = e

	return e
}

// WrapError returns err as an *Error, reusing the first *Error found in its
// chain.
func WrapError(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error formats as "<msg> at <loc>: <cause>", omitting absent parts.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.msg)

	if e.loc != nil {
		if b.Len() > 0 {
			b.WriteString(" ")
		}

		b.WriteString("at ")
		b.WriteString(e.loc.String())
	}

	if e.err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}

		b.WriteString(e.err.Error())
	}

	return b.String()
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.origin != nil && e.origin == t.origin
}

// Location returns the source location recorded with [Error.At], or nil.
func (e *Error) Location() fmt.Stringer { return e.loc }

// Attrs returns the structured attributes.
func (e *Error) Attrs() []slog.Attr { return e.attrs }

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.loc != nil {
		attrs = append(attrs, slog.String("at", e.loc.String()))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

func (e *Error) clone() *Error {
	c := *e
	c.attrs = e.attrs[:len(e.attrs):len(e.attrs)]

	return &c
}

// Wrap returns a copy of e with err as its cause.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = append(c.attrs, attrs...)

	return c
}

// At returns a copy of e located at loc. A loc reporting itself invalid
// through an IsValid method is ignored.
func (e *Error) At(loc fmt.Stringer) *Error {
	c := e.clone()
	c.loc = loc

	if v, ok := loc.(interface{ IsValid() bool }); ok && !v.IsValid() {
		c.loc = nil
	}

	return c
}
