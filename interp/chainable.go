package interp

import (
	"fmt"
	"log/slog"
	"strings"
)

// Func is the callback passed to [Chainable] methods.
type Func func(any) (any, error)

// Chainable is implemented by every value that can be the source of a bind
// step.
//
// Chain calls fn with each wrapped value and flattens the chainables fn
// returns into one. Map wraps the values fn returns. Neither calls fn when
// there is nothing to unwrap.
type Chainable interface {
	Chain(fn Func) (any, error)
	Map(fn Func) (any, error)
}

var (
	_ Chainable = Option{}
	_ Chainable = Result{}
	_ Chainable = List(nil)
)

func mismatch(want string, got any) error {
	return ErrMismatch.With(
		slog.String("want", want),
		slog.String("got", typeName(got)),
	)
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case Option:
		return "option"
	case Result:
		return "result"
	case List:
		return "list"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Option holds either one value or nothing.
type Option struct {
	value any
	ok    bool
}

// Nothing is the empty [Option].
var Nothing = Option{}

// Some returns an Option holding v, which may be nil.
func Some(v any) Option { return Option{value: v, ok: true} }

// FromNullable returns [Nothing] for nil and [Some] of v otherwise.
func FromNullable(v any) Option {
	if v == nil {
		return Nothing
	}

	return Some(v)
}

// IsSome reports whether o holds a value.
func (o Option) IsSome() bool { return o.ok }

// Get returns the held value, or nil.
func (o Option) Get() any { return o.value }

// OrElse returns the held value, or def when o is empty.
func (o Option) OrElse(def any) any {
	if !o.ok {
		return def
	}

	return o.value
}

func (o Option) Chain(fn Func) (any, error) {
	if !o.ok {
		return o, nil
	}

	out, err := fn(o.value)
	if err != nil {
		return nil, err
	}

	next, ok := out.(Option)
	if !ok {
		return nil, mismatch("option", out)
	}

	return next, nil
}

func (o Option) Map(fn Func) (any, error) {
	if !o.ok {
		return o, nil
	}

	out, err := fn(o.value)
	if err != nil {
		return nil, err
	}

	return Some(out), nil
}

func (o Option) String() string {
	if !o.ok {
		return "nothing"
	}

	return "some(" + FormatResult(o.value) + ")"
}

// Result holds either a value or the reason a computation failed.
type Result struct {
	value  any
	reason any
	failed bool
}

// Ok returns a successful Result holding v.
func Ok(v any) Result { return Result{value: v} }

// Fail returns a failed Result.
func Fail(reason any) Result { return Result{reason: reason, failed: true} }

// IsOk reports whether r succeeded.
func (r Result) IsOk() bool { return !r.failed }

// Get returns the value of a successful Result, or nil.
func (r Result) Get() any { return r.value }

// Reason returns the reason of a failed Result, or nil.
func (r Result) Reason() any { return r.reason }

func (r Result) Chain(fn Func) (any, error) {
	if r.failed {
		return r, nil
	}

	out, err := fn(r.value)
	if err != nil {
		return nil, err
	}

	next, ok := out.(Result)
	if !ok {
		return nil, mismatch("result", out)
	}

	return next, nil
}

func (r Result) Map(fn Func) (any, error) {
	if r.failed {
		return r, nil
	}

	out, err := fn(r.value)
	if err != nil {
		return nil, err
	}

	return Ok(out), nil
}

func (r Result) String() string {
	if r.failed {
		return "fail(" + FormatResult(r.reason) + ")"
	}

	return "ok(" + FormatResult(r.value) + ")"
}

// List is an ordered sequence of values. Chain is flatMap.
type List []any

func (l List) Chain(fn Func) (any, error) {
	out := List{}

	for _, v := range l {
		r, err := fn(v)
		if err != nil {
			return nil, err
		}

		next, ok := r.(List)
		if !ok {
			return nil, mismatch("list", r)
		}

		out = append(out, next...)
	}

	return out, nil
}

func (l List) Map(fn Func) (any, error) {
	out := make(List, 0, len(l))

	for _, v := range l {
		r, err := fn(v)
		if err != nil {
			return nil, err
		}

		out = append(out, r)
	}

	return out, nil
}

func (l List) String() string {
	parts := make([]string, len(l))

	for i, v := range l {
		parts[i] = FormatResult(v)
	}

	return "list(" + strings.Join(parts, ", ") + ")"
}
