package interp

import (
	"errors"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
)

var (
	errNil         = errors.New("value is nil")
	errNotIterable = errors.New("value is not iterable")
)

// bind destructures v into scope according to p.
func (e *evaluator) bind(p block.Pattern, v any, scope map[string]any) error {
	return e.bindValue(p, v, true, scope)
}

// bindValue binds v, which is undefined unless defined is set. An undefined
// value binds as nil.
func (e *evaluator) bindValue(
	p block.Pattern,
	v any,
	defined bool,
	scope map[string]any,
) error {
	switch p.Kind {
	case block.PatternIdent:
		scope[p.Name] = v

		return nil

	case block.PatternObject:
		if !defined || v == nil {
			return destructureError(p, v, errNil)
		}

		for _, prop := range p.Props {
			val, ok := property(v, prop.Key)

			if err := e.bindEntry(*prop.Value, prop.Default, val, ok, scope); err != nil {
				return err
			}
		}

		if p.Rest != nil {
			used := make([]string, len(p.Props))
			for i, prop := range p.Props {
				used[i] = prop.Key
			}

			return e.bindValue(*p.Rest, remaining(v, used), true, scope)
		}

		return nil

	case block.PatternArray:
		if !defined || v == nil {
			return destructureError(p, v, errNil)
		}

		elems, ok := elements(v)
		if !ok {
			return destructureError(p, v, errNotIterable)
		}

		for i, el := range p.Elems {
			if el.Pattern == nil {
				continue
			}

			var val any
			if i < len(elems) {
				val = elems[i]
			}

			if err := e.bindEntry(*el.Pattern, el.Default, val, i < len(elems), scope); err != nil {
				return err
			}
		}

		if p.Rest != nil {
			rest := []any{}
			if len(p.Elems) < len(elems) {
				rest = append(rest, elems[len(p.Elems):]...)
			}

			return e.bindValue(*p.Rest, rest, true, scope)
		}

		return nil

	default:
		return destructureError(p, v, errors.New("unknown pattern kind "+p.Kind.String()))
	}
}

// bindEntry binds one property or element, evaluating def in scope when the
// value is undefined.
func (e *evaluator) bindEntry(
	p block.Pattern,
	def *block.Expr,
	v any,
	defined bool,
	scope map[string]any,
) error {
	if !defined && def != nil {
		val, err := e.expr(*def, scope)
		if err != nil {
			return err
		}

		v, defined = val, true
	}

	return e.bindValue(p, v, defined, scope)
}

func destructureError(p block.Pattern, v any, cause error) error {
	return ErrDestructure.At(p.Pos).With(
		slog.String("pattern", p.String()),
		slog.String("value", FormatResult(v)),
	).Wrap(cause)
}

// property looks up key in v. Maps with string keys and exported struct
// fields are searched; a field matches key or key with its first letter
// upper-cased. The length of a string or slice is its "length" property.
func property(v any, key string) (any, bool) {
	if m, ok := v.(map[string]any); ok {
		val, ok := m[key]

		return val, ok
	}

	rv := indirect(reflect.ValueOf(v))

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		val := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}

		return val.Interface(), true

	case reflect.Struct:
		if f, ok := field(rv, key); ok {
			return f.Interface(), true
		}

	case reflect.String:
		if key == "length" {
			return utf8.RuneCountInString(rv.String()), true
		}

	case reflect.Slice, reflect.Array:
		if key == "length" {
			return rv.Len(), true
		}
	}

	return nil, false
}

func field(rv reflect.Value, key string) (reflect.Value, bool) {
	for _, name := range []string{key, exportedName(key)} {
		sf, ok := rv.Type().FieldByName(name)
		if ok && sf.IsExported() {
			return rv.FieldByIndex(sf.Index), true
		}
	}

	return reflect.Value{}, false
}

func exportedName(key string) string {
	r, size := utf8.DecodeRuneInString(key)

	return string(unicode.ToUpper(r)) + key[size:]
}

// remaining returns the properties of v whose keys are not in used.
func remaining(v any, used []string) map[string]any {
	out := map[string]any{}
	rv := indirect(reflect.ValueOf(v))

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}

		iter := rv.MapRange()
		for iter.Next() {
			if k := iter.Key().String(); !slices.Contains(used, k) {
				out[k] = iter.Value().Interface()
			}
		}

	case reflect.Struct:
		for i := range rv.NumField() {
			sf := rv.Type().Field(i)
			if !sf.IsExported() || slices.Contains(used, sf.Name) ||
				slices.Contains(used, strings.ToLower(sf.Name[:1])+sf.Name[1:]) {
				continue
			}

			out[sf.Name] = rv.Field(i).Interface()
		}
	}

	return out
}

// elements returns the elements of an iterable v: a slice, an array, a
// [List] or a string, whose elements are its characters.
func elements(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case List:
		return s, true
	case string:
		out := make([]any, 0, len(s))
		for _, r := range s {
			out = append(out, string(r))
		}

		return out, true
	}

	rv := indirect(reflect.ValueOf(v))

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}

		return out, true
	}

	return nil, false
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}

	return rv
}
