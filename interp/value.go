package interp

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
)

// FormatResult renders v the way it would be written in an expression:
// strings quoted, maps with sorted keys, and chainables by their
// constructor, as in some(1), fail("x") or list(1, 2).
func FormatResult(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case fmt.Stringer:
		return x.String()
	case string:
		return strconv.Quote(x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = FormatResult(e)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		parts := make([]string, 0, len(x))

		for _, k := range slices.Sorted(maps.Keys(x)) {
			key := k
			if !block.IsIdentifier(k) {
				key = strconv.Quote(k)
			}

			parts = append(parts, key+": "+FormatResult(x[k]))
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(v)
	}
}

// ParseValue parses a literal given on the command line. The text is read
// as a YAML flow value, so booleans, numbers, null, quoted strings,
// sequences and mappings are recognized; anything else, including the empty
// string, is returned as a string. Integers are returned as int when they
// fit.
func ParseValue(s string) any {
	if strings.TrimSpace(s) == "" {
		return s
	}

	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}

	if v == nil && !slices.Contains([]string{"null", "Null", "NULL", "~"}, strings.TrimSpace(s)) {
		return s
	}

	return normalize(v)
}

func normalize(v any) any {
	switch x := v.(type) {
	case uint64:
		if x <= math.MaxInt {
			return int(x)
		}
	case int64:
		return int(x)
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalize(e)
		}

		return out
	}

	return v
}
