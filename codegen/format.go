package codegen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
)

// FormatJSON writes node as JSON to w. A positive indent pretty-prints.
func FormatJSON(_ context.Context, w io.Writer, node lower.Node, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(ToMap(node), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(ToMap(node))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes node as YAML to w. Zero indent selects flow style.
func FormatYAML(ctx context.Context, w io.Writer, node lower.Node, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, ToMap(node), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// ToMap converts node to nested maps and slices of native values.
func ToMap(node lower.Node) map[string]any {
	switch n := node.(type) {
	case *lower.Expr:
		return withPos(map[string]any{
			"kind":   "expr",
			"source": n.Source,
		}, n.Pos)

	case *lower.Invoke:
		return map[string]any{
			"kind":     "invoke",
			"method":   n.Method.String(),
			"receiver": ToMap(n.Receiver),
			"callback": ToMap(n.Callback),
		}

	case *lower.Closure:
		return map[string]any{
			"kind":  "closure",
			"param": patternMap(n.Param),
			"body":  ToMap(n.Body),
		}

	default:
		return nil
	}
}

func patternMap(p block.Pattern) map[string]any {
	m := map[string]any{"kind": p.Kind.String()}

	switch p.Kind {
	case block.PatternIdent:
		m["name"] = p.Name

	case block.PatternObject:
		props := make([]any, len(p.Props))

		for i, prop := range p.Props {
			pm := map[string]any{"key": prop.Key}
			if prop.Value != nil {
				pm["value"] = patternMap(*prop.Value)
			}

			if prop.Default != nil {
				pm["default"] = prop.Default.Source
			}

			props[i] = pm
		}

		m["props"] = props

	case block.PatternArray:
		elems := make([]any, len(p.Elems))

		for i, el := range p.Elems {
			if el.Pattern == nil {
				continue
			}

			em := patternMap(*el.Pattern)
			if el.Default != nil {
				em["default"] = el.Default.Source
			}

			elems[i] = em
		}

		m["elems"] = elems
	}

	if p.Rest != nil {
		m["rest"] = patternMap(*p.Rest)
	}

	return withPos(m, p.Pos)
}

func withPos(m map[string]any, pos block.Position) map[string]any {
	if pos.IsValid() {
		m["pos"] = pos.String()
	}

	return m
}
