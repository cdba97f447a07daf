package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
)

// Tree writes an indented outline of node, one line per node.
func Tree(w io.Writer, node lower.Node) error {
	return tree(w, node, 0)
}

func tree(w io.Writer, node lower.Node, depth int) error {
	pad := strings.Repeat("  ", depth)

	switch n := node.(type) {
	case nil:
		return nil

	case *lower.Expr:
		_, err := fmt.Fprintf(w, "%sexpr %s%s\n", pad, n.Source, at(n))

		return err

	case *lower.Invoke:
		if _, err := fmt.Fprintf(w, "%sinvoke %s\n", pad, n.Method); err != nil {
			return err
		}

		if err := tree(w, n.Receiver, depth+1); err != nil {
			return err
		}

		return tree(w, n.Callback, depth+1)

	case *lower.Closure:
		kind := "ident"
		if n.Param.IsDestructuring() {
			kind = n.Param.Kind.String()
		}

		if _, err := fmt.Fprintf(w, "%sclosure %s (%s)%s\n", pad, n.Param, kind, at(n)); err != nil {
			return err
		}

		return tree(w, n.Body, depth+1)

	default:
		_, err := fmt.Fprintf(w, "%s<unknown %T>\n", pad, node)

		return err
	}
}

func at(n lower.Node) string {
	if pos := n.Position(); pos.IsValid() {
		return " @" + pos.String()
	}

	return ""
}
