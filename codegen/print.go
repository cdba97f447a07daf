package codegen

import (
	"io"
	"strings"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
)

// Option configures [String] and [Print].
type Option func(*config)

type config struct {
	indent int
	chain  string
	mapped string
}

func makeConfig(opts ...Option) config {
	c := config{
		chain:  lower.Chain.String(),
		mapped: lower.Map.String(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// WithIndent breaks the output after every arrow and indents each callback
// body by n more spaces than its parent. Zero prints a single line.
func WithIndent(n int) Option {
	return func(c *config) { c.indent = max(n, 0) }
}

// WithMethods renames the emitted chain and map methods, e.g. "flatMap" and
// "map" for arrays, or "then" for both with promises. Blank names keep the
// defaults.
func WithMethods(chain, mapped string) Option {
	return func(c *config) {
		if chain = strings.TrimSpace(chain); chain != "" {
			c.chain = chain
		}

		if mapped = strings.TrimSpace(mapped); mapped != "" {
			c.mapped = mapped
		}
	}
}

// String returns node as JavaScript source.
func String(node lower.Node, opts ...Option) string {
	p := printer{config: makeConfig(opts...)}
	p.node(node, 0)

	return p.String()
}

// Print writes node as JavaScript source to w.
func Print(w io.Writer, node lower.Node, opts ...Option) error {
	_, err := io.WriteString(w, String(node, opts...))

	return err
}

type printer struct {
	config
	strings.Builder
}

func (p *printer) node(node lower.Node, depth int) {
	switch n := node.(type) {
	case *lower.Expr:
		p.WriteString(n.Source)

	case *lower.Invoke:
		p.receiver(n.Receiver)
		p.WriteByte('.')
		p.WriteString(p.method(n.Method))
		p.WriteByte('(')
		p.closure(n.Callback, depth+1)
		p.WriteByte(')')

	case *lower.Closure:
		p.closure(n, depth)
	}
}

func (p *printer) method(m lower.Method) string {
	if m == lower.Chain {
		return p.chain
	}

	return p.mapped
}

func (p *printer) receiver(e *lower.Expr) {
	if e.IsPrimary() {
		p.WriteString(e.Source)

		return
	}

	p.WriteByte('(')
	p.WriteString(e.Source)
	p.WriteByte(')')
}

func (p *printer) closure(c *lower.Closure, depth int) {
	if c.Param.IsDestructuring() {
		p.WriteByte('(')
		p.WriteString(c.Param.String())
		p.WriteByte(')')
	} else {
		p.WriteString(c.Param.Name)
	}

	p.WriteString(" =>")

	if p.indent > 0 {
		p.WriteByte('\n')
		p.WriteString(strings.Repeat(" ", depth*p.indent))
	} else {
		p.WriteByte(' ')
	}

	if tail, ok := c.Body.(*lower.Expr); ok && needsParens(tail) {
		p.WriteByte('(')
		p.WriteString(tail.Source)
		p.WriteByte(')')

		return
	}

	p.node(c.Body, depth)
}

// needsParens reports whether an arrow function body must be wrapped: an
// object literal would read as a block and a comma would end the argument.
func needsParens(e *lower.Expr) bool {
	return strings.HasPrefix(e.Source, "{") || e.HasTopLevel(',')
}
