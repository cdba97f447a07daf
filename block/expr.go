package block

import (
	"slices"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Expr is an opaque host-language expression. The lowering engine passes it
// through unchanged; only its source text and position are kept.
type Expr struct {
	Source string
	Pos    Position
}

// NewExpr returns an Expr with surrounding whitespace trimmed from src.
func NewExpr(src string) Expr {
	return Expr{Source: strings.TrimSpace(src)}
}

// At returns a copy of e located at pos.
func (e Expr) At(pos Position) Expr {
	e.Pos = pos

	return e
}

// IsBlank reports whether e has no source text.
func (e Expr) IsBlank() bool { return strings.TrimSpace(e.Source) == "" }

func (e Expr) String() string { return e.Source }

// Identifiers returns the names e refers to but does not declare itself, in
// order of first appearance. It understands the expression grammar of
// github.com/expr-lang/expr; an expression outside that grammar (arrow
// functions, template literals, ...) returns the parse error.
func (e Expr) Identifiers() ([]string, error) {
	tree, err := parser.Parse(e.Source)
	if err != nil {
		return nil, err
	}

	var c identCollector

	ast.Walk(&tree.Node, &c)

	names := make([]string, 0, len(c.refs))
	for _, name := range c.refs {
		if !slices.Contains(c.declared, name) && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return names, nil
}

// identCollector gathers referenced identifiers and let-declared names.
type identCollector struct {
	refs     []string
	declared []string
}

// Visit implements ast.Visitor.
func (c *identCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		c.refs = append(c.refs, n.Value)
	case *ast.VariableDeclaratorNode:
		c.declared = append(c.declared, n.Name)
	}
}
