package lower

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
)

// Severity grades a [Diagnostic].
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "info"
}

// Rule identifies the check that produced a [Diagnostic].
type Rule string

const (
	// RuleForwardRef flags a source expression naming a binding that is
	// introduced by its own step or a later one.
	RuleForwardRef Rule = "forward-reference"
	// RuleUnused flags a binding nothing after it refers to.
	RuleUnused Rule = "unused-binding"
	// RuleShadow flags a binding that replaces one from an earlier step.
	RuleShadow Rule = "shadowed-binding"
)

// Diagnostic is a lint finding for one binding of a block.
type Diagnostic struct {
	Severity Severity
	Rule     Rule
	Name     string
	Step     int
	Pos      block.Position
}

func (d Diagnostic) String() string {
	var msg string

	switch d.Rule {
	case RuleForwardRef:
		msg = fmt.Sprintf("%q is not bound before step %d", d.Name, d.Step)
	case RuleUnused:
		msg = fmt.Sprintf("%q bound by step %d is never used", d.Name, d.Step)
	case RuleShadow:
		msg = fmt.Sprintf("%q rebound by step %d", d.Name, d.Step)
	default:
		msg = string(d.Rule)
	}

	return d.Severity.String() + ": " + msg + " [" + string(d.Rule) + "]"
}

// Check reports questionable bindings in b. Findings never prevent b from
// being lowered. Names starting with an underscore are never reported as
// unused.
func Check(b *block.DoBlock) []Diagnostic {
	if b == nil {
		return nil
	}

	var diags []Diagnostic

	bound := []string{}

	for i, step := range b.Steps {
		names := step.Pattern.Names()

		for _, name := range names {
			if !slices.Contains(bound, name) && refersTo(step.Source, name) {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Rule:     RuleForwardRef,
					Name:     name,
					Step:     i,
					Pos:      step.Source.Pos,
				})
			}
		}

		for j, later := range b.Steps[i+1:] {
			for _, name := range later.Pattern.Names() {
				if !slices.Contains(bound, name) && !slices.Contains(names, name) &&
					refersTo(step.Source, name) {
					diags = append(diags, Diagnostic{
						Severity: SeverityWarning,
						Rule:     RuleForwardRef,
						Name:     name,
						Step:     i + 1 + j,
						Pos:      step.Source.Pos,
					})
				}
			}
		}

		for _, name := range names {
			if slices.Contains(bound, name) {
				diags = append(diags, Diagnostic{
					Severity: SeverityInfo,
					Rule:     RuleShadow,
					Name:     name,
					Step:     i,
					Pos:      step.Pattern.Pos,
				})
			}

			if !strings.HasPrefix(name, "_") && !usedAfter(b, i, name) {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Rule:     RuleUnused,
					Name:     name,
					Step:     i,
					Pos:      step.Pattern.Pos,
				})
			}
		}

		bound = append(bound, names...)
	}

	return diags
}

// usedAfter reports whether name, bound by step i, is referenced before a
// later step rebinds it.
func usedAfter(b *block.DoBlock, i int, name string) bool {
	for _, later := range b.Steps[i+1:] {
		if refersTo(later.Source, name) || defaultsReferTo(later.Pattern, name) {
			return true
		}

		if later.Pattern.Binds(name) {
			return false
		}
	}

	return refersTo(b.Tail, name)
}

func defaultsReferTo(p block.Pattern, name string) bool {
	for _, prop := range p.Props {
		if prop.Default != nil && refersTo(*prop.Default, name) {
			return true
		}

		if prop.Value != nil && defaultsReferTo(*prop.Value, name) {
			return true
		}
	}

	for _, el := range p.Elems {
		if el.Default != nil && refersTo(*el.Default, name) {
			return true
		}

		if el.Pattern != nil && defaultsReferTo(*el.Pattern, name) {
			return true
		}
	}

	return p.Rest != nil && defaultsReferTo(*p.Rest, name)
}

// refersTo reports whether e mentions name. Expressions in the expr-lang
// grammar are analyzed precisely; anything else falls back to a whole-word
// scan of the source text.
func refersTo(e block.Expr, name string) bool {
	if ids, err := e.Identifiers(); err == nil {
		return slices.Contains(ids, name)
	}

	return containsWord(e.Source, name)
}

// containsWord reports whether word occurs in s delimited by characters that
// cannot continue an identifier, and not as a property after a dot.
func containsWord(s, word string) bool {
	for off := 0; ; {
		idx := strings.Index(s[off:], word)
		if idx < 0 {
			return false
		}

		start := off + idx
		end := start + len(word)
		off = start + 1

		if start > 0 {
			r, _ := utf8.DecodeLastRuneInString(s[:start])
			if block.IsIdentifierPart(r) || r == '.' {
				continue
			}
		}

		if end < len(s) {
			r, _ := utf8.DecodeRuneInString(s[end:])
			if block.IsIdentifierPart(r) {
				continue
			}
		}

		return true
	}
}
