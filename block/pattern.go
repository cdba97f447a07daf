package block

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// PatternKind identifies the shape of a [Pattern].
type PatternKind int

const (
	PatternIdent PatternKind = iota
	PatternObject
	PatternArray
)

func (k PatternKind) String() string {
	switch k {
	case PatternIdent:
		return "ident"
	case PatternObject:
		return "object"
	case PatternArray:
		return "array"
	default:
		return "PatternKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Pattern is a binding target: a plain identifier or a destructuring shape.
//
// Only the fields that belong to Kind are meaningful:
//   - PatternIdent uses Name;
//   - PatternObject uses Props and an optional identifier Rest;
//   - PatternArray uses Elems and an optional Rest of any kind.
type Pattern struct {
	Kind  PatternKind
	Name  string
	Props []Property
	Elems []Element
	Rest  *Pattern
	Pos   Position
}

// Property is one entry of an object pattern: Key binds to Value, which may
// fall back to Default when the property is undefined.
type Property struct {
	Key     string
	Quoted  bool
	Value   *Pattern
	Default *Expr
}

// Element is one entry of an array pattern. A nil Pattern is a hole.
type Element struct {
	Pattern *Pattern
	Default *Expr
}

// Ident returns an identifier pattern.
func Ident(name string) Pattern {
	return Pattern{Kind: PatternIdent, Name: name}
}

// Object returns an object destructuring pattern.
func Object(props ...Property) Pattern {
	return Pattern{Kind: PatternObject, Props: props}
}

// Array returns an array destructuring pattern.
func Array(elems ...Element) Pattern {
	return Pattern{Kind: PatternArray, Elems: elems}
}

// WithRest returns a copy of p collecting the remaining properties or
// elements into rest.
func (p Pattern) WithRest(rest Pattern) Pattern {
	p.Rest = &rest

	return p
}

// At returns a copy of p located at pos.
func (p Pattern) At(pos Position) Pattern {
	p.Pos = pos

	return p
}

// Shorthand returns the property {name}, binding name to the property of the
// same name.
func Shorthand(name string) Property {
	v := Ident(name)

	return Property{Key: name, Value: &v}
}

// Prop returns the property {key: value}.
func Prop(key string, value Pattern) Property {
	return Property{Key: key, Value: &value, Quoted: !IsIdentifier(key)}
}

// WithDefault returns a copy of p with a default expression.
func (p Property) WithDefault(src string) Property {
	d := NewExpr(src)
	p.Default = &d

	return p
}

// IsShorthand reports whether p is written as {name} or {name = default}.
func (p Property) IsShorthand() bool {
	return !p.Quoted && p.Value != nil &&
		p.Value.Kind == PatternIdent && p.Value.Name == p.Key
}

// Elem returns an array element binding p.
func Elem(p Pattern) Element { return Element{Pattern: &p} }

// Hole returns an array element that skips a position.
func Hole() Element { return Element{} }

// WithDefault returns a copy of e with a default expression.
func (e Element) WithDefault(src string) Element {
	d := NewExpr(src)
	e.Default = &d

	return e
}

// IsDestructuring reports whether p is an object or array pattern.
func (p Pattern) IsDestructuring() bool { return p.Kind != PatternIdent }

// Names returns every name p binds, in source order. A well-formed pattern
// has no repeated names.
func (p Pattern) Names() []string {
	var names []string

	p.collect(&names)

	return names
}

func (p Pattern) collect(names *[]string) {
	switch p.Kind {
	case PatternIdent:
		*names = append(*names, p.Name)

	case PatternObject:
		for _, prop := range p.Props {
			if prop.Value != nil {
				prop.Value.collect(names)
			}
		}

	case PatternArray:
		for _, el := range p.Elems {
			if el.Pattern != nil {
				el.Pattern.collect(names)
			}
		}
	}

	if p.Rest != nil {
		p.Rest.collect(names)
	}
}

// Binds reports whether p binds name.
func (p Pattern) Binds(name string) bool {
	return slices.Contains(p.Names(), name)
}

// Clone returns a deep copy of p.
func (p Pattern) Clone() Pattern {
	c := p

	if p.Props != nil {
		c.Props = make([]Property, len(p.Props))
		for i, prop := range p.Props {
			c.Props[i] = prop
			c.Props[i].Value = clonePtr(prop.Value)
			c.Props[i].Default = cloneExpr(prop.Default)
		}
	}

	if p.Elems != nil {
		c.Elems = make([]Element, len(p.Elems))
		for i, el := range p.Elems {
			c.Elems[i] = Element{
				Pattern: clonePtr(el.Pattern),
				Default: cloneExpr(el.Default),
			}
		}
	}

	c.Rest = clonePtr(p.Rest)

	return c
}

func clonePtr(p *Pattern) *Pattern {
	if p == nil {
		return nil
	}

	c := p.Clone()

	return &c
}

func cloneExpr(e *Expr) *Expr {
	if e == nil {
		return nil
	}

	c := *e

	return &c
}

// String renders p in JavaScript binding syntax.
func (p Pattern) String() string {
	var b strings.Builder

	p.write(&b)

	return b.String()
}

func (p Pattern) write(b *strings.Builder) {
	switch p.Kind {
	case PatternIdent:
		b.WriteString(p.Name)

	case PatternObject:
		b.WriteByte('{')

		for i, prop := range p.Props {
			if i > 0 {
				b.WriteString(", ")
			}

			prop.write(b)
		}

		if p.Rest != nil {
			if len(p.Props) > 0 {
				b.WriteString(", ")
			}

			b.WriteString("...")
			p.Rest.write(b)
		}

		b.WriteByte('}')

	case PatternArray:
		b.WriteByte('[')

		for i, el := range p.Elems {
			if i > 0 {
				b.WriteString(", ")
			}

			if el.Pattern == nil {
				continue
			}

			el.Pattern.write(b)
			writeDefault(b, el.Default)
		}

		if p.Rest != nil {
			if len(p.Elems) > 0 {
				b.WriteString(", ")
			}

			b.WriteString("...")
			p.Rest.write(b)
		} else if n := len(p.Elems); n > 0 && p.Elems[n-1].Pattern == nil {
			// A trailing hole needs its own comma.
			b.WriteByte(',')
		}

		b.WriteByte(']')
	}
}

func (p Property) write(b *strings.Builder) {
	if p.IsShorthand() {
		b.WriteString(p.Key)
		writeDefault(b, p.Default)

		return
	}

	if p.Quoted {
		b.WriteString(strconv.Quote(p.Key))
	} else {
		b.WriteString(p.Key)
	}

	b.WriteString(": ")

	if p.Value != nil {
		p.Value.write(b)
	}

	writeDefault(b, p.Default)
}

func writeDefault(b *strings.Builder, d *Expr) {
	if d != nil {
		b.WriteString(" = ")
		b.WriteString(d.Source)
	}
}

// Validate reports whether p is a valid binding target. The returned error
// is one of [ErrInvalidPattern], [ErrReservedWord] or [ErrDuplicateBinding]
// decorated with the offending name and position.
func (p Pattern) Validate() error {
	if err := p.validate(); err != nil {
		return err
	}

	names := p.Names()
	for i, name := range names {
		if slices.Contains(names[:i], name) {
			return ErrDuplicateBinding.At(p.Pos).
				With(slog.String("name", name))
		}
	}

	return nil
}

func (p Pattern) validate() error {
	switch p.Kind {
	case PatternIdent:
		return validateName(p.Name, p.Pos)

	case PatternObject:
		for _, prop := range p.Props {
			if err := prop.validate(p.Pos); err != nil {
				return err
			}
		}

		if p.Rest != nil && p.Rest.Kind != PatternIdent {
			return ErrInvalidPattern.At(p.Rest.Pos).
				With(slog.String("reason", "object rest must be an identifier"))
		}

	case PatternArray:
		for _, el := range p.Elems {
			if el.Pattern == nil {
				if el.Default != nil {
					return ErrInvalidPattern.At(p.Pos).
						With(slog.String("reason", "hole with default"))
				}

				continue
			}

			if err := el.Pattern.validate(); err != nil {
				return err
			}

			if err := validateDefault(el.Default, el.Pattern.Pos); err != nil {
				return err
			}
		}

	default:
		return ErrInvalidPattern.At(p.Pos).
			With(slog.String("kind", p.Kind.String()))
	}

	if p.Rest != nil {
		return p.Rest.validate()
	}

	return nil
}

func (p Property) validate(pos Position) error {
	if p.Value == nil {
		return ErrInvalidPattern.At(pos).
			With(slog.String("key", p.Key), slog.String("reason", "missing value"))
	}

	if !p.Quoted && !IsIdentifier(p.Key) {
		return ErrInvalidPattern.At(pos).
			With(slog.String("key", p.Key), slog.String("reason", "invalid key"))
	}

	if err := p.Value.validate(); err != nil {
		return err
	}

	return validateDefault(p.Default, p.Value.Pos)
}

func validateName(name string, pos Position) error {
	if !IsIdentifier(name) {
		return ErrInvalidPattern.At(pos).With(slog.String("name", name))
	}

	if IsReserved(name) {
		return ErrReservedWord.At(pos).With(slog.String("name", name))
	}

	return nil
}

func validateDefault(d *Expr, pos Position) error {
	if d != nil && d.IsBlank() {
		return ErrInvalidPattern.At(pos).
			With(slog.String("reason", "empty default"))
	}

	return nil
}
