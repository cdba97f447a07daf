package block

import (
	"errors"
	"strings"
	"testing"
)

func TestPattern_String(t *testing.T) {
	tests := []struct {
		name string
		p    Pattern
		want string
	}{
		{"ident", Ident("foo"), "foo"},
		{"object shorthand", Object(Shorthand("a"), Shorthand("b")), "{a, b}"},
		{"object renamed", Object(Prop("a", Ident("x"))), "{a: x}"},
		{"object quoted", Object(Prop("content-type", Ident("ct"))), `{"content-type": ct}`},
		{"object default", Object(Shorthand("a").WithDefault("1")), "{a = 1}"},
		{"object rest", Object(Shorthand("a")).WithRest(Ident("rest")), "{a, ...rest}"},
		{"empty object", Object(), "{}"},
		{"array", Array(Elem(Ident("x")), Elem(Ident("y"))), "[x, y]"},
		{"array hole", Array(Hole(), Elem(Ident("y"))), "[, y]"},
		{"array trailing hole", Array(Elem(Ident("x")), Hole()), "[x, ,]"},
		{"array rest", Array(Elem(Ident("x"))).WithRest(Ident("xs")), "[x, ...xs]"},
		{"array default", Array(Elem(Ident("x")).WithDefault("0")), "[x = 0]"},
		{
			"nested",
			Object(Prop("pos", Array(Elem(Ident("x")), Elem(Ident("y"))))),
			"{pos: [x, y]}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPattern_Names(t *testing.T) {
	p := Object(
		Shorthand("a"),
		Prop("pos", Array(Elem(Ident("x")), Hole(), Elem(Ident("y")))),
	).WithRest(Ident("rest"))

	if got := strings.Join(p.Names(), ","); got != "a,x,y,rest" {
		t.Errorf("Names() = %q", got)
	}

	if !p.IsDestructuring() || Ident("a").IsDestructuring() {
		t.Error("IsDestructuring mismatch")
	}

	if !p.Binds("y") || p.Binds("pos") {
		t.Error("Binds mismatch")
	}
}

func TestPattern_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    Pattern
		want error
	}{
		{"ident", Ident("foo"), nil},
		{"dollar", Ident("$el"), nil},
		{"unicode", Ident("größe"), nil},
		{"empty", Ident(""), ErrInvalidPattern},
		{"digit start", Ident("9lives"), ErrInvalidPattern},
		{"reserved", Ident("return"), ErrReservedWord},
		{"reserved key allowed", Object(Prop("default", Ident("d"))), nil},
		{"reserved shorthand", Object(Shorthand("default")), ErrReservedWord},
		{"object rest pattern", Object().WithRest(Object(Shorthand("a"))), ErrInvalidPattern},
		{"array rest pattern", Array().WithRest(Array(Elem(Ident("a")))), nil},
		{"duplicate", Object(Shorthand("a"), Prop("b", Ident("a"))), ErrDuplicateBinding},
		{"duplicate rest", Array(Elem(Ident("a"))).WithRest(Ident("a")), ErrDuplicateBinding},
		{"blank default", Object(Shorthand("a").WithDefault(" ")), ErrInvalidPattern},
		{"hole default", Array(Hole().WithDefault("1")), ErrInvalidPattern},
		{"missing value", Object(Property{Key: "a"}), ErrInvalidPattern},
		{"unknown kind", Pattern{Kind: PatternKind(9)}, ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()

			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}

				return
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPattern_Clone(t *testing.T) {
	orig := Object(Prop("pos", Array(Elem(Ident("x"))))).WithRest(Ident("rest"))
	c := orig.Clone()

	c.Props[0].Value.Elems[0].Pattern.Name = "changed"
	c.Rest.Name = "other"

	if got := orig.String(); got != "{pos: [x], ...rest}" {
		t.Errorf("original mutated through clone: %q", got)
	}
}

func TestPatternKind_String(t *testing.T) {
	if PatternObject.String() != "object" || PatternKind(7).String() != "PatternKind(7)" {
		t.Error("unexpected PatternKind names")
	}
}
