package codegen

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
)

func lowered(t *testing.T, tail string, steps ...block.BindStep) lower.Node {
	t.Helper()

	b, err := block.New(steps, block.NewExpr(tail))
	if err != nil {
		t.Fatalf("block.New: %v", err)
	}

	return lower.Lower(context.Background(), b)
}

func TestString_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		tail  string
		steps []block.BindStep
		want  string
	}{
		{
			name: "no steps",
			tail: "biz",
			want: "biz",
		},
		{
			name:  "single step",
			tail:  "foo.bar",
			steps: []block.BindStep{block.Bind(block.Ident("foo"), "fooOption")},
			want:  "fooOption.map(foo => foo.bar)",
		},
		{
			name: "three steps",
			tail: "baz.biz",
			steps: []block.BindStep{
				block.Bind(block.Ident("foo"), "fooOption"),
				block.Bind(block.Ident("bar"), "option(foo.bar)"),
				block.Bind(block.Ident("baz"), "option(bar.baz)"),
			},
			want: "fooOption.chain(foo => option(foo.bar).chain(bar => option(bar.baz).map(baz => baz.biz)))",
		},
		{
			name: "destructuring",
			tail: "a + b",
			steps: []block.BindStep{
				block.Bind(block.Object(block.Shorthand("a"), block.Shorthand("b")), "pairOption"),
			},
			want: "pairOption.map(({a, b}) => a + b)",
		},
		{
			name: "array destructuring",
			tail: "x",
			steps: []block.BindStep{
				block.Bind(block.Array(block.Elem(block.Ident("x")), block.Hole()), "pointOption"),
			},
			want: "pointOption.map(([x, ,]) => x)",
		},
		{
			name: "compound receiver",
			tail: "x",
			steps: []block.BindStep{
				block.Bind(block.Ident("x"), "cond ? a : b"),
			},
			want: "(cond ? a : b).map(x => x)",
		},
		{
			name: "call receiver",
			tail: "x",
			steps: []block.BindStep{
				block.Bind(block.Ident("x"), `lookup(users, "a b")[0]?.name`),
			},
			want: `(lookup(users, "a b")[0]?.name).map(x => x)`,
		},
		{
			name: "member receiver",
			tail: "x",
			steps: []block.BindStep{
				block.Bind(block.Ident("x"), `lookup(users, "a b")[0].name`),
			},
			want: `lookup(users, "a b")[0].name.map(x => x)`,
		},
		{
			name: "optional chain receiver",
			tail: "x + y",
			steps: []block.BindStep{
				block.Bind(block.Ident("x"), "a?.b"),
				block.Bind(block.Ident("y"), "c.d?.(e)"),
			},
			want: "(a?.b).chain(x => (c.d?.(e)).map(y => x + y))",
		},
		{
			name: "function receiver",
			tail: "x",
			steps: []block.BindStep{
				block.Bind(block.Ident("x"), "function () { return 1 }"),
				block.Bind(block.Ident("y"), "function(){ return x }"),
			},
			want: "(function () { return 1 }).chain(x => (function(){ return x }).map(y => x))",
		},
		{
			name: "class receiver",
			tail: "c",
			steps: []block.BindStep{
				block.Bind(block.Ident("c"), "class{}"),
			},
			want: "(class{}).map(c => c)",
		},
		{
			name: "object tail",
			tail: "{x, y}",
			steps: []block.BindStep{
				block.Bind(block.Ident("x"), "xs"),
				block.Bind(block.Ident("y"), "ys"),
			},
			want: "xs.chain(x => ys.map(y => ({x, y})))",
		},
		{
			name:  "comma tail",
			tail:  "log(x), x",
			steps: []block.BindStep{block.Bind(block.Ident("x"), "xs")},
			want:  "xs.map(x => (log(x), x))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(lowered(t, tt.tail, tt.steps...)); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestString_Indent(t *testing.T) {
	node := lowered(t, "baz.biz",
		block.Bind(block.Ident("foo"), "fooOption"),
		block.Bind(block.Ident("bar"), "option(foo.bar)"),
		block.Bind(block.Ident("baz"), "option(bar.baz)"),
	)

	want := strings.Join([]string{
		"fooOption.chain(foo =>",
		"  option(foo.bar).chain(bar =>",
		"    option(bar.baz).map(baz =>",
		"      baz.biz)))",
	}, "\n")

	if got := String(node, WithIndent(2)); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestString_Methods(t *testing.T) {
	node := lowered(t, "a + b",
		block.Bind(block.Ident("a"), "xs"),
		block.Bind(block.Ident("b"), "ys"),
	)

	tests := []struct {
		chain, mapped string
		want          string
	}{
		{"flatMap", "map", "xs.flatMap(a => ys.map(b => a + b))"},
		{"then", "then", "xs.then(a => ys.then(b => a + b))"},
		{" ", "", "xs.chain(a => ys.map(b => a + b))"},
	}

	for _, tt := range tests {
		if got := String(node, WithMethods(tt.chain, tt.mapped)); got != tt.want {
			t.Errorf("WithMethods(%q, %q) = %q, want %q", tt.chain, tt.mapped, got, tt.want)
		}
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer

	if err := Print(&buf, lowered(t, "biz")); err != nil {
		t.Fatal(err)
	}

	if buf.String() != "biz" {
		t.Errorf("unexpected output %q", buf.String())
	}

	if String(nil) != "" {
		t.Error("nil node should print nothing")
	}
}
