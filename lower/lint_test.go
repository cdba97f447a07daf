package lower

import (
	"testing"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		tail  string
		steps []block.BindStep
		want  []Diagnostic
	}{
		{
			name: "clean",
			tail: "baz.biz",
			steps: []block.BindStep{
				block.Bind(block.Ident("foo"), "fooOption"),
				block.Bind(block.Ident("bar"), "option(foo.bar)"),
				block.Bind(block.Ident("baz"), "option(bar.baz)"),
			},
		},
		{
			name: "unused",
			tail: "b",
			steps: []block.BindStep{
				block.Bind(block.Ident("a"), "x"),
				block.Bind(block.Ident("b"), "y"),
				block.Bind(block.Ident("_c"), "z"),
			},
			want: []Diagnostic{{Severity: SeverityWarning, Rule: RuleUnused, Name: "a", Step: 0}},
		},
		{
			name: "forward reference",
			tail: "a + b",
			steps: []block.BindStep{
				block.Bind(block.Ident("a"), "option(b)"),
				block.Bind(block.Ident("b"), "y"),
			},
			want: []Diagnostic{{Severity: SeverityWarning, Rule: RuleForwardRef, Name: "b", Step: 1}},
		},
		{
			name: "self reference",
			tail: "a",
			steps: []block.BindStep{
				block.Bind(block.Ident("a"), "wrap(a)"),
			},
			want: []Diagnostic{{Severity: SeverityWarning, Rule: RuleForwardRef, Name: "a", Step: 0}},
		},
		{
			name: "shadow",
			tail: "a",
			steps: []block.BindStep{
				block.Bind(block.Ident("a"), "x"),
				block.Bind(block.Ident("a"), "wrap(a)"),
			},
			want: []Diagnostic{{Severity: SeverityInfo, Rule: RuleShadow, Name: "a", Step: 1}},
		},
		{
			name: "used by default",
			tail: "n",
			steps: []block.BindStep{
				block.Bind(block.Ident("d"), "x"),
				block.Bind(block.Object(block.Shorthand("n").WithDefault("d")), "y"),
			},
		},
		{
			name: "word scan fallback",
			tail: "new Pair(a, b)",
			steps: []block.BindStep{
				block.Bind(block.Ident("a"), "x"),
				block.Bind(block.Ident("b"), "y"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := block.New(tt.steps, block.NewExpr(tt.tail))
			if err != nil {
				t.Fatal(err)
			}

			got := Check(b)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("diagnostic %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		s, word string
		want    bool
	}{
		{"a + b", "a", true},
		{"abc", "a", false},
		{"x.a", "a", false},
		{"f(a)", "a", true},
		{"$a", "a", false},
		{"a_b", "a", false},
	}

	for _, tt := range tests {
		if got := containsWord(tt.s, tt.word); got != tt.want {
			t.Errorf("containsWord(%q, %q) = %v, want %v", tt.s, tt.word, got, tt.want)
		}
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Severity: SeverityWarning, Rule: RuleUnused, Name: "a", Step: 0}

	want := `warning: "a" bound by step 0 is never used [unused-binding]`
	if got := d.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
