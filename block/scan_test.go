package block

import (
	"strings"
	"testing"
)

func TestScanCode(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		code     string // depth-0 runes reported
		complete bool
	}{
		{"plain", "a + b", "a + b", true},
		{"string", `f("x, y")`, "f()", true},
		{"single quote", `'a;b' + c`, "'' + c", true},
		{"template", "`a ${b + `c`} d`", "``", true},
		{"line comment", "a // b, c\nd", "a \nd", true},
		{"block comment", "a /* , */ b", "a  b", true},
		{"regex", "x = /[/,]+/g", "x = //g", true},
		{"division", "a / b", "a / b", true},
		{"regex after keyword", `typeof /"/`, "typeof //", true},
		{"regex in substitution", "`${/a`b/.test(s)}`", "``", true},
		{"division after call", "f(x) / 2 / y", "f() / 2 / y", true},
		{"unterminated string", `"abc`, "", false},
		{"unterminated template", "`abc ${x", "`", false},
		{"unterminated comment", "a /* b", "a ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder

			complete := ScanCode(tt.src, func(_ int, r rune, depth int) bool {
				if depth == 0 {
					b.WriteRune(r)
				}

				return true
			})

			if b.String() != tt.code {
				t.Errorf("code = %q, want %q", b.String(), tt.code)
			}

			if complete != tt.complete {
				t.Errorf("complete = %v, want %v", complete, tt.complete)
			}
		})
	}
}

func TestScanCode_Depth(t *testing.T) {
	var depths []int

	ScanCode("f(a[1], {b})", func(_ int, r rune, depth int) bool {
		if r == ',' || r == '(' || r == ')' || r == '{' || r == '}' {
			depths = append(depths, depth)
		}

		return true
	})

	// ( , { } )
	want := []int{0, 1, 1, 1, 0}
	if len(depths) != len(want) {
		t.Fatalf("got %v, want %v", depths, want)
	}

	for i := range want {
		if depths[i] != want[i] {
			t.Errorf("got %v, want %v", depths, want)

			break
		}
	}
}

func TestExpr_IsPrimary(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"fooOption", true},
		{"option(foo.bar)", true},
		{"a.b[c](d).e", true},
		{"a.b[c](d)?.e", false},
		{"a?.b", false},
		{"promise.catch(f).finally(g)", true},
		{"this.items", true},
		{"obj.#secret", true},
		{"function () { return 1 }", false},
		{"function(){ return 1 }", false},
		{"class{}", false},
		{"typeof(x)", false},
		{`"str"`, true},
		{"`tmpl ${x + y}`", true},
		{"[1, 2]", true},
		{"/ab+c/i", true},
		{"a + b", false},
		{"a+b", false},
		{"a/b", false},
		{"!a", false},
		{"a ? b : c", false},
		{"new Foo()", false},
		{"await p", false},
		{"x => x", false},
		{"{a: 1}", false},
		{"42", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := NewExpr(tt.src).IsPrimary(); got != tt.want {
				t.Errorf("IsPrimary(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestExpr_HasTopLevel(t *testing.T) {
	if !NewExpr("a, b").HasTopLevel(',') {
		t.Error("expected top-level comma")
	}

	if NewExpr(`f(a, b), "x"`).HasTopLevel(';') || NewExpr(`f(a, b) + "x,y"`).HasTopLevel(',') {
		t.Error("unexpected top-level match")
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"a // note\nb", "a  \nb"},
		{"a /* x */ + b", "a   + b"},
		{`"// not a comment"`, `"// not a comment"`},
		{"a /* open", "a  "},
	}

	for _, tt := range tests {
		if got := StripComments(tt.src); got != tt.want {
			t.Errorf("StripComments(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
