package block

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		steps []BindStep
		tail  string
		cause error
	}{
		{"empty", nil, "biz", nil},
		{"single", []BindStep{Bind(Ident("foo"), "fooOption")}, "foo.bar", nil},
		{
			"destructuring",
			[]BindStep{Bind(Object(Shorthand("a"), Shorthand("b")), "pairOption")},
			"a + b",
			nil,
		},
		{"missing tail", []BindStep{Bind(Ident("foo"), "fooOption")}, "", ErrMissingTail},
		{"blank tail", nil, "  \n ", ErrMissingTail},
		{"missing source", []BindStep{Bind(Ident("foo"), " ")}, "foo", ErrMissingSource},
		{"invalid name", []BindStep{Bind(Ident("1foo"), "x")}, "foo", ErrInvalidPattern},
		{"reserved name", []BindStep{Bind(Ident("class"), "x")}, "foo", ErrReservedWord},
		{
			"duplicate name",
			[]BindStep{Bind(Array(Elem(Ident("a")), Elem(Ident("a"))), "x")},
			"a",
			ErrDuplicateBinding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.steps, NewExpr(tt.tail))

			if tt.cause == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if b.Len() != len(tt.steps) {
					t.Errorf("Len() = %d, want %d", b.Len(), len(tt.steps))
				}

				return
			}

			if b != nil {
				t.Errorf("expected nil block on error, got %v", b)
			}

			if !errors.Is(err, ErrMalformedBlock) {
				t.Errorf("expected ErrMalformedBlock, got %v", err)
			}

			if !errors.Is(err, tt.cause) {
				t.Errorf("expected cause %v, got %v", tt.cause, err)
			}
		})
	}
}

func TestNew_ErrorLocation(t *testing.T) {
	_, err := New(nil, Expr{}, At(Position{Offset: 10, Line: 2, Column: 5}))
	if err == nil {
		t.Fatal("expected error")
	}

	if !strings.HasPrefix(err.Error(), "malformed do-block at 2:5") {
		t.Errorf("unexpected message %q", err.Error())
	}

	_, err = New(nil, Expr{})
	if strings.Contains(err.Error(), " at ") {
		t.Errorf("unknown position should not be reported, got %q", err.Error())
	}
}

func TestNew_CopiesSteps(t *testing.T) {
	steps := []BindStep{Bind(Object(Shorthand("a")), "x")}

	b, err := New(steps, NewExpr("a"))
	if err != nil {
		t.Fatal(err)
	}

	steps[0].Pattern.Props[0].Key = "z"
	steps[0].Source = NewExpr("y")

	if got := b.Steps[0].String(); got != "{a} <- x" {
		t.Errorf("block changed with caller's steps: %q", got)
	}
}

func TestDoBlock_IsEmpty(t *testing.T) {
	empty, err := New(nil, NewExpr("biz"))
	if err != nil {
		t.Fatal(err)
	}

	if !empty.IsEmpty() {
		t.Error("block without steps should be empty")
	}

	full, err := New([]BindStep{Bind(Ident("a"), "x")}, NewExpr("a"))
	if err != nil {
		t.Fatal(err)
	}

	if full.IsEmpty() {
		t.Error("block with a step should not be empty")
	}
}

func TestDoBlock_String(t *testing.T) {
	b, err := New([]BindStep{
		Bind(Ident("foo"), "fooOption"),
		Bind(Object(Shorthand("a"), Shorthand("b")), "option(foo.bar)"),
	}, NewExpr("a + b"))
	if err != nil {
		t.Fatal(err)
	}

	want := "do { foo <- fooOption; {a, b} <- option(foo.bar); a + b }"
	if got := b.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := strings.Join(b.Names(), ","); got != "foo,a,b" {
		t.Errorf("Names() = %q", got)
	}
}
