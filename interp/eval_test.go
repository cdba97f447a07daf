package interp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/interp"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/syntax"
)

func run(t *testing.T, src string, env map[string]any) (any, error) {
	t.Helper()

	b, err := syntax.ParseBlock(t.Context(), src)
	require.NoError(t, err)

	return interp.Run(t.Context(), b, env)
}

// box is a chainable whose map does not rewrap its result.
type box struct{ v any }

func (b box) Chain(fn interp.Func) (any, error) { return fn(b.v) }
func (b box) Map(fn interp.Func) (any, error)   { return fn(b.v) }

func TestRun(t *testing.T) {
	user := map[string]any{
		"name": "bob",
		"address": map[string]any{
			"city": "Oslo",
		},
	}

	tests := []struct {
		name string
		src  string
		env  map[string]any
		want any
	}{
		{
			name: "tail only",
			src:  "do { 1 + 2 }",
			want: 3,
		},
		{
			name: "some",
			src:  "do { x <- some(1); y <- some(x + 1); x + y }",
			want: interp.Some(3),
		},
		{
			name: "nothing short-circuits",
			src:  "do { x <- nothing; y <- some(x.boom); y }",
			want: interp.Nothing,
		},
		{
			name: "option of nil",
			src:  "do { zip <- option(user.zip); zip }",
			env:  map[string]any{"user": user},
			want: interp.Nothing,
		},
		{
			name: "nested options",
			src: `do {
				foo <- fooOption;
				bar <- option(foo.bar);
				baz <- option(bar.baz);
				baz.biz
			}`,
			env: map[string]any{
				"fooOption": interp.Some(map[string]any{
					"bar": map[string]any{"baz": map[string]any{"biz": 42}},
				}),
			},
			want: interp.Some(42),
		},
		{
			name: "ok",
			src:  "do { a <- ok(2); b <- ok(a * 3); b - a }",
			want: interp.Ok(4),
		},
		{
			name: "fail short-circuits",
			src:  `do { a <- ok(1); b <- fail("boom"); c <- ok(b.x); c }`,
			want: interp.Fail("boom"),
		},
		{
			name: "list flatMap",
			src:  "do { x <- list(1, 2); y <- list(10, 20); x * y }",
			want: interp.List{10, 20, 20, 40},
		},
		{
			name: "empty list",
			src:  "do { x <- list(); y <- list(x); y }",
			want: interp.List{},
		},
		{
			name: "object pattern",
			src:  "do { {name, address: {city}} <- some(user); name + '@' + city }",
			env:  map[string]any{"user": user},
			want: interp.Some("bob@Oslo"),
		},
		{
			name: "default for undefined",
			src:  "do { {name, age = 30} <- some(user); [name, age] }",
			env:  map[string]any{"user": user},
			want: interp.Some([]any{"bob", 30}),
		},
		{
			name: "default sees earlier binding",
			src:  "do { {a, b = a * 2} <- some(v); a + b }",
			env:  map[string]any{"v": map[string]any{"a": 3}},
			want: interp.Some(9),
		},
		{
			name: "nil is not undefined",
			src:  "do { {a = 1} <- some(v); a }",
			env:  map[string]any{"v": map[string]any{"a": nil}},
			want: interp.Some(nil),
		},
		{
			name: "object rest",
			src:  "do { {a, ...others} <- some(v); others }",
			env:  map[string]any{"v": map[string]any{"a": 1, "b": 2, "c": 3}},
			want: interp.Some(map[string]any{"b": 2, "c": 3}),
		},
		{
			name: "array pattern with hole and rest",
			src:  "do { [first, , ...rest] <- some(xs); [first, rest] }",
			env:  map[string]any{"xs": []any{1, 2, 3, 4}},
			want: interp.Some([]any{1, []any{3, 4}}),
		},
		{
			name: "array default",
			src:  "do { [a, b = 5] <- some(list(1)); a + b }",
			want: interp.Some(6),
		},
		{
			name: "struct fields",
			src:  "do { {city} <- some(addr); city }",
			env:  map[string]any{"addr": struct{ City string }{City: "Rome"}},
			want: interp.Some("Rome"),
		},
		{
			name: "binding shadows env",
			src:  "do { x <- some(1); x }",
			env:  map[string]any{"x": 5},
			want: interp.Some(1),
		},
		{
			name: "env is visible",
			src:  "do { x <- some(1); x + offset }",
			env:  map[string]any{"offset": 10},
			want: interp.Some(11),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.src, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_DoesNotMutateEnv(t *testing.T) {
	env := map[string]any{"x": 5}

	_, err := run(t, "do { x <- some(1); y <- some(2); x + y }", env)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 5}, env)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		env  map[string]any
		want error
		at   string
	}{
		{
			name: "receiver not chainable",
			src:  "do { x <- 42; x }",
			want: interp.ErrNotChainable,
			at:   "at 1:11",
		},
		{
			name: "chain callback not chainable",
			src:  "do { a <- some(1); b <- box(a); b }",
			env:  map[string]any{"box": func(v any) box { return box{v} }},
			want: interp.ErrNotChainable,
			at:   "at 1:25",
		},
		{
			name: "mixed chainables",
			src:  "do { a <- some(1); b <- list(a); b }",
			want: interp.ErrMismatch,
		},
		{
			name: "destructure nil",
			src:  "do { {a} <- some(nil); a }",
			want: interp.ErrDestructure,
			at:   "at 1:6",
		},
		{
			name: "missing nested object",
			src:  "do { {a: {b}} <- some(v); b }",
			env:  map[string]any{"v": map[string]any{}},
			want: interp.ErrDestructure,
		},
		{
			name: "not iterable",
			src:  "do { [a] <- some(1); a }",
			want: interp.ErrDestructure,
		},
		{
			name: "compile",
			src:  "do { x <- some(1); x + }",
			want: interp.ErrCompile,
			at:   "at 1:20",
		},
		{
			name: "evaluate",
			src:  "do { x <- some(1); x.y }",
			want: interp.ErrEvaluate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.src, tt.env)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			if tt.at != "" {
				assert.Contains(t, err.Error(), tt.at)
			}
		})
	}
}

func TestRun_Canceled(t *testing.T) {
	b, err := syntax.ParseBlock(t.Context(), "do { x <- some(1); x }")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = interp.Run(ctx, b, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestEval(t *testing.T) {
	got, err := interp.Eval(t.Context(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	b, err := syntax.ParseBlock(t.Context(), "do { x <- some(2); x * x }")
	require.NoError(t, err)

	inv := lower.Lower(t.Context(), b).(*lower.Invoke)

	fn, err := interp.Eval(t.Context(), inv.Callback, nil)
	require.NoError(t, err)
	require.IsType(t, interp.Func(nil), fn)

	out, err := fn.(interp.Func)(7)
	require.NoError(t, err)
	assert.Equal(t, 49, out)
}
