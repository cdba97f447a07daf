package syntax

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/codegen"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
)

func lowerString(t *testing.T, src string, opts ...Option) string {
	t.Helper()

	b, err := ParseBlock(context.Background(), src, opts...)
	require.NoError(t, err)

	return codegen.String(lower.Lower(context.Background(), b))
}

func TestParseBlock(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts []Option
		want string
	}{
		{
			name: "tail only",
			src:  "do { biz }",
			want: "biz",
		},
		{
			name: "single step",
			src:  "do { foo <- fooOption; foo.bar }",
			want: "fooOption.map(foo => foo.bar)",
		},
		{
			name: "line separated",
			src: `do {
  foo <- fooOption
  bar <- option(foo.bar)
  baz <- option(bar.baz)
  baz.biz
}`,
			want: "fooOption.chain(foo => option(foo.bar).chain(bar => option(bar.baz).map(baz => baz.biz)))",
		},
		{
			name: "bare body",
			src:  "foo <- fooOption; foo.bar;",
			want: "fooOption.map(foo => foo.bar)",
		},
		{
			name: "destructuring",
			src:  "do { {a, b} <- pairOption; a + b }",
			want: "pairOption.map(({a, b}) => a + b)",
		},
		{
			name: "nested destructuring with defaults",
			src:  "do { {pos: [x, y = 0], ...rest} <- point; x + y }",
			want: "point.map(({pos: [x, y = 0], ...rest}) => x + y)",
		},
		{
			name: "custom marker",
			src:  "do { foo << fooOption; foo.bar }",
			opts: []Option{WithBindMarker("<<")},
			want: "fooOption.map(foo => foo.bar)",
		},
		{
			name: "leading member access continues",
			src: `do {
  res <- fetch(url)
    .then(r => r.json())
  res.name
}`,
			want: "(fetch(url)\n    .then(r => r.json())).map(res => res.name)",
		},
		{
			name: "trailing operator continues",
			src:  "do {\n  n <- a +\n    b\n  n * 2\n}",
			want: "(a +\n    b).map(n => n * 2)",
		},
		{
			name: "trailing division continues",
			src:  "do { x <- total /\n  count; x }",
			want: "(total /\n  count).map(x => x)",
		},
		{
			name: "leading division continues",
			src:  "do { x <- total\n  / count; x }",
			want: "(total\n  / count).map(x => x)",
		},
		{
			name: "regex ends the line",
			src:  "do {\n  m <- match(s, /a+/)\n  r <- /b/\n  m + r\n}",
			want: "match(s, /a+/).chain(m => /b/.map(r => m + r))",
		},
		{
			name: "regex after keyword",
			src:  `do { x <- typeof /"/; x }`,
			want: `(typeof /"/).map(x => x)`,
		},
		{
			name: "optional chain receiver",
			src:  "do { x <- a?.b; x }",
			want: "(a?.b).map(x => x)",
		},
		{
			name: "function receiver",
			src:  "do { f <- function () { return 1 }; f }",
			want: "(function () { return 1 }).map(f => f)",
		},
		{
			name: "marker on next line",
			src:  "do {\n  n\n    <- ns\n  n\n}",
			want: "ns.map(n => n)",
		},
		{
			name: "comments",
			src:  "do {\n  // the user\n  u <- users.first() /* maybe */\n  u.name // done\n}",
			want: "users.first().map(u => u.name)",
		},
		{
			name: "marker inside literals and brackets",
			src:  `do { s <- f("a <- b", [x <- y]); s }`,
			want: `f("a <- b", [x <- y]).map(s => s)`,
		},
		{
			name: "object tail",
			src:  "do { a <- as; b <- bs; {a, b} }",
			want: "as.chain(a => bs.map(b => ({a, b})))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lowerString(t, tt.src, tt.opts...))
		})
	}
}

func TestParseBlock_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		cause error
	}{
		{"plain statement", "do { a; b }", ErrPlainStatement},
		{"missing tail", "do { a <- b }", block.ErrMissingTail},
		{"trailing separator is not a tail", "do { a <- b; }", block.ErrMissingTail},
		{"empty", "do { }", block.ErrMissingTail},
		{"blank", "  ", block.ErrMissingTail},
		{"missing source", "do { a <- ; a }", block.ErrMissingSource},
		{"invalid pattern", "do { 1a <- b; c }", ErrSyntax},
		{"missing pattern", "do { <- b; c }", block.ErrInvalidPattern},
		{"reserved word", "do { class <- b; c }", block.ErrReservedWord},
		{"duplicate binding", "do { [a, a] <- b; a }", block.ErrDuplicateBinding},
		{"misplaced rest", "do { [...xs, y] <- b; y }", block.ErrMisplacedRest},
		{"unbalanced", "a <- f(; a", ErrUnbalanced},
		{"mismatched", "a <- f(]; a", ErrUnbalanced},
		{"unterminated", `a <- "x; a`, ErrUnterminated},
		{"unterminated block", "do { a <- b; a", ErrUnterminated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBlock(context.Background(), tt.src)
			require.Error(t, err)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, block.ErrMalformedBlock)
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestParseBlock_ErrorPosition(t *testing.T) {
	src := "do {\n  a <- b\n  c\n  d\n}"

	_, err := ParseBlock(context.Background(), src)
	require.Error(t, err)
	assert.Equal(t, "malformed do-block at 1:1: expression statement before tail at 3:3", err.Error())

	_, err = ParseBlock(context.Background(), src, WithOrigin(block.Position{Offset: 40, Line: 10, Column: 5}))
	require.Error(t, err)
	assert.Equal(t, "malformed do-block at 10:5: expression statement before tail at 12:3", err.Error())
}

func TestParseBlock_Positions(t *testing.T) {
	b, err := ParseBlock(context.Background(), "do {\n  foo <- fooOption\n  foo.bar\n}")
	require.NoError(t, err)

	assert.Equal(t, "1:1", b.Pos.String())
	assert.Equal(t, "2:3", b.Steps[0].Pattern.Pos.String())
	assert.Equal(t, "2:10", b.Steps[0].Source.Pos.String())
	assert.Equal(t, "3:3", b.Tail.Pos.String())
}

func TestParseReader(t *testing.T) {
	b, err := ParseReader(context.Background(), strings.NewReader("do { x <- xs; x }"))
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())

	_, err = ParseReader(context.Background(), strings.NewReader("do { x }\n"))
	require.NoError(t, err)

	_, err = ParseReader(context.Background(), strings.NewReader("do { x <- xs }"))
	assert.True(t, errors.Is(err, block.ErrMissingTail))
}

func TestParseAll(t *testing.T) {
	src := "a = do { x <- xs; x };\nb = do { y; z };\nc = do { w }\n"

	var (
		tails []string
		errs  []error
	)

	for b, err := range ParseAll(context.Background(), src) {
		if err != nil {
			assert.Nil(t, b)
			errs = append(errs, err)

			continue
		}

		tails = append(tails, b.Tail.Source)
	}

	assert.Equal(t, []string{"x", "w"}, tails)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], block.ErrMalformedBlock)
	assert.Contains(t, errs[0].Error(), "at 2:5")
}
