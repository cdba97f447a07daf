package interp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/interp"
)

func double(v any) (any, error) { return v.(int) * 2, nil }

func TestOption(t *testing.T) {
	got, err := interp.Some(2).Map(double)
	require.NoError(t, err)
	assert.Equal(t, interp.Some(4), got)

	got, err = interp.Nothing.Map(func(any) (any, error) {
		t.Fatal("callback called on nothing")

		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, interp.Nothing, got)

	got, err = interp.Some(2).Chain(func(v any) (any, error) {
		return interp.FromNullable(nil), nil
	})
	require.NoError(t, err)
	assert.Equal(t, interp.Nothing, got)

	_, err = interp.Some(2).Chain(double)
	assert.ErrorIs(t, err, interp.ErrMismatch)

	assert.True(t, interp.Some(nil).IsSome())
	assert.False(t, interp.FromNullable(nil).IsSome())
	assert.Equal(t, 3, interp.Some(3).Get())
	assert.Equal(t, 0, interp.Nothing.OrElse(0))
	assert.Equal(t, 3, interp.Some(3).OrElse(0))
}

func TestResult(t *testing.T) {
	got, err := interp.Ok(2).Map(double)
	require.NoError(t, err)
	assert.Equal(t, interp.Ok(4), got)

	failed := interp.Fail("boom")

	got, err = failed.Chain(double)
	require.NoError(t, err)
	assert.Equal(t, failed, got)
	assert.False(t, failed.IsOk())
	assert.Equal(t, "boom", failed.Reason())

	_, err = interp.Ok(1).Chain(func(v any) (any, error) {
		return interp.Some(v), nil
	})
	assert.ErrorIs(t, err, interp.ErrMismatch)
}

func TestList(t *testing.T) {
	got, err := interp.List{1, 2, 3}.Map(double)
	require.NoError(t, err)
	assert.Equal(t, interp.List{2, 4, 6}, got)

	got, err = interp.List{1, 2}.Chain(func(v any) (any, error) {
		return interp.List{v, v}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, interp.List{1, 1, 2, 2}, got)

	boom := errors.New("boom")

	_, err = interp.List{1}.Map(func(any) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "nil"},
		{"a", `"a"`},
		{1, "1"},
		{2.5, "2.5"},
		{true, "true"},
		{[]any{1, "x"}, `[1, "x"]`},
		{map[string]any{"b": 1, "a-b": 2}, `{"a-b": 2, b: 1}`},
		{interp.Some(interp.List{1, 2}), "some(list(1, 2))"},
		{interp.Nothing, "nothing"},
		{interp.Fail("boom"), `fail("boom")`},
		{interp.Ok(nil), "ok(nil)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, interp.FormatResult(tt.in))
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"42", 42},
		{"-7", -7},
		{"2.5", 2.5},
		{"bob", "bob"},
		{`"42"`, "42"},
		{"null", nil},
		{"", ""},
		{"# note", "# note"},
		{"[1, 2]", []any{1, 2}},
		{"{name: bob}", map[string]any{"name": "bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, interp.ParseValue(tt.in))
		})
	}
}

func TestBuiltins(t *testing.T) {
	var names []string
	for _, b := range interp.Builtins() {
		names = append(names, b.Name)
	}

	assert.Equal(t, []string{"some", "nothing", "option", "ok", "fail", "list"}, names)

	b, ok := interp.Lookup("fail")
	require.True(t, ok)
	assert.Equal(t, "fail(reason)", b.Signature)

	_, ok = interp.Lookup("map")
	assert.False(t, ok)
}
