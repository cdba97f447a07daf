package repl

import (
	"slices"
	"strings"
	"testing"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{name: "no call", input: "greeting", cursor: 8},
		{name: "first arg", input: "some(", cursor: 5, wantName: "some", wantInCall: true},
		{name: "second arg", input: "fail(a, b", cursor: 9, wantName: "fail", wantIndex: 1, wantInCall: true},
		{name: "member arg", input: "option(user.zip", cursor: 15, wantName: "option", wantInCall: true},
		{
			name: "after nested call", input: "some(list(1, 2), ", cursor: 17,
			wantName: "some", wantIndex: 1, wantInCall: true,
		},
		{name: "inside nested call", input: "some(list(1, ", cursor: 13, wantName: "list", wantIndex: 1, wantInCall: true},
		{name: "method", input: "x.y(", cursor: 4, wantName: "x.y", wantInCall: true},
		{name: "closed call", input: "some(1) + ", cursor: 10},
		{name: "array literal", input: "some([a, ", cursor: 9},
		{name: "grouping", input: "(a", cursor: 2},
		{name: "cursor before call", input: "some(1)", cursor: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)
			if got.inCall != tt.wantInCall || got.name != tt.wantName || got.argIndex != tt.wantIndex {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {name:%s argIndex:%d inCall:%v}",
					tt.input, tt.cursor, got, tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestGetSignature(t *testing.T) {
	tests := []struct {
		name       string
		wantSig    string
		wantParams []string
	}{
		{"some", "some(value)", []string{"value"}},
		{"list", "list(values...)", []string{"values..."}},
		{"nothing", "nothing", nil},
		{"split", "split(string, separator)", []string{"string", "separator"}},
		{"missing", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, params := getSignature(tt.name)
			if sig != tt.wantSig || !slices.Equal(params, tt.wantParams) {
				t.Errorf("getSignature(%q) = (%q, %v), want (%q, %v)",
					tt.name, sig, params, tt.wantSig, tt.wantParams)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	tests := []struct {
		signature string
		params    []string
		arg       int
	}{
		{"fail(reason)", []string{"reason"}, 0},
		{"list(values...)", []string{"values..."}, 3},
		{"replace(string, old, new)", []string{"string", "old", "new"}, 1},
		{"nothing", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.signature, func(t *testing.T) {
			got := renderSignatureHint(tt.signature, tt.params, tt.arg)

			name, _, _ := strings.Cut(tt.signature, "(")
			if !strings.Contains(got, name) {
				t.Errorf("renderSignatureHint(%q) = %q, missing %q", tt.signature, got, name)
			}

			for _, p := range tt.params {
				if !strings.Contains(got, p) {
					t.Errorf("renderSignatureHint(%q) = %q, missing %q", tt.signature, got, p)
				}
			}
		})
	}
}
