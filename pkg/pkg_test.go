package pkg

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"
)

func TestMetadata(t *testing.T) {
	if Name != "chaindo" {
		t.Errorf("unexpected Name %q", Name)
	}

	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(Version) {
		t.Errorf("Version %q is not semantic", Version)
	}

	if EnvPrefix() != "CHAINDO_" {
		t.Errorf("unexpected EnvPrefix %q", EnvPrefix())
	}
}

type loc string

func (l loc) String() string { return string(l) }

func TestError_Format(t *testing.T) {
	sentinel := NewError("malformed do-block")
	cause := errors.New("missing tail expression")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"sentinel", sentinel, "malformed do-block"},
		{"wrapped", sentinel.Wrap(cause), "malformed do-block: missing tail expression"},
		{"located", sentinel.At(loc("3:7")), "malformed do-block at 3:7"},
		{
			"located and wrapped",
			sentinel.At(loc("3:7")).Wrap(cause),
			"malformed do-block at 3:7: missing tail expression",
		},
		{"foreign", WrapError(cause), "missing tail expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	malformed := NewError("malformed")
	other := NewError("malformed")
	cause := NewError("missing tail")

	err := malformed.With(slog.Int("step", 2)).At(loc("1:1")).Wrap(cause.With(slog.Int("n", 1)))

	if !errors.Is(err, malformed) {
		t.Error("decorated error should match its sentinel")
	}

	if errors.Is(err, other) {
		t.Error("distinct sentinels with equal messages must not match")
	}

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should match through Unwrap")
	}

	if WrapError(err) != err {
		t.Error("WrapError should return an existing *Error unchanged")
	}

	if WrapError(nil) != nil {
		t.Error("WrapError(nil) should be nil")
	}
}

func TestError_Immutable(t *testing.T) {
	base := NewError("base").With(slog.String("a", "1"))
	left := base.With(slog.String("b", "2"))
	right := base.With(slog.String("c", "3"))

	if len(base.Attrs()) != 1 || len(left.Attrs()) != 2 || len(right.Attrs()) != 2 {
		t.Fatalf("unexpected attr counts %d %d %d",
			len(base.Attrs()), len(left.Attrs()), len(right.Attrs()))
	}

	if left.Attrs()[1].Key != "b" || right.Attrs()[1].Key != "c" {
		t.Error("decorations leaked between copies")
	}
}

func TestError_LogValue(t *testing.T) {
	err := NewError("boom").At(loc("2:4")).Wrap(errors.New("cause")).With(slog.Int("step", 1))

	var keys []string
	for _, a := range err.LogValue().Group() {
		keys = append(keys, a.Key)
	}

	if got := strings.Join(keys, ","); got != "error,at,cause,step" {
		t.Errorf("unexpected keys %s", got)
	}
}
