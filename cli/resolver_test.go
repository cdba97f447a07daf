package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
)

type resolverLog struct {
	Format string `default:"json"`
	Caller bool
}

type resolverCLI struct {
	Log     resolverLog `embed:"" prefix:"log-"`
	Level   string      `default:"info"`
	Jobs    int         `default:"1"`
	Tags    []string
	Verbose bool
}

func parseWithConfig(t *testing.T, text string, args ...string) resolverCLI {
	t.Helper()

	res, err := resolve(t.Context())(strings.NewReader(text))
	assert.NoError(t, err)

	var cli resolverCLI

	parser, err := kong.New(&cli, kong.Resolvers(res), kong.Exit(func(int) {
		t.Fatal("unexpected exit")
	}))
	assert.NoError(t, err)

	_, err = parser.Parse(args)
	assert.NoError(t, err)

	return cli
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		text string
		args []string
		want resolverCLI
	}{
		{
			name: "defaults",
			text: "",
			want: resolverCLI{Log: resolverLog{Format: "json"}, Level: "info", Jobs: 1},
		},
		{
			name: "flat",
			text: "level: debug\njobs: 4\nverbose: true\nlog-format: text\n",
			want: resolverCLI{Log: resolverLog{Format: "text"}, Level: "debug", Jobs: 4, Verbose: true},
		},
		{
			name: "nested",
			text: "log:\n  format: text\n  caller: true\n",
			want: resolverCLI{Log: resolverLog{Format: "text", Caller: true}, Level: "info", Jobs: 1},
		},
		{
			name: "underscore",
			text: "log_format: text\n",
			want: resolverCLI{Log: resolverLog{Format: "text"}, Level: "info", Jobs: 1},
		},
		{
			name: "list",
			text: "tags: [a, b]\n",
			want: resolverCLI{Log: resolverLog{Format: "json"}, Level: "info", Jobs: 1, Tags: []string{"a", "b"}},
		},
		{
			name: "flags override",
			text: "level: debug\njobs: 4\n",
			args: []string{"--level=warn"},
			want: resolverCLI{Log: resolverLog{Format: "json"}, Level: "warn", Jobs: 4},
		},
		{
			name: "malformed ignored",
			text: "level: [unterminated\n",
			want: resolverCLI{Log: resolverLog{Format: "json"}, Level: "info", Jobs: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseWithConfig(t, tt.text, tt.args...))
		})
	}
}

func TestKongValue(t *testing.T) {
	assert.Equal(t, any("4"), kongValue(uint64(4)))
	assert.Equal(t, any("-2"), kongValue(int64(-2)))
	assert.Equal(t, any("1.5"), kongValue(1.5))
	assert.Equal(t, any(true), kongValue(true))
	assert.Equal(t, any([]any{"1", "x"}), kongValue([]any{uint64(1), "x"}))
	assert.Equal(t, any(map[string]any{"n": "3"}), kongValue(map[string]any{"n": uint64(3)}))
}

func TestConfigFlatten(t *testing.T) {
	c := config{}
	c.flatten("", map[string]any{
		"log": map[string]any{"level": "debug"},
		"a":   map[string]any{"b": map[string]any{"c": uint64(1)}},
	})

	assert.Equal(t, any("debug"), c["log-level"])
	assert.Equal(t, any("1"), c["a-b-c"])
	assert.Equal(t, any(map[string]any{"level": "debug"}), c["log"])
}
