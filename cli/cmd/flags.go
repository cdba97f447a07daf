package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/codegen"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/syntax"
)

type syntaxFlags struct {
	Bind string `default:"<-" help:"Token separating a bind pattern from its source"`
}

func (f syntaxFlags) options(extra ...syntax.Option) []syntax.Option {
	return append([]syntax.Option{
		syntax.WithBindMarker(f.Bind),
		syntax.WithLogger(log.Default()),
	}, extra...)
}

type codegenFlags struct {
	Indent int    `default:"0"     help:"Break after each arrow and indent callback bodies by N spaces (0 prints one line)" short:"i"`
	Chain  string `default:"chain" help:"Method emitted for every step but the last"`
	Map    string `default:"map"   help:"Method emitted for the last step"`
}

func (f codegenFlags) options() []codegen.Option {
	return []codegen.Option{
		codegen.WithIndent(f.Indent),
		codegen.WithMethods(f.Chain, f.Map),
	}
}

// readBlockSource reads a single do-block given inline, as the path of a
// file containing one, or as "-" for the command input.
func readBlockSource(ctx context.Context, arg string) (source, error) {
	if arg != stdinSource {
		if info, err := os.Stat(arg); err != nil || info.IsDir() {
			return source{name: "<arg>", text: arg}, nil
		}
	}

	srcs, err := readSources(ctx, []string{arg})
	if err != nil {
		return source{}, err
	}

	return srcs[0], nil
}

func isMarkdown(path string) bool {
	lower := strings.ToLower(path)

	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
