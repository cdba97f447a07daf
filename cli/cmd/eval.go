package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/codegen"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/interp"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/pkg"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/syntax"
)

// Eval lowers a do-block and evaluates it with the reference runtime.
type Eval struct {
	Syntax syntaxFlags `embed:""`

	Vars map[string]string `help:"Bind a variable visible to the block (value parsed as YAML)" mapsep:"none" name:"var" placeholder:"NAME=VALUE" short:"D"`
	Show bool              `help:"Print the lowered code before the result"`

	Source string `arg:"" default:"-" help:"Do-block text, a file containing one, or '-' for stdin." name:"source"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, err := parseVars(e.Vars)
	if err != nil {
		return err
	}

	src, err := readBlockSource(ctx, e.Source)
	if err != nil {
		return err
	}

	b, err := syntax.ParseBlock(ctx, src.text, e.Syntax.options()...)
	if err != nil {
		return pkg.WrapError(err).With(slog.String("file", src.name))
	}

	out := outputFrom(ctx)
	node := lower.Lower(ctx, b, lower.WithLogger(log.Default()))

	if e.Show {
		fmt.Fprintln(out, codegen.String(node))
	}

	result, err := interp.Eval(ctx, node, env, interp.WithLogger(log.Default()))
	if err != nil {
		return pkg.WrapError(err).With(
			slog.String("command", "eval"),
			slog.String("file", src.name),
		)
	}

	_, err = fmt.Fprintln(out, interp.FormatResult(result))

	return err
}

// parseVars parses --var values with [interp.ParseValue]. Names must be
// bindable identifiers.
func parseVars(vars map[string]string) (map[string]any, error) {
	env := make(map[string]any, len(vars))

	for _, name := range slices.Sorted(maps.Keys(vars)) {
		if !block.IsBindable(name) {
			return nil, ErrVariable.With(slog.String("name", name))
		}

		env[name] = interp.ParseValue(vars[name])
	}

	return env, nil
}
