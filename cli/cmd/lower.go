package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/codegen"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/pkg"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/syntax"
)

// Lower parses a single do-block and prints its lowered form.
type Lower struct {
	Code Code `cmd:"" default:"withargs" help:"Print the lowered block as JavaScript (default)."`
	JSON JSON `cmd:""                    help:"Print the lowered block as JSON."`
	YAML YAML `cmd:""                    help:"Print the lowered block as YAML."`
	AST  AST  `cmd:""                    help:"Print the lowered block as an indented tree."`
}

// Code prints the lowered block as JavaScript.
type Code struct {
	Syntax  syntaxFlags  `embed:""`
	Codegen codegenFlags `embed:""`

	Source string `arg:"" default:"-" help:"Do-block text, a file containing one, or '-' for stdin." name:"source"`
}

// Run executes the code command.
func (c *Code) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	node, err := lowerSource(ctx, c.Source, c.Syntax)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(outputFrom(ctx), codegen.String(node, c.Codegen.options()...))

	return err
}

// JSON prints the lowered block as JSON.
type JSON struct {
	Syntax syntaxFlags `embed:""`
	Indent int         `default:"2" help:"Indent width for JSON output (0 prints one line)" short:"i"`

	Source string `arg:"" default:"-" help:"Do-block text, a file containing one, or '-' for stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	node, err := lowerSource(ctx, j.Source, j.Syntax)
	if err != nil {
		return err
	}

	return codegen.FormatJSON(ctx, outputFrom(ctx), node, j.Indent)
}

// YAML prints the lowered block as YAML.
type YAML struct {
	Syntax syntaxFlags `embed:""`
	Indent int         `default:"2" help:"Indent width for YAML output (0 selects flow style)" short:"i"`

	Source string `arg:"" default:"-" help:"Do-block text, a file containing one, or '-' for stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	node, err := lowerSource(ctx, y.Source, y.Syntax)
	if err != nil {
		return err
	}

	return codegen.FormatYAML(ctx, outputFrom(ctx), node, y.Indent)
}

// AST prints the lowered block as an indented tree.
type AST struct {
	Syntax syntaxFlags `embed:""`

	Source string `arg:"" default:"-" help:"Do-block text, a file containing one, or '-' for stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	node, err := lowerSource(ctx, a.Source, a.Syntax)
	if err != nil {
		return err
	}

	return codegen.Tree(outputFrom(ctx), node)
}

// lowerSource parses the block named by arg and lowers it.
func lowerSource(ctx context.Context, arg string, flags syntaxFlags) (lower.Node, error) {
	src, err := readBlockSource(ctx, arg)
	if err != nil {
		return nil, err
	}

	b, err := syntax.ParseBlock(ctx, src.text, flags.options()...)
	if err != nil {
		return nil, pkg.WrapError(err).With(slog.String("file", src.name))
	}

	log.DebugContext(ctx, "lowering block",
		slog.String("file", src.name),
		slog.Any("block", b),
	)

	return lower.Lower(ctx, b, lower.WithLogger(log.Default())), nil
}
