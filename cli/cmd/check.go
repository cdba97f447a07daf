package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/syntax"
)

// Check parses every do-block of the given files and reports malformed
// blocks and questionable bindings.
type Check struct {
	Syntax syntaxFlags `embed:""`

	Strict   bool `help:"Fail on warnings as well as malformed blocks"`
	Info     bool `help:"Also report informational findings such as shadowed bindings"`
	Markdown bool `help:"Treat every source as Markdown, checking only fenced code blocks"`

	Files []string `arg:"" help:"Source files, or '-' for stdin" name:"file" optional:""`
}

// tally counts the findings of a check run.
type tally struct {
	blocks, errors, warnings int
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := readSources(ctx, c.Files)
	if err != nil {
		return err
	}

	var (
		out = outputFrom(ctx)
		sum tally
	)

	for _, src := range sources {
		if c.Markdown || isMarkdown(src.name) {
			c.checkMarkdown(ctx, out, src, &sum)
		} else {
			c.checkSource(ctx, out, src, &sum)
		}
	}

	log.DebugContext(ctx, "check complete",
		slog.Int("files", len(sources)),
		slog.Int("blocks", sum.blocks),
		slog.Int("errors", sum.errors),
		slog.Int("warnings", sum.warnings),
	)

	if sum.errors > 0 || c.Strict && sum.warnings > 0 {
		return ErrCheck.With(
			slog.Int("errors", sum.errors),
			slog.Int("warnings", sum.warnings),
		)
	}

	return nil
}

func (c *Check) checkSource(ctx context.Context, out io.Writer, src source, sum *tally) {
	for b, err := range syntax.ParseAll(ctx, src.text, c.Syntax.options()...) {
		sum.blocks++

		if err != nil {
			sum.errors += reportErrors(out, src.name, err)

			continue
		}

		for _, d := range lower.Check(b) {
			if d.Severity == lower.SeverityWarning {
				sum.warnings++
			} else if !c.Info {
				continue
			}

			fmt.Fprintf(out, "%s:%s: %s\n", src.name, d.Pos, severityColor(d.Severity).Sprint(d))
		}
	}
}

// checkMarkdown reports the malformed blocks of fenced code. Bindings are
// not linted in Markdown.
func (c *Check) checkMarkdown(ctx context.Context, out io.Writer, src source, sum *tally) {
	if _, err := syntax.RewriteMarkdown(ctx, src.text, c.Syntax.options()...); err != nil {
		sum.errors += reportErrors(out, src.name, err)
	}
}

func severityColor(s lower.Severity) *color.Color {
	if s == lower.SeverityWarning {
		return color.New(color.FgYellow)
	}

	return color.New(color.FgCyan)
}
