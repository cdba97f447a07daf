package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/zeebo/xxh3"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/syntax"
)

// Rewrite replaces every do-block of the given files with its lowered form.
type Rewrite struct {
	Syntax  syntaxFlags  `embed:""`
	Codegen codegenFlags `embed:""`

	Write    bool `help:"Write results back to the files instead of printing them" short:"w"`
	Jobs     int  `default:"${jobs}" help:"Number of files rewritten concurrently" short:"j"`
	Markdown bool `help:"Treat every source as Markdown, rewriting only fenced code blocks"`

	Files []string `arg:"" help:"Source files, or '-' for stdin" name:"file" optional:""`
}

// rewritten is the outcome of rewriting one source.
type rewritten struct {
	src  source
	text string
	err  error
}

func (r rewritten) changed() bool {
	return xxh3.HashString(r.text) != xxh3.HashString(r.src.text)
}

// Run executes the rewrite command.
func (r *Rewrite) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := readSources(ctx, r.Files)
	if err != nil {
		return err
	}

	results := r.rewriteAll(ctx, sources)

	var (
		out    = outputFrom(ctx)
		failed int
	)

	for _, res := range results {
		if res.err != nil {
			failed += reportErrors(out, res.src.name, res.err)
		}

		if err := r.emit(ctx, out, res); err != nil {
			return err
		}
	}

	if failed > 0 {
		return ErrRewrite.With(slog.Int("blocks", failed))
	}

	return nil
}

// rewriteAll rewrites sources on up to r.Jobs goroutines. Results are in
// the order of sources.
func (r *Rewrite) rewriteAll(ctx context.Context, sources []source) []rewritten {
	results := make([]rewritten, len(sources))
	sem := make(chan struct{}, max(r.Jobs, 1))

	var wg sync.WaitGroup

	for i, src := range sources {
		sem <- struct{}{}

		wg.Go(func() {
			defer func() { <-sem }()

			results[i] = r.rewrite(ctx, src)
		})
	}

	wg.Wait()

	return results
}

func (r *Rewrite) rewrite(ctx context.Context, src source) rewritten {
	opts := r.Syntax.options(syntax.WithCodegen(r.Codegen.options()...))

	if err := context.Cause(ctx); err != nil {
		return rewritten{src: src, text: src.text, err: err}
	}

	var (
		text string
		err  error
	)

	if r.Markdown || isMarkdown(src.name) {
		text, err = syntax.RewriteMarkdown(ctx, src.text, opts...)
	} else {
		text, err = syntax.Rewrite(ctx, src.text, opts...)
	}

	log.DebugContext(ctx, "rewrote source",
		slog.String("file", src.name),
		slog.Bool("ok", err == nil),
	)

	return rewritten{src: src, text: text, err: err}
}

// emit prints res, or writes it back to its file when r.Write is set and
// the content changed.
func (r *Rewrite) emit(ctx context.Context, out io.Writer, res rewritten) error {
	if !r.Write || res.src.isStdin() {
		_, err := io.WriteString(out, res.text)

		return err
	}

	if !res.changed() {
		log.DebugContext(ctx, "unchanged", slog.String("file", res.src.name))

		return nil
	}

	if err := os.WriteFile(res.src.name, []byte(res.text), res.src.mode); err != nil {
		return ErrWriteSource.With(slog.String("file", res.src.name)).Wrap(err)
	}

	log.InfoContext(ctx, "rewrote", slog.String("file", res.src.name))

	return nil
}

// reportErrors prints every error joined in err, each prefixed with name,
// and returns how many were printed.
func reportErrors(w io.Writer, name string, err error) int {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	red := color.New(color.FgRed)

	for _, e := range errs {
		label := "error"
		if errors.Is(e, block.ErrMalformedBlock) {
			label = "malformed"
		}

		fmt.Fprintf(w, "%s: %s %s\n", name, red.Sprint(label+":"), e)
	}

	return len(errs)
}
