package syntax

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// FenceLanguages lists the info-string languages of fenced code blocks
// rewritten by [RewriteMarkdown].
var FenceLanguages = []string{"js", "javascript", "mjs", "ts", "typescript", "chaindo"}

// RewriteMarkdown applies [Rewrite] to the body of every fenced code block
// of a Markdown document tagged with one of [FenceLanguages]. All other
// bytes are copied unchanged. Fences whose lines are not contiguous in the
// document, such as fences indented inside list items, are skipped.
func RewriteMarkdown(ctx context.Context, src string, opts ...Option) (string, error) {
	cfg := makeConfig(opts...)
	source := []byte(src)
	index := newLineIndex(src, cfg.origin)

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(source))

	type edit struct {
		start, end int
		text       string
	}

	var (
		edits []edit
		errs  []error
	)

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lang := strings.ToLower(string(fence.Language(source)))
		if !slices.Contains(FenceLanguages, lang) {
			return ast.WalkSkipChildren, nil
		}

		lines := fence.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		first, last := lines.At(0), lines.At(lines.Len()-1)

		for i := range lines.Len() {
			if seg := lines.At(i); seg.Padding > 0 || i > 0 && seg.Start != lines.At(i-1).Stop {
				cfg.logger.DebugContext(ctx, "skip indented fence",
					slog.String("lang", lang),
					slog.String("at", index.position(first.Start).String()),
				)

				return ast.WalkSkipChildren, nil
			}
		}

		body := src[first.Start:last.Stop]

		out, err := Rewrite(ctx, body, cfg.options(index.position(first.Start))...)
		if err != nil {
			errs = append(errs, err)
		}

		if out != body {
			edits = append(edits, edit{start: first.Start, end: last.Stop, text: out})
		}

		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return src, err
	}

	var (
		out  strings.Builder
		prev int
	)

	for _, e := range edits {
		out.WriteString(src[prev:e.start])
		out.WriteString(e.text)
		prev = e.end
	}

	out.WriteString(src[prev:])

	return out.String(), errors.Join(errs...)
}

