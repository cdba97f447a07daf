package syntax

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/codegen"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
)

// Rewrite replaces every do-block of src with its lowered form and returns
// the result. Blocks nested in the expressions of a block are rewritten
// first.
//
// A block that fails to parse is left unchanged and its error collected;
// the other blocks are still rewritten. The returned error joins the errors
// of all failed blocks, each a [block.ErrMalformedBlock] located in src.
func Rewrite(ctx context.Context, src string, opts ...Option) (string, error) {
	cfg := makeConfig(opts...)
	index := newLineIndex(src, cfg.origin)

	var (
		out  strings.Builder
		errs []error
		last int
	)

	for occ := range Blocks(src) {
		out.WriteString(src[last:occ.Start])
		last = occ.End

		text, err := rewriteBlock(ctx, src, occ, index, cfg)
		if err != nil {
			cfg.logger.DebugContext(ctx, "block left unchanged",
				slog.Any("error", err),
			)

			errs = append(errs, err)
			out.WriteString(occ.Text(src))

			continue
		}

		out.WriteString(text)
	}

	out.WriteString(src[last:])

	return out.String(), errors.Join(errs...)
}

func rewriteBlock(
	ctx context.Context,
	src string,
	occ Occurrence,
	index lineIndex,
	cfg config,
) (string, error) {
	b, err := parseOccurrence(ctx, src, occ, index, cfg)
	if err != nil {
		return "", err
	}

	var errs []error

	for i := range b.Steps {
		rewriteDefaults(ctx, &b.Steps[i].Pattern, cfg, &errs)
		b.Steps[i].Source = rewriteNested(ctx, b.Steps[i].Source, cfg, &errs)
	}

	b.Tail = rewriteNested(ctx, b.Tail, cfg, &errs)

	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}

	text := codegen.String(lower.Lower(ctx, b, lower.WithLogger(cfg.logger)), cfg.codegen...)

	// A bare tail replaces the block inside a larger expression.
	if b.IsEmpty() && !b.Tail.IsPrimary() {
		text = "(" + text + ")"
	}

	return text, nil
}

func rewriteNested(ctx context.Context, e block.Expr, cfg config, errs *[]error) block.Expr {
	if !strings.Contains(e.Source, "do") {
		return e
	}

	out, err := Rewrite(ctx, e.Source, cfg.options(e.Pos)...)
	if err != nil {
		*errs = append(*errs, err)

		return e
	}

	e.Source = out

	return e
}

func rewriteDefaults(ctx context.Context, p *block.Pattern, cfg config, errs *[]error) {
	for i := range p.Props {
		if d := p.Props[i].Default; d != nil {
			*d = rewriteNested(ctx, *d, cfg, errs)
		}

		if p.Props[i].Value != nil {
			rewriteDefaults(ctx, p.Props[i].Value, cfg, errs)
		}
	}

	for i := range p.Elems {
		if d := p.Elems[i].Default; d != nil {
			*d = rewriteNested(ctx, *d, cfg, errs)
		}

		if p.Elems[i].Pattern != nil {
			rewriteDefaults(ctx, p.Elems[i].Pattern, cfg, errs)
		}
	}

	if p.Rest != nil {
		rewriteDefaults(ctx, p.Rest, cfg, errs)
	}
}
