package syntax

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"strings"
	"unicode"

	"github.com/klauspost/readahead"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
)

// ParseReader parses a do-block read from r. See [ParseBlock].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*block.DoBlock, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, err
	}

	return ParseBlock(ctx, string(data), opts...)
}

// ParseBlock parses src as either "do { body }" or a bare body.
//
// A body is a sequence of statements separated by semicolons or line
// breaks. Every statement but the last must be a bind step, "pattern <-
// source", and the last must be the tail expression. A line break continues
// the statement when the line ends with an operator or the bind marker, or
// when the next line begins with a member access or a binary operator.
//
// Every error is a [block.ErrMalformedBlock].
func ParseBlock(
	ctx context.Context,
	src string,
	opts ...Option,
) (*block.DoBlock, error) {
	cfg := makeConfig(opts...)
	index := newLineIndex(src, cfg.origin)

	start, end := 0, len(src)
	pos := index.position(skipSpaceAndComments(src, 0))

	for occ := range Blocks(src) {
		if skipSpaceAndComments(src, 0) == occ.Start &&
			skipSpaceAndComments(src, occ.End) == len(src) {
			if occ.Err != nil {
				return nil, block.ErrMalformedBlock.At(pos).
					Wrap(ErrSyntax.At(index.position(occ.End)).Wrap(occ.Err))
			}

			start, end = occ.BodyStart, occ.BodyEnd
		}

		break
	}

	b, err := parseBody(ctx, src[start:end], index.position(start), pos, cfg)
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("steps", b.Len()),
		slog.String("at", pos.String()),
	)

	return b, nil
}

// ParseAll parses every outermost do-block of src in order. A block that
// fails to parse is yielded as a nil block with its error; parsing continues
// with the next block. Nested blocks are left in the expressions of their
// enclosing block.
func ParseAll(
	ctx context.Context,
	src string,
	opts ...Option,
) iter.Seq2[*block.DoBlock, error] {
	cfg := makeConfig(opts...)
	index := newLineIndex(src, cfg.origin)

	return func(yield func(*block.DoBlock, error) bool) {
		for occ := range Blocks(src) {
			if !yield(parseOccurrence(ctx, src, occ, index, cfg)) {
				return
			}
		}
	}
}

func parseOccurrence(
	ctx context.Context,
	src string,
	occ Occurrence,
	index lineIndex,
	cfg config,
) (*block.DoBlock, error) {
	pos := index.position(occ.Start)

	if occ.Err != nil {
		return nil, block.ErrMalformedBlock.At(pos).
			Wrap(ErrSyntax.At(index.position(occ.End)).Wrap(occ.Err))
	}

	return parseBody(ctx, occ.Body(src), index.position(occ.BodyStart), pos, cfg)
}

// statement is a trimmed statement of a body with its position.
type statement struct {
	text  string
	off   int
	index lineIndex
}

func (s statement) position(off int) block.Position {
	return s.index.position(s.off + off)
}

// parseBody parses the statements of body. origin is the position of the
// first byte of body and pos the position reported for the block.
func parseBody(
	ctx context.Context,
	body string,
	origin, pos block.Position,
	cfg config,
) (*block.DoBlock, error) {
	index := newLineIndex(body, origin)

	stmts, err := splitStatements(body, cfg.marker, index)
	if err != nil {
		return nil, block.ErrMalformedBlock.At(pos).Wrap(err)
	}

	if len(stmts) == 0 {
		return nil, block.ErrMalformedBlock.At(pos).
			Wrap(block.ErrMissingTail.At(index.position(len(body))))
	}

	var (
		steps []block.BindStep
		tail  block.Expr
	)

	for i, st := range stmts {
		idx := markerIndex(st.text, cfg.marker)

		if idx < 0 {
			if i < len(stmts)-1 {
				return nil, block.ErrMalformedBlock.At(pos).
					With(slog.Int("step", i)).
					Wrap(ErrPlainStatement.At(st.position(0)))
			}

			tail = block.NewExpr(block.StripComments(st.text)).At(st.position(0))

			break
		}

		step, err := parseStep(st, idx, cfg.marker)
		if err != nil {
			return nil, block.ErrMalformedBlock.At(pos).
				With(slog.Int("step", i)).
				Wrap(err)
		}

		cfg.logger.TraceContext(ctx, "bind",
			slog.Int("step", i),
			slog.String("pattern", step.Pattern.String()),
			slog.String("source", step.Source.Source),
		)

		steps = append(steps, step)

		if i == len(stmts)-1 {
			tail = block.Expr{Pos: index.position(len(body))}
		}
	}

	return block.New(steps, tail, block.At(pos))
}

// parseStep parses a statement whose bind marker starts at idx.
func parseStep(st statement, idx int, marker string) (block.BindStep, error) {
	pattern, err := parsePattern(st.text[:idx], st.position(0))
	if err != nil {
		return block.BindStep{}, err
	}

	rest := st.text[idx+len(marker):]
	lead := len(rest) - len(strings.TrimLeftFunc(rest, unicode.IsSpace))
	source := block.NewExpr(block.StripComments(rest)).
		At(st.position(idx + len(marker) + lead))

	return block.BindStep{Pattern: pattern, Source: source}, nil
}

// markerIndex returns the offset of the first bind marker of text outside
// literals, comments and brackets, or -1.
func markerIndex(text, marker string) int {
	idx := -1

	block.ScanCode(text, func(off int, _ rune, depth int) bool {
		if depth == 0 && strings.HasPrefix(text[off:], marker) {
			idx = off

			return false
		}

		return true
	})

	return idx
}

// codeRune is a rune reported by block.ScanCode.
type codeRune struct {
	off   int
	r     rune
	depth int
}

// splitStatements splits body into its non-blank statements.
func splitStatements(body, marker string, index lineIndex) ([]statement, error) {
	var (
		runes []codeRune
		open  []codeRune
		bad   *codeRune
	)

	complete := block.ScanCode(body, func(off int, r rune, depth int) bool {
		c := codeRune{off: off, r: r, depth: depth}

		switch r {
		case '(', '[', '{':
			open = append(open, c)
		case ')', ']', '}':
			if len(open) == 0 || !matches(open[len(open)-1].r, r) {
				bad = &c

				return false
			}

			open = open[:len(open)-1]
		}

		runes = append(runes, c)

		return true
	})

	switch {
	case bad != nil:
		return nil, ErrSyntax.At(index.position(bad.off)).Wrap(ErrUnbalanced)
	case !complete:
		return nil, ErrSyntax.At(index.position(len(body))).Wrap(ErrUnterminated)
	case len(open) > 0:
		return nil, ErrSyntax.At(index.position(open[len(open)-1].off)).Wrap(ErrUnbalanced)
	}

	var stmts []statement

	start := 0
	emit := func(end int) {
		text := body[start:end]
		trimmed := strings.TrimSpace(text)

		if strings.TrimSpace(block.StripComments(trimmed)) != "" {
			off := start + strings.Index(text, trimmed)
			stmts = append(stmts, statement{text: trimmed, off: off, index: index})
		}

		start = end + 1
	}

	for i, c := range runes {
		if c.depth != 0 {
			continue
		}

		switch {
		case c.r == ';':
			emit(c.off)
		case c.r == '\n' && !continues(body, runes, i, start, marker):
			emit(c.off)
		}
	}

	emit(len(body))

	return stmts, nil
}

func matches(open, closer rune) bool {
	switch open {
	case '(':
		return closer == ')'
	case '[':
		return closer == ']'
	default:
		return closer == '}'
	}
}

const (
	trailingOperators = "+-*/%&|^<>=?:,."
	leadingOperators  = "+-*/%&|^<>=?:,."
)

// continues reports whether the line break runes[i] continues the current
// statement, which began at offset start.
func continues(body string, runes []codeRune, i, start int, marker string) bool {
	if strings.HasSuffix(strings.TrimSpace(block.StripComments(body[start:runes[i].off])), marker) {
		return true
	}

	var prev, prev2 rune

	for j := i - 1; j >= 0 && runes[j].off >= start; j-- {
		if unicode.IsSpace(runes[j].r) {
			continue
		}

		if prev == 0 {
			prev = runes[j].r

			continue
		}

		prev2 = runes[j].r

		break
	}

	if prev != 0 && strings.ContainsRune(trailingOperators, prev) {
		switch {
		case prev == prev2 && (prev == '+' || prev == '-'):
			// postfix increment or decrement
			return false
		case prev == '/' && prev2 == '/':
			// closing delimiter of a regular expression literal
			return false
		}

		return true
	}

	for _, c := range runes[i+1:] {
		if unicode.IsSpace(c.r) {
			continue
		}

		return strings.ContainsRune(leadingOperators, c.r) || strings.HasPrefix(body[c.off:], marker)
	}

	return false
}
