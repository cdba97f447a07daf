package syntax

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
)

// ParsePattern parses a binding pattern: an identifier or a nested object
// or array destructuring pattern with defaults, holes and rest elements.
// The result is validated with [block.Pattern.Validate].
func ParsePattern(src string, opts ...Option) (block.Pattern, error) {
	cfg := makeConfig(opts...)

	return parsePattern(src, cfg.origin)
}

func parsePattern(src string, origin block.Position) (block.Pattern, error) {
	p := &patternParser{src: src, index: newLineIndex(src, origin)}

	complete := block.Lex(src, func(t block.Token) bool {
		if !t.Trivia() {
			p.tokens = append(p.tokens, t)
		}

		return true
	})

	if !complete {
		return block.Pattern{}, ErrSyntax.At(p.index.position(len(src))).Wrap(ErrUnterminated)
	}

	if p.eof() {
		return block.Pattern{}, block.ErrInvalidPattern.At(p.position()).
			With(slog.String("reason", "missing pattern"))
	}

	pat, err := p.parsePattern()
	if err != nil {
		return block.Pattern{}, err
	}

	if !p.eof() {
		return block.Pattern{}, p.unexpected()
	}

	if err := pat.Validate(); err != nil {
		return block.Pattern{}, err
	}

	return pat, nil
}

// patternParser is a recursive descent parser over the significant tokens
// of a pattern.
type patternParser struct {
	src    string
	tokens []block.Token
	pos    int
	index  lineIndex
}

// parsePattern parses: Identifier | ObjectPattern | ArrayPattern.
func (p *patternParser) parsePattern() (block.Pattern, error) {
	pos := p.position()

	switch t := p.peek(); {
	case p.is(js.OpenBraceToken):
		pat, err := p.parseObject()

		return pat.At(pos), err

	case p.is(js.OpenBracketToken):
		pat, err := p.parseArray()

		return pat.At(pos), err

	case !p.eof() && js.IsIdentifierName(t.Type):
		p.advance()

		return block.Ident(t.Text).At(pos), nil

	case p.eof():
		return block.Pattern{}, p.expected("identifier")

	default:
		return block.Pattern{}, p.unexpected()
	}
}

// parseObject parses: '{' (Property (',' Property)* (',' Rest)? ','?)? '}'.
func (p *patternParser) parseObject() (block.Pattern, error) {
	p.advance() // '{'

	pat := block.Object()

	for {
		if p.expect(js.CloseBraceToken) {
			return pat, nil
		}

		if p.is(js.EllipsisToken) {
			rest, err := p.parseRest(js.CloseBraceToken)
			if err != nil {
				return block.Pattern{}, err
			}

			return pat.WithRest(rest), nil
		}

		prop, err := p.parseProperty()
		if err != nil {
			return block.Pattern{}, err
		}

		pat.Props = append(pat.Props, prop)

		if err := p.separator(js.CloseBraceToken); err != nil {
			return block.Pattern{}, err
		}
	}
}

// parseProperty parses: Key (':' Pattern)? ('=' Default)?.
func (p *patternParser) parseProperty() (block.Property, error) {
	var (
		prop block.Property
		err  error
	)

	pos := p.position()
	t := p.peek()

	switch {
	case p.eof():
		return prop, p.expected("property")
	case t.Type == js.StringToken:
		prop.Key, err = unquoteKey(t.Text)
		prop.Quoted = true
	case t.Type == js.OpenBracketToken:
		return prop, ErrSyntax.At(pos).
			Wrap(ErrUnexpected.Wrap(errors.New("computed property key")))
	case js.IsNumeric(t.Type):
		prop.Key = t.Text
		prop.Quoted = true
	case js.IsIdentifierName(t.Type):
		prop.Key = t.Text
	default:
		return prop, p.unexpected()
	}

	if err != nil {
		return prop, ErrSyntax.At(pos).Wrap(ErrUnexpected.Wrap(err))
	}

	p.advance()

	if p.expect(js.ColonToken) {
		value, err := p.parsePattern()
		if err != nil {
			return prop, err
		}

		prop.Value = &value
	} else {
		if prop.Quoted {
			return prop, p.expected("':' after quoted key")
		}

		value := block.Ident(prop.Key).At(pos)
		prop.Value = &value
	}

	prop.Default, err = p.parseDefault()

	return prop, err
}

// parseArray parses: '[' (Element? (',' Element?)* (',' Rest)?)? ']'.
func (p *patternParser) parseArray() (block.Pattern, error) {
	p.advance() // '['

	pat := block.Array()

	for {
		if p.expect(js.CloseBracketToken) {
			return pat, nil
		}

		if p.expect(js.CommaToken) {
			pat.Elems = append(pat.Elems, block.Hole())

			continue
		}

		if p.is(js.EllipsisToken) {
			rest, err := p.parseRest(js.CloseBracketToken)
			if err != nil {
				return block.Pattern{}, err
			}

			return pat.WithRest(rest), nil
		}

		el, err := p.parsePattern()
		if err != nil {
			return block.Pattern{}, err
		}

		def, err := p.parseDefault()
		if err != nil {
			return block.Pattern{}, err
		}

		pat.Elems = append(pat.Elems, block.Element{Pattern: &el, Default: def})

		if err := p.separator(js.CloseBracketToken); err != nil {
			return block.Pattern{}, err
		}
	}
}

// parseRest parses: '...' Pattern, which must be followed by closer.
func (p *patternParser) parseRest(closer js.TokenType) (block.Pattern, error) {
	pos := p.position()

	p.advance() // '...'

	rest, err := p.parsePattern()
	if err != nil {
		return block.Pattern{}, err
	}

	switch {
	case p.is(js.EqToken):
		return block.Pattern{}, block.ErrInvalidPattern.At(p.position()).
			With(slog.String("reason", "rest element with default"))
	case p.is(js.CommaToken):
		return block.Pattern{}, block.ErrMisplacedRest.At(pos)
	case !p.expect(closer):
		return block.Pattern{}, p.expected(closer.String())
	}

	return rest, nil
}

// separator consumes ',' or stops before closer.
func (p *patternParser) separator(closer js.TokenType) error {
	if p.expect(js.CommaToken) || p.is(closer) {
		return nil
	}

	if p.eof() {
		return p.expected(closer.String())
	}

	return p.unexpected()
}

// parseDefault parses an optional '=' followed by an expression that ends
// at a ',' or closing bracket at the nesting level of the '='. The
// expression is kept as written, without comments.
func (p *patternParser) parseDefault() (*block.Expr, error) {
	if !p.is(js.EqToken) {
		return nil, nil
	}

	eq := p.peek()
	start := eq.Offset + len(eq.Text)

	p.advance()

	pos := p.position()

loop:
	for ; !p.eof(); p.advance() {
		switch t := p.peek(); t.Type {
		case js.CloseParenToken, js.CloseBracketToken, js.CloseBraceToken:
			if t.Depth < eq.Depth {
				break loop
			}
		case js.CommaToken:
			if t.Depth == eq.Depth {
				break loop
			}
		}
	}

	end := len(p.src)
	if !p.eof() {
		end = p.peek().Offset
	}

	def := block.NewExpr(block.StripComments(p.src[start:end])).At(pos)

	return &def, nil
}

// unquoteKey returns the value of a quoted property key.
func unquoteKey(lit string) (string, error) {
	if strings.HasPrefix(lit, "'") {
		lit = `"` + strings.ReplaceAll(strings.ReplaceAll(lit[1:len(lit)-1], `\'`, `'`), `"`, `\"`) + `"`
	}

	return strconv.Unquote(lit)
}

func (p *patternParser) expected(what string) error {
	return ErrSyntax.At(p.position()).Wrap(ErrExpected.Wrap(errors.New(what)))
}

func (p *patternParser) unexpected() error {
	return ErrSyntax.At(p.position()).
		Wrap(ErrUnexpected.Wrap(fmt.Errorf("%q", p.peek().Text)))
}

// Helper methods

func (p *patternParser) eof() bool { return p.pos >= len(p.tokens) }

func (p *patternParser) peek() block.Token {
	if p.eof() {
		return block.Token{Type: js.ErrorToken, Offset: len(p.src)}
	}

	return p.tokens[p.pos]
}

func (p *patternParser) is(tt js.TokenType) bool {
	return !p.eof() && p.tokens[p.pos].Type == tt
}

func (p *patternParser) advance() {
	if !p.eof() {
		p.pos++
	}
}

func (p *patternParser) expect(tt js.TokenType) bool {
	if p.is(tt) {
		p.advance()

		return true
	}

	return false
}

func (p *patternParser) position() block.Position {
	return p.index.position(p.peek().Offset)
}
