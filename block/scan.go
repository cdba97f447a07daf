package block

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// Token is one lexical token of host source text.
type Token struct {
	Type js.TokenType
	// Text is the token as written, a slice of the lexed source.
	Text string
	// Offset is the byte offset of Text in the lexed source.
	Offset int
	// Depth is the bracket nesting level outside the token: openers report
	// the level before they open and closers the level after they close.
	// Template substitutions count as one level.
	Depth int
}

// Trivia reports whether t is whitespace, a line break or a comment.
func (t Token) Trivia() bool {
	switch t.Type {
	case js.WhitespaceToken, js.LineTerminatorToken,
		js.CommentToken, js.CommentLineTerminatorToken:
		return true
	}

	return false
}

// Comment reports whether t is a comment.
func (t Token) Comment() bool {
	return t.Type == js.CommentToken || t.Type == js.CommentLineTerminatorToken
}

// Lex calls fn for every token of src, trivia included, in order. A slash
// is read as a regular expression literal where an operand is expected.
// Characters the lexer does not recognize are reported as [js.ErrorToken]
// tokens and lexing continues.
//
// Lexing stops early when fn returns false. Lex reports whether it stopped
// early or src ended outside any literal, comment and template substitution.
func Lex(src string, fn func(Token) bool) bool {
	_, ok := lex(src, fn)

	return ok
}

// lex implements Lex and also returns the offset reached.
func lex(src string, fn func(Token) bool) (int, bool) {
	var (
		l     = js.NewLexer(parse.NewInputString(src))
		off   int
		depth int
		subst int
		prev  = js.ErrorToken
	)

	for {
		tt, data := l.Next()

		if tt == js.ErrorToken && data == nil {
			if l.Err() == io.EOF {
				return off, subst == 0
			}

			return off, false
		}

		if (tt == js.DivToken || tt == js.DivEqToken) && regexAllowed(prev) {
			tt, data = l.RegExp()
			if tt == js.ErrorToken {
				return off, false
			}
		}

		t := Token{Type: tt, Text: src[off : off+len(data)], Offset: off, Depth: depth}

		switch tt {
		case js.OpenParenToken, js.OpenBracketToken, js.OpenBraceToken:
			depth++
		case js.CloseParenToken, js.CloseBracketToken, js.CloseBraceToken:
			depth = max(depth-1, 0)
			t.Depth = depth
		case js.TemplateStartToken:
			subst++
			depth++
		case js.TemplateMiddleToken:
			t.Depth = depth - 1
		case js.TemplateEndToken:
			subst--
			depth--
			t.Depth = depth
		}

		off += len(data)

		if !t.Trivia() {
			prev = tt
		}

		if !fn(t) {
			return off, true
		}
	}
}

// regexAllowed reports whether a slash following a token of type prev
// starts a regular expression literal rather than a division.
func regexAllowed(prev js.TokenType) bool {
	switch {
	case prev == js.ErrorToken, prev == js.TemplateStartToken, prev == js.TemplateMiddleToken:
		return true
	case prev == js.IncrToken, prev == js.DecrToken:
		return false
	case js.IsOperator(prev):
		return true
	case prev == js.CloseParenToken, prev == js.CloseBracketToken:
		return false
	case js.IsPunctuator(prev):
		return true
	case js.IsReservedWord(prev):
		switch prev {
		case js.ThisToken, js.SuperToken, js.NullToken, js.TrueToken, js.FalseToken:
			return false
		}

		return true
	}

	return false
}

// ScanCode calls fn for every rune of src that is code rather than the body
// of a string literal, template literal text, regular expression literal or
// comment. Literal delimiters are reported; their contents are not. depth is
// the bracket nesting level outside the rune as for [Token.Depth].
// Substitutions inside template literals are scanned as code.
//
// Scanning stops early when fn returns false. ScanCode reports whether src
// ended outside any literal or comment.
func ScanCode(src string, fn func(off int, r rune, depth int) bool) bool {
	return Lex(src, func(t Token) bool {
		emit := func(i int) bool {
			r, _ := utf8.DecodeRuneInString(t.Text[i:])

			return fn(t.Offset+i, r, t.Depth)
		}

		last := len(t.Text) - 1

		switch t.Type {
		case js.CommentToken, js.CommentLineTerminatorToken, js.TemplateMiddleToken:
			return true
		case js.StringToken, js.TemplateToken:
			return emit(0) && emit(last)
		case js.TemplateStartToken:
			return emit(0)
		case js.TemplateEndToken:
			return emit(last)
		case js.RegExpToken:
			end := strings.LastIndexByte(t.Text, '/')
			if !emit(0) || !emit(end) {
				return false
			}

			for i := range t.Text[end+1:] {
				if !emit(end + 1 + i) {
					return false
				}
			}

			return true
		}

		for i := range t.Text {
			if !emit(i) {
				return false
			}
		}

		return true
	})
}

// StripComments returns src with every comment replaced by a single space.
// Line comments keep their terminating newline. An unterminated block
// comment extends to the end of src.
func StripComments(src string) string {
	var (
		b    strings.Builder
		last int
	)

	strip := func(start, end int) {
		b.WriteString(src[last:start])
		b.WriteByte(' ')

		last = end
	}

	end, ok := lex(src, func(t Token) bool {
		if t.Comment() {
			strip(t.Offset, t.Offset+len(t.Text))
		}

		return true
	})

	if !ok && strings.HasPrefix(src[end:], "/*") {
		strip(end, len(src))
	}

	b.WriteString(src[last:])

	return b.String()
}

// IsPrimary reports whether e can be the receiver of a method call without
// parentheses: an identifier, literal, call, or member access chain.
//
// Optional chains are not primary: a.b?.c.map(f) skips the call to map
// when a.b is nullish. Neither are function and class expressions, which
// are declarations at the start of a statement.
func (e Expr) IsPrimary() bool {
	if e.Source == "" {
		return false
	}

	var (
		primary = true
		prev    = js.ErrorToken
	)

	complete := Lex(e.Source, func(t Token) bool {
		if t.Depth > 0 {
			return true
		}

		primary = primaryToken(t.Type, prev)
		prev = t.Type

		return primary
	})

	return primary && complete
}

// primaryToken reports whether a depth-0 token of type tt, following a
// token of type prev, keeps an expression primary.
func primaryToken(tt, prev js.TokenType) bool {
	first := prev == js.ErrorToken

	switch {
	case tt == js.OpenBraceToken, tt == js.DotToken:
		return !first
	case tt == js.OpenParenToken, tt == js.OpenBracketToken,
		tt == js.CloseParenToken, tt == js.CloseBracketToken, tt == js.CloseBraceToken:
		return true
	case tt == js.StringToken, tt == js.TemplateToken,
		tt == js.TemplateStartToken, tt == js.TemplateMiddleToken, tt == js.TemplateEndToken:
		return true
	case tt == js.RegExpToken:
		return first
	case tt == js.PrivateIdentifierToken:
		return prev == js.DotToken
	case js.IsReservedWord(tt):
		if prev == js.DotToken {
			return true
		}

		switch tt {
		case js.ThisToken, js.SuperToken, js.NullToken, js.TrueToken, js.FalseToken:
			return true
		}

		return false
	case js.IsIdentifier(tt):
		return true
	}

	return false
}

// HasTopLevel reports whether r occurs in e outside literals, comments and
// brackets.
func (e Expr) HasTopLevel(r rune) bool {
	found := false

	ScanCode(e.Source, func(_ int, c rune, depth int) bool {
		found = depth == 0 && c == r

		return !found
	})

	return found
}
