package syntax

import "github.com/pfgray/ecma-proposal-chainable-do-syntax/pkg"

// ErrSyntax reports text the frontend cannot read as a do-block. It is
// always wrapped by block.ErrMalformedBlock and wraps one of the details
// below.
var ErrSyntax = pkg.NewError("syntax error")

// Syntax error details.
var (
	ErrUnterminated   = pkg.NewError("unterminated literal or comment")
	ErrUnbalanced     = pkg.NewError("unbalanced brackets")
	ErrUnexpected     = pkg.NewError("unexpected input")
	ErrExpected       = pkg.NewError("expected")
	ErrPlainStatement = pkg.NewError("expression statement before tail")
)
