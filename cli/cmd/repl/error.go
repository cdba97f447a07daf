package repl

import "github.com/pfgray/ecma-proposal-chainable-do-syntax/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds  = pkg.NewError("index out of range")
	ErrEditDeclined = pkg.NewError("decline edit")
	ErrAssignment   = pkg.NewError("expected name=value with a bindable name")
	ErrUnknownVar   = pkg.NewError("no such variable")
)
