package block

import "github.com/pfgray/ecma-proposal-chainable-do-syntax/pkg"

// ErrMalformedBlock is the only error kind produced by block construction.
// Its cause is one of the detail errors below.
var ErrMalformedBlock = pkg.NewError("malformed do-block")

// Causes wrapped by ErrMalformedBlock.
var (
	ErrMissingTail      = pkg.NewError("missing tail expression")
	ErrMissingSource    = pkg.NewError("missing bind source expression")
	ErrInvalidPattern   = pkg.NewError("invalid binding pattern")
	ErrReservedWord     = pkg.NewError("reserved word used as binding")
	ErrDuplicateBinding = pkg.NewError("duplicate binding in pattern")
	ErrMisplacedRest    = pkg.NewError("rest element must be last")
)
