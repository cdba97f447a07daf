package interp

import "github.com/pfgray/ecma-proposal-chainable-do-syntax/pkg"

// Runtime errors. Each is decorated with the position of the expression or
// pattern that failed.
var (
	ErrCompile      = pkg.NewError("expression compilation failed")
	ErrEvaluate     = pkg.NewError("expression evaluation failed")
	ErrNotChainable = pkg.NewError("value is not chainable")
	ErrMismatch     = pkg.NewError("chain callback returned a different chainable")
	ErrDestructure  = pkg.NewError("cannot destructure value")
	ErrNode         = pkg.NewError("unsupported node")
)
