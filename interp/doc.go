// Package interp is a reference runtime for lowered do-blocks.
//
// Host expressions are evaluated with expr-lang, so the operators and
// literals available inside a block are those of expr-lang rather than the
// full host language. Invocations call [Chainable.Chain] and
// [Chainable.Map] on the receiver; [Option], [Result] and [List] are built
// in:
//
//	do { x <- list(1, 2); y <- list(10, 20); x * y }
//
// evaluates to list(10, 20, 20, 40), and
//
//	do { {name, age = 30} <- option(user); name }
//
// to some("bob") when user is {name: "bob"} and to nothing when user is nil.
package interp
