// Package lower desugars do-blocks into nested chain and map invocations.
//
// Given
//
//	do {
//	  foo <- fooOption;
//	  bar <- option(foo.bar);
//	  baz <- option(bar.baz);
//	  baz.biz
//	}
//
// [Lower] produces the tree printed by package codegen as
//
//	fooOption.chain(foo => option(foo.bar).chain(bar => option(bar.baz).map(baz => baz.biz)))
//
// The package also offers read-only queries over lowered trees and a small
// lint pass, [Check], over blocks.
package lower
