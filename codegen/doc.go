// Package codegen prints lowered do-blocks.
//
// [String] and [Print] emit JavaScript source. [Tree], [FormatJSON] and
// [FormatYAML] emit structural dumps for inspection.
package codegen
