package block

import (
	"unicode"
	"unicode/utf8"
)

// reserved lists words that cannot name a binding in strict-mode JavaScript.
var reserved = map[string]struct{}{
	"await": {}, "break": {}, "case": {}, "catch": {}, "class": {},
	"const": {}, "continue": {}, "debugger": {}, "default": {}, "delete": {},
	"do": {}, "else": {}, "enum": {}, "export": {}, "extends": {},
	"false": {}, "finally": {}, "for": {}, "function": {}, "if": {},
	"import": {}, "in": {}, "instanceof": {}, "new": {}, "null": {},
	"return": {}, "super": {}, "switch": {}, "this": {}, "throw": {},
	"true": {}, "try": {}, "typeof": {}, "var": {}, "void": {},
	"while": {}, "with": {}, "yield": {},
	"implements": {}, "interface": {}, "let": {}, "package": {},
	"private": {}, "protected": {}, "public": {}, "static": {},
	"arguments": {}, "eval": {},
}

// IsReserved reports whether name is a reserved word.
func IsReserved(name string) bool {
	_, ok := reserved[name]

	return ok
}

// IsIdentifier reports whether s is a syntactically valid identifier name.
// Reserved words are identifier names too; see [IsBindable].
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	r, size := utf8.DecodeRuneInString(s)
	if !IsIdentifierStart(r) {
		return false
	}

	for _, r := range s[size:] {
		if !IsIdentifierPart(r) {
			return false
		}
	}

	return true
}

// IsBindable reports whether name may be introduced as a binding.
func IsBindable(name string) bool {
	return IsIdentifier(name) && !IsReserved(name)
}

// IsIdentifierStart reports whether r may begin an identifier.
func IsIdentifierStart(r rune) bool {
	return r == '_' || r == '$' || unicode.In(r,
		unicode.L,
		unicode.Nl,
		unicode.Other_ID_Start,
	)
}

// IsIdentifierPart reports whether r may continue an identifier.
func IsIdentifierPart(r rune) bool {
	return IsIdentifierStart(r) ||
		r == '\u200c' || r == '\u200d' ||
		unicode.In(r,
			unicode.Mn,
			unicode.Mc,
			unicode.Nd,
			unicode.Pc,
			unicode.Other_ID_Continue,
		)
}
