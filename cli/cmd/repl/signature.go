package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/interp"
)

// exprLangSignatures lists the signatures of the expr-lang builtins most
// useful inside a block.
var exprLangSignatures = map[string]string{
	"len":     "len(v)",
	"all":     "all(array, predicate)",
	"any":     "any(array, predicate)",
	"none":    "none(array, predicate)",
	"map":     "map(array, mapper)",
	"filter":  "filter(array, predicate)",
	"find":    "find(array, predicate)",
	"groupBy": "groupBy(array, mapper)",
	"sortBy":  "sortBy(array, mapper)",
	"count":   "count(array, predicate)",
	"sum":     "sum(array)",
	"min":     "min(array)",
	"max":     "max(array)",
	"join":    "join(array, separator)",
	"split":   "split(string, separator)",
	"replace": "replace(string, old, new)",
	"trim":    "trim(string)",
	"upper":   "upper(string)",
	"lower":   "lower(string)",
	"int":     "int(v)",
	"float":   "float(v)",
	"string":  "string(v)",
	"type":    "type(v)",
	"keys":    "keys(map)",
	"values":  "values(map)",
}

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

// detectFunctionCall reports the innermost call whose argument list
// contains the cursor, and the index of the argument under the cursor.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	open, depth := -1, 0

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')', ']', '}':
			depth++
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		case '[', '{':
			if depth == 0 {
				return functionCall{}
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	nameStart := open
	for nameStart > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:nameStart])
		if r != '.' && !block.IsIdentifierPart(r) {
			break
		}

		nameStart -= size
	}

	name := input[nameStart:open]
	if name == "" {
		return functionCall{}
	}

	argIndex := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// getSignature returns the signature of a runtime or expr-lang builtin and
// its parameter names, or "" if name is neither.
func getSignature(name string) (signature string, params []string) {
	if b, ok := interp.Lookup(name); ok {
		signature = b.Signature
	} else if sig, ok := exprLangSignatures[name]; ok {
		signature = sig
	} else {
		return "", nil
	}

	return signature, signatureParams(signature)
}

// signatureParams splits the parameter list of a signature "f(a, b)".
func signatureParams(signature string) []string {
	open := strings.IndexByte(signature, '(')
	if open < 0 || !strings.HasSuffix(signature, ")") {
		return nil
	}

	list := strings.TrimSpace(signature[open+1 : len(signature)-1])
	if list == "" {
		return nil
	}

	params := strings.Split(list, ",")
	for i, p := range params {
		params[i] = strings.TrimSpace(p)
	}

	return params
}

// renderSignatureHint renders the function signature with the current
// parameter highlighted. A variadic parameter stays highlighted for every
// argument past it.
func renderSignatureHint(signature string, params []string, argIndex int) string {
	open := strings.IndexByte(signature, '(')
	if open < 0 {
		return signatureStyle.Render(signature)
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(signature[:open]))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasSuffix(param, "...")
		if argIndex == i || variadic && argIndex > i {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
