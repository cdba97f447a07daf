package repl

import (
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/interp"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "vars", "set", "unset", "edit", "clear", "quit"}

// isWordBoundary reports whether r ends a completion word: anything that
// cannot be part of an identifier, including the member-access dot.
func isWordBoundary(r rune) bool {
	return !block.IsIdentifierPart(r)
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	for start = cursor; start > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	for end = cursor; end < len(input); {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading up to the word that
// starts at wordStart. For "x + user.address.ci" with the word "ci" it is
// "user.address". Returns "" for top-level words.
func parentPath(input string, wordStart int) string {
	if wordStart == 0 || input[wordStart-1] != '.' {
		return ""
	}

	pos := wordStart - 1

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.Trim(input[pos:wordStart], ".")
}

// topLevelNames returns the names visible to an input: runtime builtins,
// session variables and expr-lang builtin functions, without duplicates.
func topLevelNames(s *Session) []string {
	var names []string

	for _, b := range interp.Builtins() {
		names = append(names, b.Name)
	}

	names = append(names, s.Names()...)

	for _, fn := range builtin.Builtins {
		if !slices.Contains(names, fn.Name) {
			names = append(names, fn.Name)
		}
	}

	return names
}

// childCandidates returns the completions for a word after parent. An
// empty parent yields [topLevelNames]; otherwise the parent path is
// resolved through the session variables and the keys of the resulting map
// or fields of the resulting struct are returned.
func childCandidates(s *Session, parent string) []string {
	if parent == "" {
		return topLevelNames(s)
	}

	segments := strings.Split(parent, ".")

	val, ok := s.Var(segments[0])
	if !ok {
		return nil
	}

	for _, seg := range segments[1:] {
		if val, ok = member(val, seg); !ok {
			return nil
		}
	}

	return memberNames(val)
}

func member(v any, name string) (any, bool) {
	switch x := v.(type) {
	case map[string]any:
		val, ok := x[name]

		return val, ok
	case interp.Option:
		if name == "value" && x.IsSome() {
			return x.Get(), true
		}
	}

	return nil, false
}

func memberNames(v any) []string {
	if m, ok := v.(map[string]any); ok {
		return slices.Sorted(maps.Keys(m))
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var names []string

	for i := range rv.NumField() {
		if f := rv.Type().Field(i); f.IsExported() {
			names = append(names, f.Name)
		}
	}

	return names
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty top-level word has no matches; an empty word after a
// dot matches every member.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	if m.mode == modeCtrl {
		if word == "" || wordStart > 0 {
			return nil, nil, wordStart, wordEnd
		}

		return fuzzy.Find(word, ctrlCommands), ctrlCommands, wordStart, wordEnd
	}

	parent := parentPath(input, wordStart)
	candidates = childCandidates(m.session, parent)

	if len(candidates) == 0 || word == "" && parent == "" {
		return nil, nil, wordStart, wordEnd
	}

	if word == "" {
		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, candidates, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing)
// uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	var (
		b        strings.Builder
		used     int
		ellipsis = hintStyle.Render("...")
	)

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += lipgloss.Width(sep)
		}

		last := i == len(matches)-1
		if i > 0 && !last && used+entryWidth+lipgloss.Width(ellipsis) > width {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are displayed with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// isFunction reports whether name is a callable builtin. The nothing
// constant is a value.
func isFunction(name string) bool {
	if b, ok := interp.Lookup(name); ok {
		return strings.HasSuffix(b.Signature, ")")
	}

	_, ok := builtin.Index[name]

	return ok
}
