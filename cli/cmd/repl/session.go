package repl

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/codegen"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/interp"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/syntax"
)

// LastResult names the variable holding the result of the previous
// evaluation.
const LastResult = "_"

// Session holds the variables and options shared by the evaluations of a
// REPL. It has no terminal dependencies.
type Session struct {
	vars    map[string]any
	syntax  []syntax.Option
	codegen []codegen.Option
	logger  log.Logger
}

// SessionOption configures a [Session].
type SessionOption func(*Session)

// WithVars seeds the session variables.
func WithVars(vars map[string]any) SessionOption {
	return func(s *Session) { maps.Copy(s.vars, vars) }
}

// WithSyntax sets the parser options applied to every input.
func WithSyntax(opts ...syntax.Option) SessionOption {
	return func(s *Session) { s.syntax = opts }
}

// WithCodegen sets the printer options of the lowered code shown for every
// input.
func WithCodegen(opts ...codegen.Option) SessionOption {
	return func(s *Session) { s.codegen = opts }
}

// WithLogger sets the logger passed to the parser, lowering and runtime.
func WithLogger(logger log.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// NewSession returns a session with no variables.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		vars:   map[string]any{},
		logger: log.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Outcome is the result of evaluating one input.
type Outcome struct {
	Block  *block.DoBlock
	Code   string
	Result any
}

// Eval parses input as a do-block or bare body, lowers it and evaluates it
// with the session variables in scope. A successful result is stored as
// [LastResult].
func (s *Session) Eval(ctx context.Context, input string) (Outcome, error) {
	opts := append(slices.Clone(s.syntax), syntax.WithLogger(s.logger))

	b, err := syntax.ParseBlock(ctx, input, opts...)
	if err != nil {
		return Outcome{}, err
	}

	node := lower.Lower(ctx, b, lower.WithLogger(s.logger))
	out := Outcome{Block: b, Code: codegen.String(node, s.codegen...)}

	out.Result, err = interp.Eval(ctx, node, s.vars, interp.WithLogger(s.logger))
	if err != nil {
		return out, err
	}

	s.vars[LastResult] = out.Result

	s.logger.TraceContext(ctx, "session eval",
		slog.Int("steps", b.Len()),
		slog.String("result", interp.FormatResult(out.Result)),
	)

	return out, nil
}

// Set binds a variable from an assignment of the form "name=value". The
// value is parsed with [interp.ParseValue].
func (s *Session) Set(assignment string) (string, error) {
	name, value, ok := strings.Cut(assignment, "=")
	name = strings.TrimSpace(name)

	if !ok {
		return "", ErrAssignment.With(slog.String("input", assignment))
	}

	if !block.IsBindable(name) {
		return "", ErrAssignment.With(slog.String("name", name))
	}

	s.vars[name] = interp.ParseValue(strings.TrimSpace(value))

	return name, nil
}

// Unset removes the named variables. It fails on the first name that is
// not bound, leaving the others before it removed.
func (s *Session) Unset(names ...string) error {
	for _, name := range names {
		if _, ok := s.vars[name]; !ok {
			return ErrUnknownVar.With(slog.String("name", name))
		}

		delete(s.vars, name)
	}

	return nil
}

// Var returns the value of the named variable.
func (s *Session) Var(name string) (any, bool) {
	v, ok := s.vars[name]

	return v, ok
}

// Names returns the sorted names of the session variables.
func (s *Session) Names() []string {
	return slices.Sorted(maps.Keys(s.vars))
}
