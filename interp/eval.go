package interp

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/lower"
)

// EvalOption configures [Eval] and [Run].
type EvalOption func(*config)

type config struct {
	logger log.Logger
}

// WithLogger sets the logger receiving Trace records for each invocation.
func WithLogger(logger log.Logger) EvalOption {
	return func(c *config) { c.logger = logger }
}

func makeConfig(opts ...EvalOption) config {
	cfg := config{logger: log.Default()}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Run lowers b and evaluates the result. See [Eval].
func Run(
	ctx context.Context,
	b *block.DoBlock,
	env map[string]any,
	opts ...EvalOption,
) (any, error) {
	cfg := makeConfig(opts...)

	return Eval(ctx, lower.Lower(ctx, b, lower.WithLogger(cfg.logger)), env, opts...)
}

// Eval evaluates a lowered tree.
//
// Host expressions are compiled and run by expr-lang in a scope holding the
// builtins, then env, then the names bound by every enclosing callback. The
// receiver of an invocation must be a [Chainable]; a chain callback must
// return one. A nil node evaluates to nil.
func Eval(
	ctx context.Context,
	node lower.Node,
	env map[string]any,
	opts ...EvalOption,
) (any, error) {
	e := &evaluator{ctx: ctx, cfg: makeConfig(opts...)}

	return e.eval(node, rootScope(env))
}

type evaluator struct {
	ctx context.Context
	cfg config
}

func (e *evaluator) eval(node lower.Node, scope map[string]any) (any, error) {
	if err := context.Cause(e.ctx); err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case nil:
		return nil, nil
	case *lower.Expr:
		return e.expr(n.Expr, scope)
	case *lower.Invoke:
		return e.invoke(n, scope)
	case *lower.Closure:
		return e.callback(n, scope, lower.Map), nil
	default:
		return nil, ErrNode.At(node.Position()).With(slog.String("type", typeName(node)))
	}
}

func (e *evaluator) invoke(n *lower.Invoke, scope map[string]any) (any, error) {
	recv, err := e.expr(n.Receiver.Expr, scope)
	if err != nil {
		return nil, err
	}

	c, ok := recv.(Chainable)
	if !ok {
		return nil, ErrNotChainable.At(n.Receiver.Pos).With(
			slog.String("source", n.Receiver.Source),
			slog.String("type", typeName(recv)),
		)
	}

	e.cfg.logger.TraceContext(e.ctx, "invoke",
		slog.Any("invoke", n),
		slog.String("type", typeName(recv)),
	)

	fn := e.callback(n.Callback, scope, n.Method)

	if n.Method == lower.Chain {
		return c.Chain(fn)
	}

	return c.Map(fn)
}

// callback returns the function binding its argument to the parameter of c
// in a child of scope and evaluating the body there.
func (e *evaluator) callback(c *lower.Closure, scope map[string]any, m lower.Method) Func {
	return func(v any) (any, error) {
		child := maps.Clone(scope)

		if err := e.bind(c.Param, v, child); err != nil {
			return nil, err
		}

		out, err := e.eval(c.Body, child)
		if err != nil {
			return nil, err
		}

		if _, ok := out.(Chainable); m == lower.Chain && !ok {
			return nil, ErrNotChainable.At(c.Body.Position()).With(
				slog.String("callback", c.Param.String()),
				slog.String("type", typeName(out)),
			)
		}

		return out, nil
	}
}

func (e *evaluator) expr(x block.Expr, scope map[string]any) (any, error) {
	if err := context.Cause(e.ctx); err != nil {
		return nil, err
	}

	program, err := compile(x.Source)
	if err != nil {
		return nil, ErrCompile.At(x.Pos).
			With(slog.String("source", x.Source)).
			Wrap(err)
	}

	out, err := vm.Run(program, scope)
	if err != nil {
		return nil, ErrEvaluate.At(x.Pos).
			With(slog.String("source", x.Source)).
			Wrap(err)
	}

	return out, nil
}

// programs caches compiled expressions keyed by the xxh3 hash of their
// source.
var programs sync.Map

type cached struct {
	source  string
	program *vm.Program
}

func compile(source string) (*vm.Program, error) {
	key := xxh3.HashString(source)

	if c, ok := programs.Load(key); ok && c.(cached).source == source {
		return c.(cached).program, nil
	}

	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}

	programs.Store(key, cached{source: source, program: program})

	return program, nil
}
