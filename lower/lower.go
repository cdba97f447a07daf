package lower

import (
	"context"
	"log/slog"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
)

// Option configures [Lower].
type Option func(*config)

type config struct {
	logger log.Logger
}

// WithLogger sets the logger receiving Trace records for each lowered step.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// Lower rewrites b into nested chain and map invocations.
//
// The rewrite is a right fold over the bind steps. The last step becomes
// source.map(pattern => tail) and every earlier step becomes
// source.chain(pattern => rest), where rest is the lowering of the steps
// after it. A block without steps lowers to its tail. Each pattern is the
// parameter of the callback whose body holds every later step and the tail,
// so a binding is visible exactly there.
//
// Lower never fails on a block built by [block.New]. A nil block lowers to a
// nil Node. The result shares no memory with b.
func Lower(ctx context.Context, b *block.DoBlock, opts ...Option) Node {
	if b == nil {
		return nil
	}

	cfg := config{logger: log.Default()}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return lower(ctx, cfg, b, 0)
}

// lower returns the lowering of the steps of b from index i onward.
func lower(ctx context.Context, cfg config, b *block.DoBlock, i int) Node {
	if i == len(b.Steps) {
		return &Expr{Expr: b.Tail}
	}

	step := b.Steps[i]

	method := Chain
	if i == len(b.Steps)-1 {
		method = Map
	}

	inv := &Invoke{
		Receiver: &Expr{Expr: step.Source},
		Method:   method,
		Callback: &Closure{Param: step.Pattern.Clone(), Body: lower(ctx, cfg, b, i+1)},
	}

	cfg.logger.TraceContext(ctx, "lower step",
		slog.Int("step", i),
		slog.Any("invoke", inv),
	)

	return inv
}
