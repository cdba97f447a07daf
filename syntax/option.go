package syntax

import (
	"strings"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/codegen"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
)

// DefaultBindMarker separates a pattern from its source in a bind step.
const DefaultBindMarker = "<-"

// Option configures parsing and rewriting.
type Option func(*config)

type config struct {
	marker  string
	origin  block.Position
	logger  log.Logger
	codegen []codegen.Option
}

func makeConfig(opts ...Option) config {
	c := config{
		marker: DefaultBindMarker,
		origin: block.Position{Line: 1, Column: 1},
		logger: log.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// options returns opts reproducing c with a different origin.
func (c config) options(origin block.Position) []Option {
	return []Option{
		WithBindMarker(c.marker),
		WithOrigin(origin),
		WithLogger(c.logger),
		WithCodegen(c.codegen...),
	}
}

// WithBindMarker sets the token separating pattern and source. A blank
// marker keeps [DefaultBindMarker].
func WithBindMarker(marker string) Option {
	return func(c *config) {
		if marker = strings.TrimSpace(marker); marker != "" {
			c.marker = marker
		}
	}
}

// WithOrigin sets the position of the first byte of the parsed text within
// a larger document. Reported positions are shifted by it.
func WithOrigin(pos block.Position) Option {
	return func(c *config) {
		if pos.IsValid() {
			c.origin = pos
		}
	}
}

// WithLogger sets the logger receiving Trace and Debug records.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithCodegen sets the printer options used by [Rewrite].
func WithCodegen(opts ...codegen.Option) Option {
	return func(c *config) { c.codegen = opts }
}
