package cmd

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/cli/cmd/repl"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
)

// Repl starts an interactive session evaluating do-blocks.
type Repl struct {
	Syntax  syntaxFlags  `embed:""`
	Codegen codegenFlags `embed:""`

	Vars map[string]string `help:"Bind a variable before the session starts (value parsed as YAML)" mapsep:"none" name:"var" placeholder:"NAME=VALUE" short:"D"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, err := parseVars(r.Vars)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	logger := log.With(slog.String("command", "repl"))

	session := repl.NewSession(
		repl.WithVars(env),
		repl.WithSyntax(r.Syntax.options()...),
		repl.WithCodegen(r.Codegen.options()...),
		repl.WithLogger(logger),
	)

	logger.DebugContext(ctx, "starting repl",
		slog.Any("vars", slices.Sorted(maps.Keys(env))),
	)

	return repl.Run(ctx, session, cacheDir, logger)
}
