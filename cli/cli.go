package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/cli/cmd"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/pkg"
)

// CLI is the top-level command-line interface for chaindo.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Lower   cmd.Lower   `cmd:"" help:"Print the lowered form of a do-block"`
	Rewrite cmd.Rewrite `cmd:"" help:"Replace the do-blocks of source files with their lowered form"`
	Check   cmd.Check   `cmd:"" help:"Report malformed blocks and questionable bindings"`
	Eval    cmd.Eval    `cmd:"" help:"Lower a do-block and evaluate it"`
	Repl    cmd.Repl    `cmd:"" help:"Evaluate do-blocks interactively"`
	Init    cmd.Init    `cmd:"" help:"Initialize configuration file"`
	Version cmd.Version `cmd:"" help:"Print version"`
}

// Run executes the chaindo CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	if err := loadEnv(baseEnv, configPath(baseEnv)); err != nil {
		return err
	}

	log.SetAttrs(slog.String("run", uuid.NewString()))

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"jobs":               strconv.Itoa(runtime.NumCPU()),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// TextUnmarshaler on logFormat and logLevel applies those flags during
	// parsing; the pre-scan also covers the booleans and the time layout.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.DefaultEnvars(strings.TrimSuffix(pkg.EnvPrefix(), "_")),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseJSONConfig)),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// loadEnv loads the dotenv files that exist among paths. Variables already
// set in the environment are not overridden.
func loadEnv(paths ...string) error {
	var found []string

	for _, p := range paths {
		_, err := os.Stat(p)
		switch {
		case err == nil:
			found = append(found, p)
		case !errors.Is(err, fs.ErrNotExist):
			return err
		}
	}

	if len(found) == 0 {
		return nil
	}

	return godotenv.Load(found...)
}
