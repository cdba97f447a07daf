package cmd

import "github.com/pfgray/ecma-proposal-chainable-do-syntax/pkg"

var (
	ErrReadSource  = pkg.NewError("read source")
	ErrWriteSource = pkg.NewError("write source")
	ErrRewrite     = pkg.NewError("rewrite failed")
	ErrCheck       = pkg.NewError("check failed")
	ErrVariable    = pkg.NewError("invalid variable")
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrNoContext   = pkg.NewError("command run outside the command line")
)
