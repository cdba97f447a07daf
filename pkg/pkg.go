// Package pkg holds project metadata and the structured error type shared by
// the other packages.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It also names the configuration and cache
	// directories and prefixes environment variables.
	Name = "chaindo"

	// Description is the one-line summary shown in help output.
	Description = "Desugar chainable do-blocks into nested chain/map calls"
)

// EnvPrefix returns the prefix of environment variables read by the command
// line, for example "CHAINDO_".
func EnvPrefix() string {
	return strings.ToUpper(Name) + "_"
}
