package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrNoContext
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	entries := i.entries(ktx)

	data, err := yaml.MarshalContext(ctx, entries, yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("entries", len(entries)),
	)

	return nil
}

// entries returns the set values of every configurable flag in model
// order, keyed by flag name.
func (i *Init) entries(ktx *kong.Context) yaml.MapSlice {
	var entries yaml.MapSlice

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := flagValue(ktx.FlagValue(flag)); val != nil {
			entries = append(entries, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return entries
}

// flagValue returns v as written to the configuration file, or nil if v is
// unset or empty.
func flagValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case map[string]string:
		if len(v) == 0 {
			return nil
		}

		return v

	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v

	default:
		if s, ok := v.(interface{ String() string }); ok {
			return flagValue(s.String())
		}

		return flagValue(strings.TrimSpace(yamlScalar(v)))
	}
}

func yamlScalar(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}

	return string(data)
}
