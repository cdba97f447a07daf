package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML configuration files,
// such as the one written by the init command.
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// Keys are flag names. Nested mappings are flattened by joining keys with
// "-", and underscores may stand in for hyphens:
//
//	log:
//	  level: debug
//	log_format: text
//	jobs: 4
//
// applies --log-level=debug, --log-format=text and --jobs=4. Numbers are
// passed to kong as strings. Command-line flags override configured values.
//
// A file that does not parse is logged and ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).DecodeContext(ctx, &doc); err != nil {
			if err != io.EOF {
				log.WarnContext(ctx, "ignoring configuration",
					slog.String("error", err.Error()),
				)
			}

			return config{}, nil
		}

		c := config{}
		c.flatten("", doc)

		return c, nil
	}
}

// config implements [kong.Resolver] over a flattened YAML document.
type config map[string]any

// flatten stores every entry of m under prefix. A nested mapping is stored
// both whole, for map-typed flags, and per key.
func (c config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "-" + k
		}

		if sub, ok := v.(map[string]any); ok {
			c[key] = kongValue(sub)
			c.flatten(key, sub)

			continue
		}

		c[key] = kongValue(v)
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	if v, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	return nil, nil
}

// kongValue converts a decoded YAML value into a form kong's mappers accept.
func kongValue(v any) any {
	switch v := v.(type) {
	case nil, bool, string:
		return v
	case int, int64, uint64, float64:
		return fmt.Sprint(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = kongValue(e)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = kongValue(e)
		}

		return out
	default:
		return fmt.Sprint(v)
	}
}
