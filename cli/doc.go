// Package cli contains the command line interface for chaindo.
//
// # Usage
//
//	chaindo lower 'do { x << xs; return x + 1 }'
//	chaindo rewrite -w src/*.js README.md
//	chaindo check --strict src/*.js
//	chaindo eval -D xs='[1, 2]' 'do { x << list(...xs); return x * 2 }'
//	chaindo repl
//
// # Configuration
//
// Flags not given on the command line are resolved from environment
// variables and from config.yaml or config.json in the configuration
// directory, falling back to flag defaults. The init command writes the
// current flag values to config.yaml.
//
// Environment variables are named by the CHAINDO_ prefix followed by the flag
// name in upper case, such as CHAINDO_LOG_LEVEL. Before parsing, a .env file
// in the working directory or the configuration directory is loaded without
// overriding variables already set. CHAINDO_CONFIG_DIR and CHAINDO_CACHE_DIR
// relocate the configuration and cache directories.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: colorize log output
//
// Logger flags take effect before the command line is parsed, so they apply
// to parse errors as well.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o chaindo .
//
//   - --pprof-mode: profile to record (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory, by default pprof under the
//     cache directory
package cli
