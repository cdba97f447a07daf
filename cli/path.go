package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/pkg"
)

const (
	// baseConfig is the base name of the configuration file.
	baseConfig = "config.yaml"

	// baseJSONConfig is an optional JSON alternative to baseConfig.
	baseJSONConfig = "config.json"

	// baseEnv is the base name of the dotenv file loaded before parsing.
	baseEnv = ".env"

	defaultDirMode os.FileMode = 0o700
)

// appName returns the directory name used under the user's configuration and
// cache directories.
//
// It is the base name of the executable without extension, except:
//   - "__debug_bin" followed by digits (dlv output) becomes [pkg.Name]
//   - leading dots are removed
var appName = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))
		id = debugBin.ReplaceAllString(id, pkg.Name)
		id = strings.TrimLeft(id, ".")

		if id == "" {
			return pkg.Name
		}

		return id
	},
)

var debugBin = regexp.MustCompile(`^__debug_bin\d*$`)

// userDir resolves a per-user directory for the application. An environment
// variable named by suffix (for example CHAINDO_CACHE_DIR) overrides the
// platform default returned by base. If base fails, hidden is joined to the
// home directory, and the working directory is the last resort.
func userDir(suffix string, base func() (string, error), hidden string) string {
	if dir := os.Getenv(pkg.EnvPrefix() + suffix); dir != "" {
		return dir
	}

	dir, err := base()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			wd, werr := os.Getwd()
			if werr != nil {
				wd = "."
			}

			return filepath.Join(wd, "."+appName())
		}

		dir = filepath.Join(home, hidden)
	}

	return filepath.Join(dir, appName())
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string {
		return userDir("CONFIG_DIR", os.UserConfigDir, ".config")
	},
)

// cacheDir returns the directory used for transient files such as the repl
// history and profiles.
var cacheDir = sync.OnceValue(
	func() string {
		return userDir("CACHE_DIR", os.UserCacheDir, ".cache")
	},
)

// configPath joins elem to the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
