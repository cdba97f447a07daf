package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"
)

// stdinSource names the standard input wherever a source path is accepted.
const stdinSource = "-"

type (
	contextKey struct{}
	inputKey   struct{}
	outputKey  struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithInput returns a new context.Context whose commands read the source
// named "-" from r instead of os.Stdin.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithOutput returns a new context.Context whose commands write their
// results to w instead of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// source is the content of one input file.
type source struct {
	name string
	text string
	mode os.FileMode
}

func (s source) isStdin() bool { return s.name == stdinSource }

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// readSources reads every named source in order. The first "-" reads the
// command input; later ones, and paths resolving to a file already read,
// are skipped. No paths at all reads the command input.
func readSources(ctx context.Context, paths []string) ([]source, error) {
	if len(paths) == 0 {
		paths = []string{stdinSource}
	}

	var (
		sources = make([]source, 0, len(paths))
		seen    = make(map[fileKey]struct{})
		stdin   bool
	)

	for _, path := range paths {
		if err := context.Cause(ctx); err != nil {
			return nil, err
		}

		if path == stdinSource {
			if stdin {
				continue
			}

			stdin = true

			text, err := readAll(inputFrom(ctx))
			if err != nil {
				return nil, ErrReadSource.With(slog.String("file", path)).Wrap(err)
			}

			sources = append(sources, source{name: path, text: text})

			continue
		}

		src, ok, err := readUniqueFile(path, seen)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", path)).Wrap(err)
		}

		if ok {
			sources = append(sources, src)
		}
	}

	return sources, nil
}

// readUniqueFile reads the file at path unless a file with the same device
// and inode was read before.
func readUniqueFile(path string, seen map[fileKey]struct{}) (source, bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return source{}, false, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return source{}, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return source{}, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return source{}, false, nil
		}

		seen[key] = struct{}{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return source{}, false, err
	}
	defer file.Close()

	text, err := readAll(file)
	if err != nil {
		return source{}, false, err
	}

	return source{name: path, text: text, mode: info.Mode().Perm()}, true, nil
}

func readAll(r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)

	return string(data), err
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
