package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/syntax"
)

const (
	defaultEditor = "vi"
	editTemplate  = "do {\n  \n}\n"
)

// editBlockCommand implements [tea.ExecCommand] for the edit-parse-retry
// loop of a multi-line block. It writes the initial text to a temp file,
// opens the user's editor, and parses the result. On parse error the user
// is prompted to re-edit; declining exits the program.
type editBlockCommand struct {
	ctxFunc func() context.Context
	session *Session
	text    string
	edited  string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editBlockCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editBlockCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editBlockCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. An emptied file cancels the edit,
// leaving c.edited blank. If the user declines to re-edit a block that does
// not parse, it returns [ErrEditDeclined].
func (c *editBlockCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp(os.TempDir(), "chaindo-repl-*.js")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	content := c.text
	if strings.TrimSpace(content) == "" {
		content = editTemplate
	}

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		content = string(data)
		if strings.TrimSpace(content) == "" {
			return nil
		}

		_, parseErr := syntax.ParseBlock(ctx, content, c.session.syntax...)

		c.session.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("content_length", len(content)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.edited = content

			return nil
		}

		fmt.Fprintf(c.stderr, "\nParse error: %s\n", parseErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor launches $EDITOR, or vi, on path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
