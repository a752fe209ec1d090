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

	"github.com/qosasa/qosasa/log"
)

const defaultEditor = "vi"

// editFileCommand implements [tea.ExecCommand] for the edit-check-retry
// loop. It opens a snippet file in the user's editor and checks the result.
// On failure the user is asked whether to edit again; declining returns
// [ErrEditDeclined] and leaves the file as saved.
type editFileCommand struct {
	path    string
	check   func(context.Context) error
	ctxFunc func() context.Context
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editFileCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editFileCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editFileCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop.
func (c *editFileCommand) Run() error {
	ctx := c.ctxFunc()

	for attempt := 1; ; attempt++ {
		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, c.path); err != nil {
			return err
		}

		err := c.check(ctx)

		c.logger.TraceContext(ctx, "editor check",
			slog.String("path", c.path),
			slog.Int("attempt", attempt),
			slog.Bool("success", err == nil),
		)

		if err == nil {
			return nil
		}

		fmt.Fprintf(c.stderr, "\nerror: %s\n", err)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		if !confirm(c.stdin) {
			return ErrEditDeclined
		}
	}
}

// confirm reads a yes/no answer from r, defaulting to yes.
func confirm(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "n", "no":
		return false
	}

	return true
}

// runEditor opens path in $EDITOR and waits for it to exit.
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

	// $EDITOR may carry arguments, as in "code --wait".
	argv := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
