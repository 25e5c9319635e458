package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/interfaces"
	"github.com/panelkit/panelship/pkg/domain/types"
	"mvdan.cc/sh/v3/shell"
)

type runner struct {
	dir    string
	stdout io.Writer
	stderr io.Writer
}

// Option configures the command runner
type Option func(*runner)

// WithDir sets the working directory of every command
func WithDir(dir string) Option {
	return func(r *runner) {
		r.dir = dir
	}
}

// WithOutput sets where streamed command output goes
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a CommandRunner backed by os/exec
func New(opts ...Option) interfaces.CommandRunner {
	r := &runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the command with output streamed to the configured writers
func (r *runner) Run(ctx context.Context, name string, args ...string) error {
	ctxlog.From(ctx).Debug("Running command", "name", name, "args", args, "dir", r.dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		return wrapExecError(err, name, args, "")
	}
	return nil
}

// Output executes the command and returns its trimmed standard output
func (r *runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	ctxlog.From(ctx).Debug("Running command", "name", name, "args", args, "dir", r.dir)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", wrapExecError(err, name, args, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

func wrapExecError(err error, name string, args []string, stderr string) error {
	opts := []goerr.Option{
		goerr.V("command", name),
		goerr.V("args", args),
		goerr.T(types.ErrTagCommand),
	}
	if stderr != "" {
		opts = append(opts, goerr.V("stderr", strings.TrimSpace(stderr)))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		opts = append(opts, goerr.V("exit_code", exitErr.ExitCode()))
		return goerr.Wrap(err, "command exited with non-zero status", opts...)
	}
	return goerr.Wrap(err, "failed to execute command", opts...)
}

// ParseCommand splits a shell-like command line into argv. Quotes are
// honored, variable expansion is not performed.
func ParseCommand(line string) ([]string, error) {
	fields, err := shell.Fields(line, func(string) string { return "" })
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse command line",
			goerr.V("command", line),
			goerr.T(types.ErrTagConfig),
		)
	}
	if len(fields) == 0 {
		return nil, goerr.New("command line is empty", goerr.T(types.ErrTagConfig))
	}
	return fields, nil
}
