// Package runner spawns external tools for the release pipeline.
//
// Arguments are passed as discrete tokens; no shell is involved. A tool that
// cannot be found is reported separately from a tool that ran and failed.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// ErrToolNotFound indicates the executable could not be resolved.
	ErrToolNotFound = errors.New("tool not found")
	// ErrToolFailed indicates the tool exited with a non-zero status.
	ErrToolFailed = errors.New("tool failed")
)

// Command is one invocation of an external tool.
type Command struct {
	Name string
	Args []string
	Dir  string // working directory, empty for the current one
}

// String renders the command line for logs and errors.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Options controls how a command is run.
type Options struct {
	// StreamOutput forwards stdout and stderr to the runner's writer as produced.
	StreamOutput bool
	// CheckExitCode turns a non-zero exit into a ToolFailedError.
	CheckExitCode bool
}

// ToolNotFoundError reports an executable missing from PATH.
type ToolNotFoundError struct {
	Tool string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s: executable not found", e.Tool)
}

// Is reports whether target is ErrToolNotFound.
func (e *ToolNotFoundError) Is(target error) bool {
	return target == ErrToolNotFound
}

// Unwrap returns the lookup error.
func (e *ToolNotFoundError) Unwrap() error {
	return e.Err
}

// ToolFailedError reports a non-zero exit status.
type ToolFailedError struct {
	Command  string
	ExitCode int
}

func (e *ToolFailedError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}

// Unwrap returns ErrToolFailed.
func (e *ToolFailedError) Unwrap() error {
	return ErrToolFailed
}

// Runner runs external commands.
type Runner interface {
	// Run blocks until the command exits and returns its exit code.
	Run(ctx context.Context, cmd Command, opts Options) (int, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	out      io.Writer
	logger   zerolog.Logger
	lookPath func(string) (string, error)
}

// NewExecRunner creates a runner that streams output to out.
// A nil out streams to os.Stdout.
func NewExecRunner(out io.Writer, logger zerolog.Logger) *ExecRunner {
	if out == nil {
		out = os.Stdout
	}
	return &ExecRunner{
		out:      out,
		logger:   logger,
		lookPath: exec.LookPath,
	}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, c Command, opts Options) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, fmt.Errorf("context cancelled: %w", err)
	}

	path, err := r.lookPath(c.Name)
	if err != nil {
		return -1, &ToolNotFoundError{Tool: c.Name, Err: err}
	}

	r.logger.Debug().Str("cmd", c.String()).Str("dir", c.Dir).Msg("running")

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	if opts.StreamOutput {
		cmd.Stdout = r.out
		cmd.Stderr = r.out
	} else {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	}

	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		code := exitErr.ExitCode()
		r.logger.Debug().Str("cmd", c.Name).Int("exit_code", code).Msg("exited")
		if opts.CheckExitCode {
			return code, &ToolFailedError{Command: c.String(), ExitCode: code}
		}
		return code, nil
	default:
		return -1, fmt.Errorf("run %s: %w", c.Name, err)
	}

	r.logger.Debug().Str("cmd", c.Name).Int("exit_code", 0).Msg("exited")
	return 0, nil
}
