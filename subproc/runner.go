// Package subproc runs external binaries behind a stub-friendly interface.
package subproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type (
	// Runner executes an external command in a working directory and returns
	// its standard output. Implementations must be safe for stubbing in tests.
	Runner interface {
		Run(ctx context.Context, dir, name string, args ...string) (stdout string, err error)
	}

	// ExecRunner is the production Runner backed by os/exec.
	ExecRunner struct{}

	// ExitError reports a command that ran but exited non-zero.
	ExitError struct {
		Name     string
		Args     []string
		ExitCode int
		Stderr   string
	}
)

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("`%s %s` exited with code %d", e.Name, strings.Join(e.Args, " "), e.ExitCode)

	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}

	return msg
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and returns its stdout.
// A non-zero exit yields an error wrapping [*ExitError]; other failures
// (binary not found, context canceled) are returned as-is.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	var exitErr *exec.ExitError

	if errors.As(err, &exitErr) {
		return stdout.String(), &ExitError{
			Name:     name,
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	} else if err != nil {
		return stdout.String(), fmt.Errorf("failed to run %q: %w", name, err)
	}

	return stdout.String(), nil
}
