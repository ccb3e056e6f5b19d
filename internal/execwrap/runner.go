// Package execwrap runs external collaborator processes (jmtpfs, rsync,
// the FIT parser) with captured output and exit codes.
//
// Adapters depend on the Runner interface rather than os/exec directly so
// tests can substitute a fake and assert on the exact invocations.
package execwrap

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
)

// Result holds the output and exit status from a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external commands.
type Runner interface {
	// Run executes program with args and captures its output.
	// A non-zero exit is reported via Result.ExitCode, not via error;
	// error is reserved for failures to execute at all (program missing,
	// context cancelled before completion).
	Run(ctx context.Context, program string, args ...string) (*Result, error)

	// RunWithInput is Run with stdin supplied from input.
	RunWithInput(ctx context.Context, input io.Reader, program string, args ...string) (*Result, error)
}

// Ensure CommandRunner implements the interface.
var _ Runner = (*CommandRunner)(nil)

// CommandRunner is the os/exec-backed Runner.
type CommandRunner struct{}

// NewCommandRunner creates a new command runner.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{}
}

// Run executes program with args and captures its output.
func (r *CommandRunner) Run(ctx context.Context, program string, args ...string) (*Result, error) {
	return r.RunWithInput(ctx, nil, program, args...)
}

// RunWithInput is Run with stdin supplied from input.
func (r *CommandRunner) RunWithInput(ctx context.Context, input io.Reader, program string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, program, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if input != nil {
		cmd.Stdin = input
	}

	err := cmd.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// FirstStderrLine returns the first non-empty stderr line, for terse
// error messages around external tool failures.
func (res *Result) FirstStderrLine() string {
	for _, line := range strings.Split(res.Stderr, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}
