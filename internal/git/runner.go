package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	stackererrors "stacker.dev/stacker/internal/errors"
)

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
	env        []string
	trace      func(args []string)
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// WithTrace returns a copy of the runner that reports every invocation to fn.
func (r *CommandRunner) WithTrace(fn func(args []string)) *CommandRunner {
	c := *r
	c.trace = fn
	return &c
}

// WithEnv returns a copy of the runner that appends env to the process environment.
func (r *CommandRunner) WithEnv(env ...string) *CommandRunner {
	c := *r
	c.env = append(append([]string(nil), r.env...), env...)
	return &c
}

// WorkingDir returns the directory commands run in.
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	stdout, _, err := r.runInternal(ctx, "", args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stdout)), nil
}

// RunLines executes a git command and returns output as lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// RunCaptured executes a git command and returns both captured streams.
func (r *CommandRunner) RunCaptured(ctx context.Context, args ...string) ([]byte, []byte, error) {
	return r.runInternal(ctx, "", args...)
}

// runInternal is the internal implementation that handles directory, environment and input.
// There is no default timeout: only the caller's context can interrupt a command.
func (r *CommandRunner) runInternal(ctx context.Context, input string, args ...string) ([]byte, []byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.trace != nil {
		r.trace(args)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		code := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			code = exitErr.ExitCode()
		}
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return stdout.Bytes(), stderr.Bytes(), stackererrors.NewGitCommandError("git", args, code, stdout.Bytes(), stderr.Bytes(), err)
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}

// exitCode returns the exit status carried by a runner error, or 0.
func exitCode(err error) int {
	if status, ok := stackererrors.AsStatus(err); ok {
		return status.Code
	}
	return 0
}

// reclassify changes the kind of a runner error, keeping the captured output.
func reclassify(err error, kind stackererrors.Kind) error {
	if status, ok := stackererrors.AsStatus(err); ok {
		return status.WithKind(kind)
	}
	return err
}
