// Package errors provides the failure value used across stacker and the
// sentinel errors it classifies into.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrNotFound indicates that a snapshot lookup found nothing where a value was required
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an explicit, human-readable conflict such as an already defined base
	ErrConflict = errors.New("conflict")

	// ErrInvalidArgument indicates malformed or missing command input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRejected indicates that a compare-and-swap write or a remote-state assertion did not hold
	ErrRejected = errors.New("rejected")

	// ErrRebaseConflict indicates that a rebase operation encountered a content conflict
	ErrRebaseConflict = errors.New("rebase conflict")
)

// Kind is the coarse classification of a Status.
type Kind int

const (
	// KindFailed is an unclassified failure of an underlying operation
	KindFailed Kind = iota
	KindNotFound
	KindConflict
	KindInvalidArgument
	KindRejected
	KindRebaseConflict
	KindNotOnBranch
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindInvalidArgument:
		return "invalid argument"
	case KindRejected:
		return "rejected"
	case KindRebaseConflict:
		return "rebase conflict"
	case KindNotOnBranch:
		return "not on a branch"
	default:
		return "failed"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindRejected:
		return ErrRejected
	case KindRebaseConflict:
		return ErrRebaseConflict
	case KindNotOnBranch:
		return ErrNotOnBranch
	default:
		return nil
	}
}

// Status is the single failure value returned by every stacker operation.
// It carries a numeric status and the captured standard output and standard
// error of whichever underlying operation failed.
type Status struct {
	Kind    Kind
	Code    int
	Command string
	Args    []string
	Stdout  []byte
	Stderr  []byte
	Err     error
}

func (e *Status) Error() string {
	var msg string
	if e.Command != "" {
		msg = fmt.Sprintf("%s command failed", e.Command)
		if len(e.Args) > 0 {
			msg += fmt.Sprintf(": %s", strings.Join(e.Args, " "))
		}
		if e.Code != 0 {
			msg += fmt.Sprintf(" (exit status %d)", e.Code)
		}
		if len(e.Stderr) > 0 {
			msg += fmt.Sprintf("\nstderr: %s", strings.TrimSpace(string(e.Stderr)))
		}
		if len(e.Stdout) > 0 {
			msg += fmt.Sprintf("\nstdout: %s", strings.TrimSpace(string(e.Stdout)))
		}
		return msg
	}
	if len(e.Stderr) > 0 {
		return strings.TrimSpace(string(e.Stderr))
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

// Is reports whether target is the sentinel for this status' kind.
func (e *Status) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func (e *Status) Unwrap() error {
	return e.Err
}

// WithKind returns a copy of the status reclassified as kind.
func (e *Status) WithKind(kind Kind) *Status {
	c := *e
	c.Kind = kind
	return &c
}

// NewStatus creates an unclassified Status from captured output.
func NewStatus(code int, stdout, stderr []byte) *Status {
	return &Status{Kind: KindFailed, Code: code, Stdout: stdout, Stderr: stderr}
}

// NewGitCommandError creates a Status for a failed external command.
func NewGitCommandError(command string, args []string, code int, stdout, stderr []byte, err error) *Status {
	return &Status{
		Kind:    KindFailed,
		Code:    code,
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

func newMessage(kind Kind, format string, args ...any) *Status {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Status{Kind: kind, Code: 1, Stderr: []byte(msg + "\n")}
}

// NotFound creates a not-found Status whose stderr carries the message.
func NotFound(format string, args ...any) *Status {
	return newMessage(KindNotFound, format, args...)
}

// Conflict creates a conflict Status, e.g. "base branch already defined".
func Conflict(format string, args ...any) *Status {
	return newMessage(KindConflict, format, args...)
}

// InvalidArgument creates an invalid-argument Status, e.g. "base not specified".
func InvalidArgument(format string, args ...any) *Status {
	return newMessage(KindInvalidArgument, format, args...)
}

// Rejected creates a rejected Status for a failed assertion.
func Rejected(format string, args ...any) *Status {
	return newMessage(KindRejected, format, args...)
}

// NotOnBranch creates the Status returned when HEAD is detached.
func NotOnBranch() *Status {
	return newMessage(KindNotOnBranch, "not on a branch")
}

// NewBranchNotFoundError creates a not-found Status for a missing branch.
func NewBranchNotFoundError(branchName string) *Status {
	return NotFound("branch %s does not exist", branchName)
}

// NewRebaseConflictError creates the distinguished conflict failure of a rebase.
func NewRebaseConflictError(branchName string, stdout, stderr []byte) *Status {
	return &Status{
		Kind:   KindRebaseConflict,
		Code:   1,
		Stdout: stdout,
		Stderr: stderr,
		Err:    fmt.Errorf("rebase conflict on branch %s", branchName),
	}
}

// AsStatus extracts the Status from err, if any.
func AsStatus(err error) (*Status, bool) {
	var s *Status
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}

// ExitCode maps an error to the process exit status: 0 on success, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
