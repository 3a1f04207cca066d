package engine

import (
	"context"

	"stacker.dev/stacker/internal/git"
)

// DefaultRemote is used by Push when the base branch has no remote.
const DefaultRemote = "origin"

// StackReader reports on tracked branches without modifying anything
type StackReader interface {
	Show(ctx context.Context) ([]BranchStatus, error)
}

// StackWriter provides the operations that create, publish and repair
// stacked branches
type StackWriter interface {
	// Repository setup
	Init(ctx context.Context) error
	Clean(ctx context.Context) error

	// Branch lifecycle
	Start(ctx context.Context, name string) (StartResult, error)
	Push(ctx context.Context) (PushResult, error)
	Rebase(ctx context.Context) (RebaseResult, error)
	Sync(ctx context.Context) error

	// Reconciliation
	Fix(ctx context.Context, opts FixOptions) (FixReport, error)
}

// Engine is the complete set of stack operations
type Engine interface {
	StackReader
	StackWriter
}

// Options configures an engine
type Options struct {
	// DefaultRemote is pushed to when the base branch has no remote.
	DefaultRemote string
}

// New creates an engine operating on g
func New(g git.Git, opts Options) Engine {
	if opts.DefaultRemote == "" {
		opts.DefaultRemote = DefaultRemote
	}
	return &engineImpl{git: g, defaultRemote: opts.DefaultRemote}
}
