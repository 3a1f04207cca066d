package git

import (
	"context"
	"iter"
)

// Config keys that init and clean toggle for the stacker namespace.
const (
	HideRefsConfigKey          = "transfer.hideRefs"
	ExcludeDecorationConfigKey = "log.excludeDecoration"
)

// Git is the narrow set of version-control capabilities the stack
// operations depend on. Repo is the production implementation; memgit
// provides an in-memory one for tests.
//
// Every write that takes an expected value is a compare-and-swap: it fails
// with errors.ErrRejected, without effect, when the current value differs.
type Git interface {
	// Reading state
	Snapshot(ctx context.Context) (*Snapshot, error)
	Head(ctx context.Context) (Branch, error)
	ValidateBranchName(ctx context.Context, name string) (Branch, error)
	TrackedBranches(ctx context.Context) (iter.Seq[Branch], error)
	ForkPoint(ctx context.Context, baseRefName, branchRefName string) (ObjectName, error)

	// Branches
	CreateBranch(ctx context.Context, name Branch, base Branch) error
	SwitchTo(ctx context.Context, branch Branch) error

	// References
	CreateSymbolicRef(ctx context.Context, name, target, note string) error
	CreateRef(ctx context.Context, name string, object ObjectName) error
	UpdateRef(ctx context.Context, name string, newObject, expectedOld ObjectName) error
	DeleteRef(ctx context.Context, name string, expected ObjectName) error
	DeleteSymbolicRef(ctx context.Context, name string) error

	// History rewriting and transport
	Push(ctx context.Context, branch Branch, remote string, expectedRemote ObjectName) error
	RebaseOnto(ctx context.Context, branch Branch, onto, upstream ObjectName) error
	FetchAllPruning(ctx context.Context) error

	// Configuration (both idempotent)
	AddConfigValue(ctx context.Context, key, value string) error
	RemoveConfigValuesMatching(ctx context.Context, key, pattern string) error
}
