package engine

import (
	"context"
	"fmt"
	"regexp"

	stackererrors "stacker.dev/stacker/internal/errors"
	"stacker.dev/stacker/internal/git"
)

// engineImpl drives the stack operations through a git.Git
type engineImpl struct {
	git           git.Git
	defaultRemote string
}

// namespaceConfigKeys hide the stacker namespace from transfers and log
// decorations once init has run.
var namespaceConfigKeys = []string{
	git.HideRefsConfigKey,
	git.ExcludeDecorationConfigKey,
}

// namespacePattern matches exactly the value init adds.
var namespacePattern = "^" + regexp.QuoteMeta(git.RefPrefix) + "$"

// Init hides the stacker namespace. Running it twice changes nothing.
func (e *engineImpl) Init(ctx context.Context) error {
	for _, key := range namespaceConfigKeys {
		if err := e.git.AddConfigValue(ctx, key, git.RefPrefix); err != nil {
			return err
		}
	}
	return nil
}

// Clean reverts Init. Running it twice changes nothing.
func (e *engineImpl) Clean(ctx context.Context) error {
	for _, key := range namespaceConfigKeys {
		if err := e.git.RemoveConfigValuesMatching(ctx, key, namespacePattern); err != nil {
			return err
		}
	}
	return nil
}

// currentState takes a snapshot and resolves the current branch
func (e *engineImpl) currentState(ctx context.Context) (*git.Snapshot, git.Branch, error) {
	snap, err := e.git.Snapshot(ctx)
	if err != nil {
		return nil, git.Branch{}, err
	}
	branch, err := e.git.Head(ctx)
	if err != nil {
		return nil, git.Branch{}, err
	}
	return snap, branch, nil
}

// lookupBase returns the base reference of branch and the branch it targets
func lookupBase(snap *git.Snapshot, branch git.Branch) (git.Ref, git.Branch, error) {
	baseRef, ok := snap.Lookup(branch.BaseRefName())
	if !ok {
		return git.Ref{}, git.Branch{}, stackererrors.NotFound("branch %s is not tracked by stacker (no base)", branch)
	}
	base, ok := git.BranchFromRefName(baseRef.SymrefTarget)
	if !ok {
		return git.Ref{}, git.Branch{}, fmt.Errorf("%s does not point at a branch: %w", baseRef.Name,
			stackererrors.InvalidArgument("unexpected base target %q", baseRef.SymrefTarget))
	}
	return baseRef, base, nil
}

// lookupTip returns the object a branch points at
func lookupTip(snap *git.Snapshot, branch git.Branch) (git.ObjectName, error) {
	ref, ok := snap.Lookup(branch.RefName())
	if !ok {
		return "", stackererrors.NewBranchNotFoundError(branch.Name())
	}
	return ref.Object, nil
}
