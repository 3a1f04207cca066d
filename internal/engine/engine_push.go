package engine

import (
	"context"

	stackererrors "stacker.dev/stacker/internal/errors"
	"stacker.dev/stacker/internal/git"
)

// Push publishes the current branch to its base's remote.
//
// The push carries a lease on the last published commit recorded in the
// remote cache, or on the branch not existing remotely when nothing was
// published yet. Only after the push succeeds is the cache advanced, itself
// asserting the value the lease used. A crash in between leaves the cache
// behind the remote, and the next push fails its lease instead of
// overwriting someone else's work.
func (e *engineImpl) Push(ctx context.Context) (PushResult, error) {
	snap, branch, err := e.currentState(ctx)
	if err != nil {
		return PushResult{}, err
	}
	baseRef, base, err := lookupBase(snap, branch)
	if err != nil {
		return PushResult{}, err
	}
	baseTarget, ok := snap.Lookup(baseRef.SymrefTarget)
	if !ok {
		return PushResult{}, stackererrors.NotFound("base branch %s of %s does not exist", base, branch)
	}
	remote, ok := baseTarget.RemoteName()
	if !ok {
		remote = e.defaultRemote
	}

	expected := git.NonExistentObject
	if cache, ok := snap.Lookup(branch.RemoteRefName()); ok {
		expected = cache.Object
	}
	if err := e.git.Push(ctx, branch, remote, expected); err != nil {
		return PushResult{}, err
	}

	snap, branch, err = e.currentState(ctx)
	if err != nil {
		return PushResult{}, err
	}
	tip, err := lookupTip(snap, branch)
	if err != nil {
		return PushResult{}, err
	}
	if err := e.git.UpdateRef(ctx, branch.RemoteRefName(), tip, expected); err != nil {
		return PushResult{}, err
	}

	return PushResult{Branch: branch, Remote: remote, Expected: expected, Published: tip}, nil
}
