package engine

import (
	"context"

	stackererrors "stacker.dev/stacker/internal/errors"
)

// Rebase replays the commits after the recorded start onto the base's
// current tip and advances the start to that tip. Conflicts are returned as
// errors.ErrRebaseConflict and left for the user to resolve; the start is
// not moved in that case.
func (e *engineImpl) Rebase(ctx context.Context) (RebaseResult, error) {
	snap, branch, err := e.currentState(ctx)
	if err != nil {
		return RebaseResult{}, err
	}
	baseRef, base, err := lookupBase(snap, branch)
	if err != nil {
		return RebaseResult{}, err
	}
	startRef, ok := snap.Lookup(branch.StartRefName())
	if !ok {
		return RebaseResult{}, stackererrors.NotFound("branch %s has no recorded start, run 'stacker fix'", branch)
	}
	if baseRef.Object == "" {
		return RebaseResult{}, stackererrors.NotFound("base branch %s of %s does not exist", base, branch)
	}

	if err := e.git.RebaseOnto(ctx, branch, baseRef.Object, startRef.Object); err != nil {
		return RebaseResult{}, err
	}
	if err := e.git.UpdateRef(ctx, branch.StartRefName(), baseRef.Object, startRef.Object); err != nil {
		return RebaseResult{}, err
	}

	return RebaseResult{Branch: branch, Base: base, OldStart: startRef.Object, NewStart: baseRef.Object}, nil
}
