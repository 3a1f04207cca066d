package engine

import (
	"context"
	"fmt"

	stackererrors "stacker.dev/stacker/internal/errors"
)

// Start creates branch name on top of the current branch, switches to it and
// records the current branch as its base and the base's tip as its start.
func (e *engineImpl) Start(ctx context.Context, name string) (StartResult, error) {
	snap, base, err := e.currentState(ctx)
	if err != nil {
		return StartResult{}, err
	}
	branch, err := e.git.ValidateBranchName(ctx, name)
	if err != nil {
		return StartResult{}, err
	}

	baseTip, err := lookupTip(snap, base)
	if err != nil {
		return StartResult{}, err
	}
	if _, exists := snap.Lookup(branch.RefName()); exists {
		return StartResult{}, stackererrors.Conflict("fatal: a branch named '%s' already exists", branch)
	}

	if err := e.git.CreateBranch(ctx, branch, base); err != nil {
		return StartResult{}, err
	}
	if err := e.git.SwitchTo(ctx, branch); err != nil {
		return StartResult{}, err
	}
	note := fmt.Sprintf("stacker: start %s from %s", branch, base)
	if err := e.git.CreateSymbolicRef(ctx, branch.BaseRefName(), base.RefName(), note); err != nil {
		return StartResult{}, err
	}
	if err := e.git.CreateRef(ctx, branch.StartRefName(), baseTip); err != nil {
		return StartResult{}, err
	}

	return StartResult{Branch: branch, Base: base, Start: baseTip}, nil
}
