package engine

import (
	"context"

	"stacker.dev/stacker/internal/git"
)

// Show returns the recorded state of every tracked branch, sorted by name.
// It reads a single snapshot and writes nothing.
func (e *engineImpl) Show(ctx context.Context) ([]BranchStatus, error) {
	snap, err := e.git.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	branches := snap.TrackedBranches()
	statuses := make([]BranchStatus, 0, len(branches))
	for _, branch := range branches {
		statuses = append(statuses, branchStatus(snap, branch))
	}
	return statuses, nil
}

func branchStatus(snap *git.Snapshot, branch git.Branch) BranchStatus {
	status := BranchStatus{Branch: branch}

	if ref, ok := snap.Lookup(branch.RefName()); ok {
		status.Tip = ref.Object
	} else {
		status.Orphaned = true
	}
	if ref, ok := snap.Lookup(branch.BaseRefName()); ok {
		if base, ok := git.BranchFromRefName(ref.SymrefTarget); ok {
			status.Base = base
			status.HasBase = true
		}
		if _, ok := snap.Lookup(ref.SymrefTarget); !ok {
			status.DanglingBase = true
		}
	}
	if ref, ok := snap.Lookup(branch.StartRefName()); ok {
		status.Start = ref.Object
	}

	cache, ok := snap.Lookup(branch.RemoteRefName())
	switch {
	case !ok:
		status.Publish = NeverPublished
	case cache.Object == status.Tip:
		status.Remote = cache.Object
		status.Publish = Published
	default:
		status.Remote = cache.Object
		status.Publish = Unpublished
	}
	return status
}
