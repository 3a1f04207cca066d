package engine

import (
	"context"

	stackererrors "stacker.dev/stacker/internal/errors"
	"stacker.dev/stacker/internal/git"
)

// fixStage is one step of Fix. Every stage gets its own snapshot so it sees
// the writes of the stages before it.
type fixStage func(ctx context.Context, e *engineImpl, snap *git.Snapshot, opts FixOptions, report *FixReport) error

// fixPipeline runs in order; the first failing stage stops Fix.
var fixPipeline = []fixStage{
	pairStage,
	collectGarbageStage,
	repairStage,
}

// Fix reconciles the stacker namespace with the branches that exist.
//
// With opts.Branch set, the branch is first paired with opts.Base. Then the
// auxiliary references of deleted branches are removed, and tracked branches
// that have a base but no start get their fork point recomputed.
func (e *engineImpl) Fix(ctx context.Context, opts FixOptions) (FixReport, error) {
	return e.runFix(ctx, fixPipeline, opts)
}

func (e *engineImpl) runFix(ctx context.Context, stages []fixStage, opts FixOptions) (FixReport, error) {
	var report FixReport
	for _, stage := range stages {
		snap, err := e.git.Snapshot(ctx)
		if err != nil {
			return report, err
		}
		if err := stage(ctx, e, snap, opts, &report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// pairStage records opts.Base as the base of opts.Branch. An existing base
// must match; an existing start is kept as is.
func pairStage(ctx context.Context, e *engineImpl, snap *git.Snapshot, opts FixOptions, report *FixReport) error {
	if opts.Branch == "" {
		return nil
	}
	if opts.Base == "" {
		return stackererrors.InvalidArgument("base not specified")
	}
	branch, err := e.git.ValidateBranchName(ctx, opts.Branch)
	if err != nil {
		return err
	}
	base, err := e.git.ValidateBranchName(ctx, opts.Base)
	if err != nil {
		return err
	}
	if _, ok := snap.Lookup(branch.RefName()); !ok {
		return stackererrors.NewBranchNotFoundError(branch.Name())
	}
	if _, ok := snap.Lookup(base.RefName()); !ok {
		return stackererrors.NewBranchNotFoundError(base.Name())
	}

	pairing := &Pairing{Branch: branch, Base: base}
	if baseRef, ok := snap.Lookup(branch.BaseRefName()); ok {
		if baseRef.SymrefTarget != base.RefName() {
			return stackererrors.Conflict("base branch already defined")
		}
	} else {
		if err := e.git.CreateSymbolicRef(ctx, branch.BaseRefName(), base.RefName(), "stacker: set base branch"); err != nil {
			return err
		}
		pairing.BaseCreated = true
	}

	// TODO: check that an existing start is reachable from the new base.
	if _, ok := snap.Lookup(branch.StartRefName()); !ok {
		forkPoint, err := e.git.ForkPoint(ctx, base.RefName(), branch.RefName())
		if err != nil {
			return err
		}
		if err := e.git.CreateRef(ctx, branch.StartRefName(), forkPoint); err != nil {
			return err
		}
		pairing.StartCreated = true
	}

	report.Paired = pairing
	return nil
}

// collectGarbageStage deletes every auxiliary reference of branches that no
// longer exist. Direct references are deleted against the snapshot value.
func collectGarbageStage(ctx context.Context, e *engineImpl, snap *git.Snapshot, _ FixOptions, report *FixReport) error {
	tracked, err := e.git.TrackedBranches(ctx)
	if err != nil {
		return err
	}
	for branch := range tracked {
		if _, ok := snap.Lookup(branch.RefName()); ok {
			continue
		}
		deleted := false
		if ref, ok := snap.Lookup(branch.BaseRefName()); ok {
			if err := e.git.DeleteSymbolicRef(ctx, ref.Name); err != nil {
				return err
			}
			deleted = true
		}
		for _, name := range []string{branch.StartRefName(), branch.RemoteRefName()} {
			if ref, ok := snap.Lookup(name); ok {
				if err := e.git.DeleteRef(ctx, ref.Name, ref.Object); err != nil {
					return err
				}
				deleted = true
			}
		}
		// Tracked since the snapshot was taken; the next run sees it.
		if deleted {
			report.Collected = append(report.Collected, branch)
		}
	}
	return nil
}

// repairStage recomputes missing start references from the base. Branches
// whose base is gone, or that have a start but no base, are reported only.
func repairStage(ctx context.Context, e *engineImpl, snap *git.Snapshot, _ FixOptions, report *FixReport) error {
	tracked, err := e.git.TrackedBranches(ctx)
	if err != nil {
		return err
	}
	for branch := range tracked {
		if _, ok := snap.Lookup(branch.RefName()); !ok {
			continue
		}
		_, hasStart := snap.Lookup(branch.StartRefName())
		baseRef, hasBase := snap.Lookup(branch.BaseRefName())
		switch {
		case hasBase && !hasStart:
			if _, ok := snap.Lookup(baseRef.SymrefTarget); !ok {
				report.Unresolved = append(report.Unresolved, Finding{Branch: branch, Reason: FindingDanglingBase})
				continue
			}
			forkPoint, err := e.git.ForkPoint(ctx, baseRef.SymrefTarget, branch.RefName())
			if err != nil {
				return err
			}
			if err := e.git.CreateRef(ctx, branch.StartRefName(), forkPoint); err != nil {
				return err
			}
			report.Repaired = append(report.Repaired, branch)
		case !hasBase && hasStart:
			report.Unresolved = append(report.Unresolved, Finding{Branch: branch, Reason: FindingMissingBase})
		}
	}
	return nil
}
