package actions

import (
	"errors"

	stackererrors "stacker.dev/stacker/internal/errors"
	"stacker.dev/stacker/internal/runtime"
	"stacker.dev/stacker/internal/tui/style"
)

// RebaseAction moves the current branch onto its base's current tip
func RebaseAction(ctx *runtime.Context) error {
	result, err := ctx.Engine.Rebase(ctx.Context)
	if errors.Is(err, stackererrors.ErrRebaseConflict) {
		ctx.Splog.Tip("Resolve the conflicts, then run git rebase --continue or git rebase --abort.")
		return err
	}
	if err != nil {
		return err
	}

	if !result.Moved() {
		ctx.Splog.Info("%s is already based on %s.",
			style.ColorBranchName(result.Branch.Name(), true),
			style.ColorBranchName(result.Base.Name(), false))
		return nil
	}
	ctx.Splog.Info("Rebased %s onto %s (%s).",
		style.ColorBranchName(result.Branch.Name(), true),
		style.ColorBranchName(result.Base.Name(), false),
		style.ColorObject(result.NewStart.Short()))
	return nil
}
