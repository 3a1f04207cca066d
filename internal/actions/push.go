package actions

import (
	"context"

	"stacker.dev/stacker/internal/engine"
	"stacker.dev/stacker/internal/runtime"
	"stacker.dev/stacker/internal/tui"
	"stacker.dev/stacker/internal/tui/style"
)

// PushAction publishes the current branch with a lease on its remote cache
func PushAction(ctx *runtime.Context) error {
	var result engine.PushResult
	err := tui.WithSpinner(ctx.Context, ctx.Splog, "Pushing", func(gctx context.Context) error {
		var err error
		result, err = ctx.Engine.Push(gctx)
		return err
	})
	if err != nil {
		return err
	}

	if result.FirstPublish() {
		ctx.Splog.Info("Published %s to %s at %s.",
			style.ColorBranchName(result.Branch.Name(), false),
			result.Remote,
			style.ColorObject(result.Published.Short()))
		return nil
	}
	ctx.Splog.Info("Pushed %s to %s: %s..%s.",
		style.ColorBranchName(result.Branch.Name(), false),
		result.Remote,
		style.ColorObject(result.Expected.Short()),
		style.ColorObject(result.Published.Short()))
	return nil
}
