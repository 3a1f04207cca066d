package actions

import (
	"stacker.dev/stacker/internal/runtime"
	"stacker.dev/stacker/internal/tui"
)

// SyncAction fetches every remote, pruning deleted remote branches
func SyncAction(ctx *runtime.Context) error {
	if err := tui.WithSpinner(ctx.Context, ctx.Splog, "Fetching", ctx.Engine.Sync); err != nil {
		return err
	}
	ctx.Splog.Info("Fetched all remotes.")
	return nil
}
