package actions

import (
	"stacker.dev/stacker/internal/git"
	"stacker.dev/stacker/internal/runtime"
)

// InitAction hides stacker references from transfers and log decorations
func InitAction(ctx *runtime.Context) error {
	if err := ctx.Engine.Init(ctx.Context); err != nil {
		return err
	}
	ctx.Splog.Info("Initialized stacker: %s is hidden from fetches, pushes and log decorations.", git.RefPrefix)
	return nil
}

// CleanAction reverts InitAction. Recorded stack metadata is kept.
func CleanAction(ctx *runtime.Context) error {
	if err := ctx.Engine.Clean(ctx.Context); err != nil {
		return err
	}
	ctx.Splog.Info("Removed stacker configuration from the repository.")
	return nil
}
