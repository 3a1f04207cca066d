package actions

import (
	"errors"
	"strings"

	stackererrors "stacker.dev/stacker/internal/errors"
	"stacker.dev/stacker/internal/git"
	"stacker.dev/stacker/internal/runtime"
	"stacker.dev/stacker/internal/tui"
)

// ShowAction lists every tracked branch with its base and publish state
func ShowAction(ctx *runtime.Context) error {
	statuses, err := ctx.Engine.Show(ctx.Context)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		ctx.Splog.Info("No stacked branches. Create one with stacker start <name>.")
		return nil
	}

	current, err := ctx.Git.Head(ctx.Context)
	if err != nil && !errors.Is(err, stackererrors.ErrNotOnBranch) {
		return err
	}
	if err != nil {
		current = git.Branch{}
	}

	ctx.Splog.Info("%s", strings.TrimSuffix(tui.RenderBranchStatus(statuses, current), "\n"))
	return nil
}
