package actions

import (
	"errors"

	stackererrors "stacker.dev/stacker/internal/errors"
	"stacker.dev/stacker/internal/runtime"
	"stacker.dev/stacker/internal/tui"
	"stacker.dev/stacker/internal/tui/style"
)

// StartOptions contains options for the start command
type StartOptions struct {
	// Name of the new branch. Prompted for when empty.
	Name string
}

// StartAction creates a stacked branch on top of the current branch
func StartAction(ctx *runtime.Context, opts StartOptions) error {
	name := opts.Name
	if name == "" {
		prompted, err := promptBranchName(ctx)
		if err != nil {
			return err
		}
		name = prompted
	}

	result, err := ctx.Engine.Start(ctx.Context, name)
	if err != nil {
		return err
	}

	ctx.Splog.Info("Started %s on top of %s at %s.",
		style.ColorBranchName(result.Branch.Name(), true),
		style.ColorBranchName(result.Base.Name(), false),
		style.ColorObject(result.Start.Short()))
	return nil
}

func promptBranchName(ctx *runtime.Context) (string, error) {
	name, err := tui.PromptBranchName("Name of the new branch:", func(name string) error {
		_, err := ctx.Git.ValidateBranchName(ctx.Context, name)
		return err
	})
	if errors.Is(err, tui.ErrInteractiveDisabled) {
		return "", stackererrors.InvalidArgument("branch name not specified")
	}
	return name, err
}
