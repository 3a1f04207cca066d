package actions

import (
	"stacker.dev/stacker/internal/engine"
	"stacker.dev/stacker/internal/runtime"
	"stacker.dev/stacker/internal/tui/style"
)

// FixOptions contains options for the fix command
type FixOptions struct {
	Branch string
	Base   string
}

// FixAction pairs, collects and repairs stack metadata
func FixAction(ctx *runtime.Context, opts FixOptions) error {
	if opts.Branch == "" && opts.Base != "" {
		ctx.Splog.Warn("--base has no effect without --branch")
	}

	report, err := ctx.Engine.Fix(ctx.Context, engine.FixOptions{Branch: opts.Branch, Base: opts.Base})
	if err != nil {
		return err
	}

	if p := report.Paired; p != nil {
		if p.BaseCreated || p.StartCreated {
			ctx.Splog.Info("Tracking %s on top of %s.",
				style.ColorBranchName(p.Branch.Name(), false),
				style.ColorBranchName(p.Base.Name(), false))
		} else {
			ctx.Splog.Info("%s is already tracked on top of %s.",
				style.ColorBranchName(p.Branch.Name(), false),
				style.ColorBranchName(p.Base.Name(), false))
		}
	}
	for _, b := range report.Collected {
		ctx.Splog.Info("Removed metadata of deleted branch %s.", style.ColorDim(b.Name()))
	}
	for _, b := range report.Repaired {
		ctx.Splog.Info("Recomputed the start of %s.", style.ColorBranchName(b.Name(), false))
	}
	for _, f := range report.Unresolved {
		ctx.Splog.Warn("%s: %s", f.Branch.Name(), f.Reason)
	}
	if len(report.Unresolved) > 0 {
		ctx.Splog.Tip("Use stacker fix --branch <name> --base <name> after recreating or choosing a base.")
	}

	if !report.Changed() && len(report.Unresolved) == 0 && report.Paired == nil {
		ctx.Splog.Info("Nothing to fix.")
	}
	return nil
}
