package cli

import (
	"github.com/spf13/cobra"

	"stacker.dev/stacker/internal/actions"
	"stacker.dev/stacker/internal/tui"
)

// newStartCmd creates the start command
func newStartCmd(splog *tui.Splog) *cobra.Command {
	return &cobra.Command{
		Use:   "start [name]",
		Short: "Create a stacked branch on top of the current branch",
		Long: `Create a branch on top of the current branch and switch to it.

The current branch is recorded as the new branch's base and its tip as the
new branch's start. Without a name, stacker prompts for one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getContext(cmd, splog)
			if err != nil {
				return err
			}
			var opts actions.StartOptions
			if len(args) > 0 {
				opts.Name = args[0]
			}
			return actions.StartAction(ctx, opts)
		},
	}
}
