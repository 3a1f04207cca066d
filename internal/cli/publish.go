package cli

import (
	"github.com/spf13/cobra"

	"stacker.dev/stacker/internal/actions"
	"stacker.dev/stacker/internal/tui"
)

// newPushCmd creates the push command
func newPushCmd(splog *tui.Splog) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Publish the current branch to its base's remote",
		Long: `Publish the current branch to the remote of its base branch.

The push is refused if the remote branch no longer matches the commit
stacker last pushed, so commits added by someone else are never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := getContext(cmd, splog)
			if err != nil {
				return err
			}
			return actions.PushAction(ctx)
		},
	}
}

// newRebaseCmd creates the rebase command
func newRebaseCmd(splog *tui.Splog) *cobra.Command {
	return &cobra.Command{
		Use:   "rebase",
		Short: "Rebase the current branch onto the tip of its base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := getContext(cmd, splog)
			if err != nil {
				return err
			}
			return actions.RebaseAction(ctx)
		},
	}
}

// newSyncCmd creates the sync command
func newSyncCmd(splog *tui.Splog) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch all remotes, pruning deleted branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := getContext(cmd, splog)
			if err != nil {
				return err
			}
			return actions.SyncAction(ctx)
		},
	}
}
