package cli

import (
	"github.com/spf13/cobra"

	"stacker.dev/stacker/internal/actions"
	"stacker.dev/stacker/internal/tui"
)

// newInitCmd creates the init command
func newInitCmd(splog *tui.Splog) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Hide stacker references from fetches, pushes and log decorations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := getContext(cmd, splog)
			if err != nil {
				return err
			}
			return actions.InitAction(ctx)
		},
	}
}

// newCleanCmd creates the clean command
func newCleanCmd(splog *tui.Splog) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Undo the configuration written by init",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := getContext(cmd, splog)
			if err != nil {
				return err
			}
			return actions.CleanAction(ctx)
		},
	}
}
