package cli

import (
	"github.com/spf13/cobra"

	"stacker.dev/stacker/internal/actions"
	"stacker.dev/stacker/internal/tui"
)

// newFixCmd creates the fix command
func newFixCmd(splog *tui.Splog) *cobra.Command {
	var opts actions.FixOptions

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Repair stack metadata",
		Long: `Repair stack metadata.

With --branch and --base, records base as the base of branch. Then removes
the metadata of deleted branches and recomputes missing start commits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := getContext(cmd, splog)
			if err != nil {
				return err
			}
			return actions.FixAction(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch to start tracking")
	cmd.Flags().StringVar(&opts.Base, "base", "", "Base branch of --branch")

	return cmd
}

// newShowCmd creates the show command
func newShowCmd(splog *tui.Splog) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "List stacked branches with their base and publish state",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := getContext(cmd, splog)
			if err != nil {
				return err
			}
			return actions.ShowAction(ctx)
		},
	}
}
