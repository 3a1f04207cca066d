package cli

import (
	"github.com/spf13/cobra"

	"stacker.dev/stacker/internal/actions"
	"stacker.dev/stacker/internal/tui"
)

// newConfigCmd creates the config command
func newConfigCmd(splog *tui.Splog) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set repository configuration",
		Long: `Get and set repository configuration values.

Keys:
  remote         remote to push to when a base branch has none (default origin)
  printCommands  echo every git command stacker runs (default false)

Examples:
  stacker config get remote
  stacker config set printCommands true`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Get a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, err := getContext(cmd, splog)
				if err != nil {
					return err
				}
				return actions.ConfigGetAction(ctx, args[0])
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, err := getContext(cmd, splog)
				if err != nil {
					return err
				}
				return actions.ConfigSetAction(ctx, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all configuration values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx, err := getContext(cmd, splog)
				if err != nil {
					return err
				}
				return actions.ConfigListAction(ctx)
			},
		},
	)

	return cmd
}
