// Package cli wires the stacker commands to cobra.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	stackererrors "stacker.dev/stacker/internal/errors"
	"stacker.dev/stacker/internal/runtime"
	"stacker.dev/stacker/internal/tui"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(splog *tui.Splog, version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stacker",
		Short: "Stacker keeps stacks of dependent git branches publishable",
		Long: `Stacker keeps stacks of dependent git branches publishable.

Each stacked branch records its base branch, the commit it was forked from
and the commit last pushed, in references under refs/stacker/. Pushes are
leased against the recorded commit so rewritten branches are never
published over someone else's work.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(
		newInitCmd(splog),
		newCleanCmd(splog),
		newStartCmd(splog),
		newPushCmd(splog),
		newRebaseCmd(splog),
		newSyncCmd(splog),
		newFixCmd(splog),
		newShowCmd(splog),
		newConfigCmd(splog),
	)

	return rootCmd
}

// Execute runs stacker with the process arguments and returns the exit code.
func Execute(ctx context.Context, version, commit, date string) int {
	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{
		LogFile: tui.GetLogFilePath(),
		Debug:   os.Getenv("DEBUG") != "",
	})
	if err != nil {
		splog = tui.NewSplog()
		splog.Debug("file logging disabled: %v", err)
	}
	defer func() {
		_ = splog.Close()
	}()
	tui.ConfigureColorProfile(os.Stdout)

	rootCmd := NewRootCmd(splog, version, commit, date)
	err = rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(splog, err)
	}
	return stackererrors.ExitCode(err)
}

// reportError writes the captured output of a failed operation verbatim,
// or the error message when nothing was captured.
func reportError(splog *tui.Splog, err error) {
	if status, ok := stackererrors.AsStatus(err); ok && (len(status.Stdout) > 0 || len(status.Stderr) > 0) {
		splog.Passthrough(status.Stdout, status.Stderr)
		return
	}
	splog.Error("%s", err.Error())
}

// getContext opens the repository containing the working directory.
func getContext(cmd *cobra.Command, splog *tui.Splog) (*runtime.Context, error) {
	return runtime.GetContext(cmd.Context(), splog, "")
}
