package git

import (
	"context"
	"os"
	"path/filepath"

	stackererrors "stacker.dev/stacker/internal/errors"
)

// RebaseOnto replays the commits in (upstream, branch] onto onto.
// On a content conflict the rebase is left in progress for the user and a
// rebase-conflict failure carrying git's output is returned.
func (r *Repo) RebaseOnto(ctx context.Context, branch Branch, onto, upstream ObjectName) error {
	_, _, err := r.runner.RunCaptured(ctx, "rebase", "--onto", onto.String(), upstream.String(), branch.Name())
	if err != nil {
		if r.IsRebaseInProgress(ctx) {
			status, _ := stackererrors.AsStatus(err)
			var stdout, stderr []byte
			if status != nil {
				stdout, stderr = status.Stdout, status.Stderr
			}
			return stackererrors.NewRebaseConflictError(branch.Name(), stdout, stderr)
		}
		return err
	}
	return nil
}

// IsRebaseInProgress checks if a rebase is currently in progress
func (r *Repo) IsRebaseInProgress(ctx context.Context) bool {
	// Check for rebase-merge or rebase-apply directories
	// This is more reliable than checking REBASE_HEAD which can persist after rebase
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		path, err := r.runner.Run(ctx, "rev-parse", "--git-path", dir)
		if err != nil {
			return false
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.runner.WorkingDir(), path)
		}
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}
