package git

import "context"

// FetchAllPruning fetches every remote and prunes stale remote-tracking branches
func (r *Repo) FetchAllPruning(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "fetch", "--all", "--prune")
	return err
}
