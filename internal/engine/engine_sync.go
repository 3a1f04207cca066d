package engine

import "context"

// Sync fetches every remote, pruning deleted remote-tracking branches. It
// does not touch the stacker namespace.
func (e *engineImpl) Sync(ctx context.Context) error {
	return e.git.FetchAllPruning(ctx)
}
