package git

import (
	"context"
	"fmt"
	"strings"

	stackererrors "stacker.dev/stacker/internal/errors"
)

// ValidateBranchName checks name with git's own branch name rules
func (r *Repo) ValidateBranchName(ctx context.Context, name string) (Branch, error) {
	if strings.TrimSpace(name) == "" {
		return Branch{}, stackererrors.InvalidArgument("branch name must not be empty")
	}
	// check-ref-format expands @{-N} to a previous branch
	if strings.HasPrefix(name, "-") || strings.Contains(name, "@{") {
		return Branch{}, stackererrors.InvalidArgument("'%s' is not a valid branch name", name)
	}
	out, err := r.runner.Run(ctx, "check-ref-format", "--branch", name)
	if err != nil {
		return Branch{}, reclassify(err, stackererrors.KindInvalidArgument)
	}
	return NewBranch(out), nil
}

// CreateBranch creates name at the current tip of base without checking it out
func (r *Repo) CreateBranch(ctx context.Context, name Branch, base Branch) error {
	_, err := r.runner.Run(ctx, "branch", "--no-track", name.Name(), base.RefName())
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// SwitchTo checks out an existing branch
func (r *Repo) SwitchTo(ctx context.Context, branch Branch) error {
	_, err := r.runner.Run(ctx, "checkout", branch.Name())
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branch, err)
	}
	return nil
}
