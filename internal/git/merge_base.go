package git

import (
	"context"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	stackererrors "stacker.dev/stacker/internal/errors"
)

// ForkPoint returns the commit at which branchRefName forked from
// baseRefName. Git's reflog-aware fork point is used only while it is still
// part of the base's history; otherwise, and once the reflog no longer
// covers the fork, the merge base is returned.
func (r *Repo) ForkPoint(ctx context.Context, baseRefName, branchRefName string) (ObjectName, error) {
	out, err := r.runner.Run(ctx, "merge-base", "--fork-point", baseRefName, branchRefName)
	if err == nil && out != "" && r.isAncestor(ctx, out, baseRefName) {
		return ObjectName(out), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	return r.mergeBase(baseRefName, branchRefName)
}

// isAncestor reports whether commit is reachable from refName.
func (r *Repo) isAncestor(ctx context.Context, commit, refName string) bool {
	_, err := r.runner.Run(ctx, "merge-base", "--is-ancestor", commit, refName)
	return err == nil
}

// mergeBase returns the merge base between two refs
func (r *Repo) mergeBase(ref1Name, ref2Name string) (ObjectName, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}

	hash1, err := resolveRefHash(repo, ref1Name)
	if err != nil {
		return "", stackererrors.NotFound("failed to resolve %s: %v", ref1Name, err)
	}

	hash2, err := resolveRefHash(repo, ref2Name)
	if err != nil {
		return "", stackererrors.NotFound("failed to resolve %s: %v", ref2Name, err)
	}

	commit1, err := repo.CommitObject(hash1)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", hash1, err)
	}

	commit2, err := repo.CommitObject(hash2)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", hash2, err)
	}

	mergeBases, err := commit1.MergeBase(commit2)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base: %w", err)
	}

	if len(mergeBases) == 0 {
		return "", stackererrors.NotFound("no common ancestor of %s and %s", ref1Name, ref2Name)
	}

	return ObjectName(mergeBases[0].Hash.String()), nil
}

func resolveRefHash(repo *gogit.Repository, refName string) (plumbing.Hash, error) {
	ref, err := repo.Reference(plumbing.ReferenceName(refName), true)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return ref.Hash(), nil
}
