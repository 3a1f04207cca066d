package git

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"slices"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	stackererrors "stacker.dev/stacker/internal/errors"
)

// Repo implements Git on top of a real repository. Reads go through go-git;
// writes, transport and rebases shell out to the git binary.
type Repo struct {
	path   string
	runner *CommandRunner
}

var _ Git = (*Repo)(nil)

// NewRepo creates a Repo rooted at path. A nil runner runs git in path.
func NewRepo(path string, runner *CommandRunner) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if runner == nil {
		runner = NewCommandRunner(absPath)
	}
	return &Repo{path: absPath, runner: runner}, nil
}

// open re-reads the repository from disk so every snapshot observes writes
// made through the git binary.
func (r *Repo) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(r.path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return repo, nil
}

// Snapshot reads every reference together with the remote association of
// local branches.
func (r *Repo) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := r.open()
	if err != nil {
		return nil, err
	}

	cfg, err := repo.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read repository config: %w", err)
	}

	refIter, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to get references: %w", err)
	}
	defer refIter.Close()

	var refs []Ref
	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name() == plumbing.HEAD {
			return nil
		}
		out := Ref{Name: ref.Name().String()}
		switch ref.Type() {
		case plumbing.SymbolicReference:
			out.SymrefTarget = ref.Target().String()
			// A dangling symref keeps an empty Object.
			if resolved, err := repo.Reference(ref.Name(), true); err == nil {
				out.Object = ObjectName(resolved.Hash().String())
			}
		case plumbing.HashReference:
			out.Object = ObjectName(ref.Hash().String())
		default:
			return nil
		}
		if ref.Name().IsBranch() {
			if bc, ok := cfg.Branches[ref.Name().Short()]; ok && bc.Remote != "" {
				out.Remote = bc.Remote
			}
		}
		refs = append(refs, out)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate references: %w", err)
	}

	return NewSnapshot(refs...), nil
}

// Head returns the checked out branch. It works for unborn branches too.
func (r *Repo) Head(ctx context.Context) (Branch, error) {
	if err := ctx.Err(); err != nil {
		return Branch{}, err
	}
	repo, err := r.open()
	if err != nil {
		return Branch{}, err
	}

	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return Branch{}, fmt.Errorf("failed to get HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return Branch{}, stackererrors.NotOnBranch()
	}
	return NewBranch(head.Target().Short()), nil
}

// TrackedBranches lists every branch that has stacker metadata.
func (r *Repo) TrackedBranches(ctx context.Context) (iter.Seq[Branch], error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Values(snap.TrackedBranches()), nil
}
