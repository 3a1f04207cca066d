package git

import (
	"context"
	"fmt"

	stackererrors "stacker.dev/stacker/internal/errors"
)

// CreateSymbolicRef points name at target, recording note in the reflog
func (r *Repo) CreateSymbolicRef(ctx context.Context, name, target, note string) error {
	_, err := r.runner.Run(ctx, "symbolic-ref", "-m", note, name, target)
	if err != nil {
		return fmt.Errorf("failed to create symbolic ref %s: %w", name, err)
	}
	return nil
}

// CreateRef creates name at object. It fails if name already exists.
func (r *Repo) CreateRef(ctx context.Context, name string, object ObjectName) error {
	_, err := r.runner.Run(ctx, "update-ref", "-m", "stacker: create", name, object.String(), NonExistentObject.String())
	if err != nil {
		return reclassify(err, stackererrors.KindRejected)
	}
	return nil
}

// UpdateRef moves name to newObject if it currently holds expectedOld
func (r *Repo) UpdateRef(ctx context.Context, name string, newObject, expectedOld ObjectName) error {
	_, err := r.runner.Run(ctx, "update-ref", "-m", "stacker: update", name, newObject.String(), expectedOld.String())
	if err != nil {
		return reclassify(err, stackererrors.KindRejected)
	}
	return nil
}

// DeleteRef deletes name if it currently holds expected
func (r *Repo) DeleteRef(ctx context.Context, name string, expected ObjectName) error {
	_, err := r.runner.Run(ctx, "update-ref", "-d", name, expected.String())
	if err != nil {
		return reclassify(err, stackererrors.KindRejected)
	}
	return nil
}

// DeleteSymbolicRef deletes the symbolic ref name, leaving its target alone
func (r *Repo) DeleteSymbolicRef(ctx context.Context, name string) error {
	_, err := r.runner.Run(ctx, "symbolic-ref", "--delete", name)
	if err != nil {
		return fmt.Errorf("failed to delete symbolic ref %s: %w", name, err)
	}
	return nil
}
