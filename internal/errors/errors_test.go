package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	stackererrors "stacker.dev/stacker/internal/errors"
)

func TestStatusClassification(t *testing.T) {
	t.Run("kinds map to sentinels", func(t *testing.T) {
		cases := []struct {
			err      error
			sentinel error
		}{
			{stackererrors.NotFound("no base for %s", "x"), stackererrors.ErrNotFound},
			{stackererrors.Conflict("base branch already defined"), stackererrors.ErrConflict},
			{stackererrors.InvalidArgument("base not specified"), stackererrors.ErrInvalidArgument},
			{stackererrors.Rejected("stale"), stackererrors.ErrRejected},
			{stackererrors.NotOnBranch(), stackererrors.ErrNotOnBranch},
			{stackererrors.NewRebaseConflictError("x", nil, []byte("CONFLICT")), stackererrors.ErrRebaseConflict},
		}
		for _, c := range cases {
			require.ErrorIs(t, c.err, c.sentinel)
		}
	})

	t.Run("unclassified status matches no sentinel", func(t *testing.T) {
		err := stackererrors.NewStatus(128, nil, []byte("fatal"))
		require.NotErrorIs(t, err, stackererrors.ErrNotFound)
		require.NotErrorIs(t, err, stackererrors.ErrRejected)
	})

	t.Run("wrapped status is still classified", func(t *testing.T) {
		err := fmt.Errorf("push: %w", stackererrors.Rejected("stale info"))
		require.ErrorIs(t, err, stackererrors.ErrRejected)

		status, ok := stackererrors.AsStatus(err)
		require.True(t, ok)
		require.Equal(t, "stale info\n", string(status.Stderr))
	})

	t.Run("WithKind does not mutate the original", func(t *testing.T) {
		orig := stackererrors.NewGitCommandError("git", []string{"update-ref"}, 128, nil, []byte("cannot lock ref"), errors.New("exit status 128"))
		rejected := orig.WithKind(stackererrors.KindRejected)
		require.ErrorIs(t, rejected, stackererrors.ErrRejected)
		require.NotErrorIs(t, orig, stackererrors.ErrRejected)
	})
}

func TestStatusMessage(t *testing.T) {
	err := stackererrors.NewGitCommandError("git", []string{"push", "origin"}, 1, []byte("out"), []byte("err"), nil)
	msg := err.Error()
	require.Contains(t, msg, "git command failed: push origin")
	require.Contains(t, msg, "exit status 1")
	require.Contains(t, msg, "stderr: err")
	require.Contains(t, msg, "stdout: out")

	require.Equal(t, "base branch already defined", stackererrors.Conflict("base branch already defined").Error())
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, stackererrors.ExitCode(nil))
	require.Equal(t, 1, stackererrors.ExitCode(stackererrors.NotFound("x")))
	require.Equal(t, 1, stackererrors.ExitCode(errors.New("plain")))
}
