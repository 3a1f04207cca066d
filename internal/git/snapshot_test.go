package git_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stacker.dev/stacker/internal/git"
)

func TestNonExistentObject(t *testing.T) {
	require.Len(t, git.NonExistentObject.String(), 40)
	require.True(t, git.NonExistentObject.IsNonExistent())
	require.False(t, git.ObjectName("").IsNonExistent())
	require.False(t, git.ObjectName("0123456789abcdef0123456789abcdef01234567").IsNonExistent())
	require.Equal(t, "0123456", git.ObjectName("0123456789abcdef0123456789abcdef01234567").Short())
}

func TestSnapshotLookup(t *testing.T) {
	snap := git.NewSnapshot(
		git.Ref{Name: "refs/heads/main", Object: "aaa", Remote: "origin"},
		git.Ref{Name: "refs/stacker/base/x", SymrefTarget: "refs/heads/main", Object: "aaa"},
	)

	ref, ok := snap.Lookup("refs/heads/main")
	require.True(t, ok)
	require.False(t, ref.IsSymbolic())
	remote, ok := ref.RemoteName()
	require.True(t, ok)
	require.Equal(t, "origin", remote)

	base, ok := snap.Lookup("refs/stacker/base/x")
	require.True(t, ok)
	require.True(t, base.IsSymbolic())
	_, ok = base.RemoteName()
	require.False(t, ok)

	_, ok = snap.Lookup("refs/heads/x")
	require.False(t, ok)
	require.Equal(t, 2, snap.Len())
	require.Equal(t, []string{"refs/heads/main", "refs/stacker/base/x"}, snap.Names())
}

func TestSnapshotTrackedBranches(t *testing.T) {
	snap := git.NewSnapshot(
		git.Ref{Name: "refs/heads/main", Object: "aaa"},
		git.Ref{Name: "refs/heads/untracked", Object: "aaa"},
		git.Ref{Name: "refs/stacker/start/y", Object: "aaa"},
		git.Ref{Name: "refs/stacker/remote/y", Object: "bbb"},
		git.Ref{Name: "refs/stacker/base/x", SymrefTarget: "refs/heads/main"},
		git.Ref{Name: "refs/stacker/remote/gone", Object: "ccc"},
	)

	require.Equal(t, []git.Branch{git.NewBranch("gone"), git.NewBranch("x"), git.NewBranch("y")}, snap.TrackedBranches())
	require.Empty(t, git.NewSnapshot().TrackedBranches())
}
