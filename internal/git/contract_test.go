package git_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	stackererrors "stacker.dev/stacker/internal/errors"
	"stacker.dev/stacker/internal/git"
	"stacker.dev/stacker/internal/git/memgit"
	"stacker.dev/stacker/testhelpers"
)

// capabilityFixture drives one Git implementation. Both start with a single
// commit on main, published to a remote named origin.
type capabilityFixture struct {
	git.Git
	// commit adds a commit on top of branch.
	commit func(t *testing.T, branch string) git.ObjectName
	// branch creates name at the tip of from.
	branch func(t *testing.T, name, from string)
	// reset moves branch to object, dropping whatever it pointed at.
	reset func(t *testing.T, branch string, object git.ObjectName)
	// setRemote changes a branch on origin as another actor would.
	setRemote func(t *testing.T, branch string, object git.ObjectName)
	// remoteTip reads a branch on origin.
	remoteTip func(t *testing.T, branch string) (git.ObjectName, bool)
}

func newMemFixture(t *testing.T) capabilityFixture {
	t.Helper()
	repo := memgit.New()
	tip, _ := repo.Tip("main")
	repo.SetUpstream("main", "origin")
	repo.SetRemoteBranch("origin", "main", tip)
	return capabilityFixture{
		Git: repo,
		commit: func(_ *testing.T, branch string) git.ObjectName {
			return repo.Commit(branch)
		},
		branch: func(_ *testing.T, name, from string) {
			repo.Branch(name, from)
		},
		reset: func(_ *testing.T, branch string, object git.ObjectName) {
			repo.SetRef(git.NewBranch(branch).RefName(), object)
		},
		setRemote: func(_ *testing.T, branch string, object git.ObjectName) {
			repo.SetRemoteBranch("origin", branch, object)
		},
		remoteTip: func(_ *testing.T, branch string) (git.ObjectName, bool) {
			return repo.RemoteBranch("origin", branch)
		},
	}
}

func newRealFixture(t *testing.T) capabilityFixture {
	t.Helper()
	scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
	commits := 0
	return capabilityFixture{
		Git: newRepo(t, scene),
		commit: func(t *testing.T, branch string) git.ObjectName {
			t.Helper()
			commits++
			require.NoError(t, scene.Repo.CheckoutBranch(branch))
			require.NoError(t, scene.Repo.CreateChangeAndCommit(fmt.Sprintf("change %d", commits), fmt.Sprintf("c%d", commits)))
			return revision(t, scene, branch)
		},
		branch: func(t *testing.T, name, from string) {
			t.Helper()
			require.NoError(t, scene.Repo.RunGitCommand("branch", name, from))
		},
		reset: func(t *testing.T, branch string, object git.ObjectName) {
			t.Helper()
			require.NoError(t, scene.Repo.CheckoutBranch(branch))
			require.NoError(t, scene.Repo.RunGitCommand("reset", "--hard", object.String()))
		},
		setRemote: func(t *testing.T, branch string, object git.ObjectName) {
			t.Helper()
			require.NoError(t, scene.Repo.RunGitCommand("push", "--force", "origin", object.String()+":refs/heads/"+branch))
		},
		remoteTip: func(_ *testing.T, branch string) (git.ObjectName, bool) {
			out, err := testhelpers.RemoteRevision(scene.RemoteDir("origin"), branch)
			return git.ObjectName(out), err == nil
		},
	}
}

// forEachImplementation runs fn against the in-memory and the real repository.
func forEachImplementation(t *testing.T, fn func(t *testing.T, f capabilityFixture)) {
	t.Helper()
	for name, newFixture := range map[string]func(*testing.T) capabilityFixture{
		"memgit": newMemFixture,
		"repo":   newRealFixture,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fn(t, newFixture(t))
		})
	}
}

func lookup(t *testing.T, g git.Git, name string) (git.ObjectName, bool) {
	t.Helper()
	snap, err := g.Snapshot(context.Background())
	require.NoError(t, err)
	ref, ok := snap.Lookup(name)
	return ref.Object, ok
}

func tipOf(t *testing.T, g git.Git, branch string) git.ObjectName {
	t.Helper()
	obj, ok := lookup(t, g, git.NewBranch(branch).RefName())
	require.True(t, ok, "branch %s does not exist", branch)
	return obj
}

func TestContractCreateRefOnlyOnce(t *testing.T) {
	t.Parallel()
	forEachImplementation(t, func(t *testing.T, f capabilityFixture) {
		ctx := context.Background()
		first := tipOf(t, f, "main")
		second := f.commit(t, "main")

		require.NoError(t, f.CreateRef(ctx, "refs/stacker/start/x", first))
		require.ErrorIs(t, f.CreateRef(ctx, "refs/stacker/start/x", second), stackererrors.ErrRejected)
		got, ok := lookup(t, f, "refs/stacker/start/x")
		require.True(t, ok)
		require.Equal(t, first, got)
	})
}

func TestContractUpdateAndDeleteAssertValue(t *testing.T) {
	t.Parallel()
	forEachImplementation(t, func(t *testing.T, f capabilityFixture) {
		ctx := context.Background()
		first := tipOf(t, f, "main")
		second := f.commit(t, "main")
		require.NoError(t, f.CreateRef(ctx, "refs/stacker/start/x", first))

		require.ErrorIs(t, f.UpdateRef(ctx, "refs/stacker/start/x", second, second), stackererrors.ErrRejected)
		require.ErrorIs(t, f.UpdateRef(ctx, "refs/stacker/start/missing", second, first), stackererrors.ErrRejected)
		require.NoError(t, f.UpdateRef(ctx, "refs/stacker/start/x", second, first))
		got, _ := lookup(t, f, "refs/stacker/start/x")
		require.Equal(t, second, got)

		require.ErrorIs(t, f.DeleteRef(ctx, "refs/stacker/start/x", first), stackererrors.ErrRejected)
		require.NoError(t, f.DeleteRef(ctx, "refs/stacker/start/x", second))
		_, ok := lookup(t, f, "refs/stacker/start/x")
		require.False(t, ok)
	})
}

func TestContractPushLease(t *testing.T) {
	t.Parallel()
	forEachImplementation(t, func(t *testing.T, f capabilityFixture) {
		ctx := context.Background()
		x := git.NewBranch("x")
		mainTip := tipOf(t, f, "main")
		f.branch(t, "x", "main")
		first := f.commit(t, "x")

		t.Log("absent remote branch")
		require.ErrorIs(t, f.Push(ctx, x, "origin", mainTip), stackererrors.ErrRejected)
		_, ok := f.remoteTip(t, "x")
		require.False(t, ok)
		require.NoError(t, f.Push(ctx, x, "origin", git.NonExistentObject))
		remote, _ := f.remoteTip(t, "x")
		require.Equal(t, first, remote)

		t.Log("remote already holds the local tip")
		require.ErrorIs(t, f.Push(ctx, x, "origin", git.NonExistentObject), stackererrors.ErrRejected)
		require.ErrorIs(t, f.Push(ctx, x, "origin", mainTip), stackererrors.ErrRejected)
		require.NoError(t, f.Push(ctx, x, "origin", first))

		t.Log("stale expectation")
		second := f.commit(t, "x")
		require.ErrorIs(t, f.Push(ctx, x, "origin", mainTip), stackererrors.ErrRejected)
		remote, _ = f.remoteTip(t, "x")
		require.Equal(t, first, remote)

		t.Log("moved by someone else")
		f.setRemote(t, "x", mainTip)
		require.ErrorIs(t, f.Push(ctx, x, "origin", first), stackererrors.ErrRejected)
		require.NoError(t, f.Push(ctx, x, "origin", mainTip))
		remote, _ = f.remoteTip(t, "x")
		require.Equal(t, second, remote)
	})
}

func TestContractForkPointAfterBaseRewrite(t *testing.T) {
	t.Parallel()
	forEachImplementation(t, func(t *testing.T, f capabilityFixture) {
		ctx := context.Background()
		root := tipOf(t, f, "main")
		f.commit(t, "main")
		f.branch(t, "x", "main")
		f.commit(t, "x")

		f.reset(t, "main", root)
		f.commit(t, "main")

		got, err := f.ForkPoint(ctx, "refs/heads/main", "refs/heads/x")
		require.NoError(t, err)
		require.Equal(t, root, got)
	})
}

func TestContractRebaseWithoutNewBase(t *testing.T) {
	t.Parallel()
	forEachImplementation(t, func(t *testing.T, f capabilityFixture) {
		ctx := context.Background()
		mainTip := tipOf(t, f, "main")
		f.branch(t, "x", "main")
		tip := f.commit(t, "x")

		require.NoError(t, f.RebaseOnto(ctx, git.NewBranch("x"), mainTip, mainTip))
		require.Equal(t, tip, tipOf(t, f, "x"))
	})
}
