package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stacker.dev/stacker/testhelpers"
)

func TestInitAndCleanCommands(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	code, stdout, _ := scene.RunStacker(t, "init")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Initialized stacker")
	require.Equal(t, []string{"refs/stacker/"}, scene.Repo.ConfigValues("transfer.hideRefs"))
	require.Equal(t, []string{"refs/stacker/"}, scene.Repo.ConfigValues("log.excludeDecoration"))

	code, _, _ = scene.RunStacker(t, "init")
	require.Equal(t, 0, code)
	require.Equal(t, []string{"refs/stacker/"}, scene.Repo.ConfigValues("transfer.hideRefs"))

	code, _, _ = scene.RunStacker(t, "clean")
	require.Equal(t, 0, code)
	require.Empty(t, scene.Repo.ConfigValues("transfer.hideRefs"))
	require.Empty(t, scene.Repo.ConfigValues("log.excludeDecoration"))
}

func TestStartCommand(t *testing.T) {
	t.Parallel()

	t.Run("records base and start", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		code, stdout, stderr := scene.RunStacker(t, "start", "feature")
		require.Equal(t, 0, code, stderr)
		require.Contains(t, stdout, "Started feature (current) on top of main")

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "feature", current)
		testhelpers.ExpectSymbolicRef(t, scene.Repo, "refs/stacker/base/feature", "refs/heads/main")
		testhelpers.ExpectRef(t, scene.Repo, "refs/stacker/start/feature", "main")
		testhelpers.ExpectNoRef(t, scene.Repo, "refs/stacker/remote/feature")
	})

	t.Run("requires a name without a terminal", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		code, _, stderr := scene.RunStacker(t, "start")
		require.Equal(t, 1, code)
		require.Equal(t, "branch name not specified\n", stderr)
	})

	t.Run("refuses an existing branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateBranch("feature"))

		code, _, stderr := scene.RunStacker(t, "start", "feature")
		require.Equal(t, 1, code)
		require.Contains(t, stderr, "already exists")
		testhelpers.ExpectNoRef(t, scene.Repo, "refs/stacker/base/feature")
	})

	t.Run("refuses an invalid name", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		code, _, _ := scene.RunStacker(t, "start", "bad..name")
		require.Equal(t, 1, code)
		testhelpers.ExpectBranches(t, scene.Repo, []string{"main"})
	})
}

func TestPushCommand(t *testing.T) {
	t.Parallel()

	t.Run("publishes and republishes", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		code, _, stderr := scene.RunStacker(t, "start", "feature")
		require.Equal(t, 0, code, stderr)
		require.NoError(t, scene.Repo.CreateChangeAndCommit("a", "feature"))

		code, stdout, stderr := scene.RunStacker(t, "push")
		require.Equal(t, 0, code, stderr)
		require.Contains(t, stdout, "Published feature to origin")
		remoteTip := testhelpers.Must(testhelpers.RemoteRevision(scene.RemoteDir("origin"), "feature"))
		testhelpers.ExpectRef(t, scene.Repo, "refs/stacker/remote/feature", remoteTip)
		testhelpers.ExpectRef(t, scene.Repo, "feature", remoteTip)

		require.NoError(t, scene.Repo.RunGitCommand("commit", "--amend", "-m", "rewritten"))
		code, stdout, stderr = scene.RunStacker(t, "push")
		require.Equal(t, 0, code, stderr)
		require.Contains(t, stdout, "Pushed feature to origin")
		remoteTip = testhelpers.Must(testhelpers.RemoteRevision(scene.RemoteDir("origin"), "feature"))
		testhelpers.ExpectRef(t, scene.Repo, "feature", remoteTip)
		testhelpers.ExpectRef(t, scene.Repo, "refs/stacker/remote/feature", remoteTip)
	})

	t.Run("refuses to overwrite someone else's push", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		code, _, stderr := scene.RunStacker(t, "start", "feature")
		require.Equal(t, 0, code, stderr)
		require.NoError(t, scene.Repo.CreateChangeAndCommit("a", "feature"))
		code, _, stderr = scene.RunStacker(t, "push")
		require.Equal(t, 0, code, stderr)
		published := testhelpers.Must(scene.Repo.GetRevision("feature"))

		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("other"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("theirs", "other"))
		require.NoError(t, scene.Repo.RunGitCommand("push", "--force", "origin", "other:feature"))
		theirs := testhelpers.Must(scene.Repo.GetRevision("other"))

		require.NoError(t, scene.Repo.CheckoutBranch("feature"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("b", "feature"))
		code, stdout, _ := scene.RunStacker(t, "push")
		require.Equal(t, 1, code)
		require.Contains(t, stdout, "stale info")

		require.Equal(t, theirs, testhelpers.Must(testhelpers.RemoteRevision(scene.RemoteDir("origin"), "feature")))
		testhelpers.ExpectRef(t, scene.Repo, "refs/stacker/remote/feature", published)
	})

	t.Run("fails on an untracked branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("plain"))

		code, _, stderr := scene.RunStacker(t, "push")
		require.Equal(t, 1, code)
		require.NotEmpty(t, stderr)
		_, err := testhelpers.RemoteRevision(scene.RemoteDir("origin"), "plain")
		require.Error(t, err)
	})
}

func TestRebaseCommand(t *testing.T) {
	t.Parallel()

	t.Run("moves the start to the base tip", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		code, _, stderr := scene.RunStacker(t, "start", "feature")
		require.Equal(t, 0, code, stderr)
		require.NoError(t, scene.Repo.CreateChangeAndCommit("a", "feature"))
		require.NoError(t, scene.Repo.CheckoutBranch("main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("b", "main"))
		require.NoError(t, scene.Repo.CheckoutBranch("feature"))

		code, stdout, stderr := scene.RunStacker(t, "rebase")
		require.Equal(t, 0, code, stderr)
		require.Contains(t, stdout, "Rebased feature (current) onto main")
		testhelpers.ExpectRef(t, scene.Repo, "refs/stacker/start/feature", "main")
		testhelpers.ExpectRef(t, scene.Repo, "feature~1", "main")
	})

	t.Run("stops on conflicts", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		code, _, stderr := scene.RunStacker(t, "start", "feature")
		require.Equal(t, 0, code, stderr)
		startBefore := testhelpers.Must(scene.Repo.GetRevision("refs/stacker/start/feature"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("ours", "shared"))
		require.NoError(t, scene.Repo.CheckoutBranch("main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("theirs", "shared"))
		require.NoError(t, scene.Repo.CheckoutBranch("feature"))

		code, stdout, stderr := scene.RunStacker(t, "rebase")
		require.Equal(t, 1, code)
		require.Contains(t, stdout+stderr, "CONFLICT")
		require.Contains(t, stdout, "hint: Resolve the conflicts")
		require.True(t, scene.Repo.RebaseInProgress())
		testhelpers.ExpectRef(t, scene.Repo, "refs/stacker/start/feature", startBefore)
	})
}

func TestSyncCommand(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("gone"))
	require.NoError(t, scene.Repo.PushBranch("origin", "gone"))
	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.RunGitCommand("--git-dir", scene.RemoteDir("origin"), "branch", "-D", "gone"))

	code, stdout, stderr := scene.RunStacker(t, "sync")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "Fetched all remotes.")
	testhelpers.ExpectNoRef(t, scene.Repo, "refs/remotes/origin/gone")
}

func TestFixCommand(t *testing.T) {
	t.Parallel()

	t.Run("tracks an existing branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		fork := testhelpers.Must(scene.Repo.GetRevision("main"))
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("a", "feature"))
		require.NoError(t, scene.Repo.CheckoutBranch("main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("b", "main"))

		code, stdout, stderr := scene.RunStacker(t, "fix", "--branch", "feature", "--base", "main")
		require.Equal(t, 0, code, stderr)
		require.Contains(t, stdout, "Tracking feature on top of main.")
		testhelpers.ExpectSymbolicRef(t, scene.Repo, "refs/stacker/base/feature", "refs/heads/main")
		testhelpers.ExpectRef(t, scene.Repo, "refs/stacker/start/feature", fork)
	})

	t.Run("refuses to change a base", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateBranch("dev"))
		code, _, stderr := scene.RunStacker(t, "start", "feature")
		require.Equal(t, 0, code, stderr)

		code, _, stderr = scene.RunStacker(t, "fix", "--branch", "feature", "--base", "dev")
		require.Equal(t, 1, code)
		require.Equal(t, "base branch already defined\n", stderr)
		testhelpers.ExpectSymbolicRef(t, scene.Repo, "refs/stacker/base/feature", "refs/heads/main")
	})

	t.Run("requires a base with a branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateBranch("feature"))

		code, _, stderr := scene.RunStacker(t, "fix", "--branch", "feature")
		require.Equal(t, 1, code)
		require.Equal(t, "base not specified\n", stderr)
	})

	t.Run("warns about a base without a branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		code, _, stderr := scene.RunStacker(t, "fix", "--base", "main")
		require.Equal(t, 0, code)
		require.Contains(t, stderr, "--base has no effect without --branch")
	})

	t.Run("collects metadata of deleted branches", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		code, _, stderr := scene.RunStacker(t, "start", "feature")
		require.Equal(t, 0, code, stderr)
		require.NoError(t, scene.Repo.CheckoutBranch("main"))
		require.NoError(t, scene.Repo.DeleteBranch("feature"))

		code, stdout, stderr := scene.RunStacker(t, "fix")
		require.Equal(t, 0, code, stderr)
		require.Contains(t, stdout, "Removed metadata of deleted branch feature.")
		testhelpers.ExpectNoRef(t, scene.Repo, "refs/stacker/base/feature")
		testhelpers.ExpectNoRef(t, scene.Repo, "refs/stacker/start/feature")
	})
}

func TestShowCommand(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	code, stdout, _ := scene.RunStacker(t, "show")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "No stacked branches.")

	code, _, stderr := scene.RunStacker(t, "start", "feature")
	require.Equal(t, 0, code, stderr)
	code, stdout, stderr = scene.RunStacker(t, "show")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "feature (current)  on main")
	require.Contains(t, stdout, "never published")
}

func TestConfigCommand(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	code, stdout, _ := scene.RunStacker(t, "config", "get", "remote")
	require.Equal(t, 0, code)
	require.Equal(t, "origin\n", stdout)

	code, _, stderr := scene.RunStacker(t, "config", "set", "printCommands", "true")
	require.Equal(t, 0, code, stderr)
	code, stdout, stderr = scene.RunStacker(t, "start", "feature")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "$ git ")

	code, _, stderr = scene.RunStacker(t, "config", "get", "nope")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "unknown config key")
}

func TestCommandsLogToFile(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	code, _, stderr := scene.RunStacker(t, "start", "feature")
	require.Equal(t, 0, code, stderr)

	contents, err := os.ReadFile(filepath.Join(scene.Dir, ".git", "stacker.log"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "symbolic-ref")
}

func TestOutsideRepository(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, nil)
	scene.Dir = t.TempDir()

	code, _, stderr := scene.RunStacker(t, "show")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "not a git repository")
}
