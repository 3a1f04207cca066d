package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stacker.dev/stacker/internal/git"
	"stacker.dev/stacker/internal/git/memgit"
)

func newTestEngine() (*engineImpl, *memgit.Repo) {
	repo := memgit.New()
	return &engineImpl{git: repo, defaultRemote: DefaultRemote}, repo
}

// observe records whether name exists in the snapshot a stage receives.
func observe(name string, seen *bool) fixStage {
	return func(_ context.Context, _ *engineImpl, snap *git.Snapshot, _ FixOptions, _ *FixReport) error {
		_, *seen = snap.Lookup(name)
		return nil
	}
}

func TestFixStagesSeePreviousWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("after pairing", func(t *testing.T) {
		e, repo := newTestEngine()
		repo.Branch("x", "main")

		var seen bool
		_, err := e.runFix(ctx, []fixStage{pairStage, observe("refs/stacker/start/x", &seen)}, FixOptions{Branch: "x", Base: "main"})
		require.NoError(t, err)
		require.True(t, seen)
	})

	t.Run("after collection", func(t *testing.T) {
		e, repo := newTestEngine()
		tip, _ := repo.Tip("main")
		repo.SetRef("refs/stacker/start/gone", tip)

		seen := true
		report, err := e.runFix(ctx, []fixStage{collectGarbageStage, observe("refs/stacker/start/gone", &seen)}, FixOptions{})
		require.NoError(t, err)
		require.False(t, seen)
		require.Len(t, report.Collected, 1)
	})
}

func TestFixStopsAtFirstFailingStage(t *testing.T) {
	e, repo := newTestEngine()
	tip, _ := repo.Tip("main")
	repo.SetRef("refs/stacker/start/gone", tip)

	_, err := e.runFix(context.Background(), fixPipeline, FixOptions{Branch: "x"})
	require.Error(t, err)
	_, ok := repo.Ref("refs/stacker/start/gone")
	require.True(t, ok, "collection must not run after a failed pairing")
}

func TestRepairStageAlone(t *testing.T) {
	e, repo := newTestEngine()
	repo.Branch("x", "main")
	repo.Commit("x")
	repo.SetSymbolicRef("refs/stacker/base/x", "refs/heads/main")
	fork, _ := repo.Tip("main")

	report, err := e.runFix(context.Background(), []fixStage{repairStage}, FixOptions{})
	require.NoError(t, err)
	require.Equal(t, []git.Branch{git.NewBranch("x")}, report.Repaired)
	ref, ok := repo.Ref("refs/stacker/start/x")
	require.True(t, ok)
	require.Equal(t, fork, ref.Object)
}
