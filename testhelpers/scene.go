package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene is a temporary directory holding a Git repository. Scenes do not
// change the working directory, so tests using them may run in parallel.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene and removes it when the test ends,
// unless DEBUG is set.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "stacker-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			_ = os.RemoveAll(tmpDir)
			_ = removeBareRemotes(tmpDir)
		}
	})

	// Resolve symlinks so paths compare equal to what git reports.
	if resolved, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = resolved
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{Dir: tmpDir, Repo: repo}
	if err := scene.writeDefaultConfig(); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// writeDefaultConfig writes the stacker configuration file.
func (s *Scene) writeDefaultConfig() error {
	configPath := filepath.Join(s.Dir, ".git", ".stacker_config")
	return os.WriteFile(configPath, []byte(`{"remote": "origin"}`+"\n"), 0600)
}

func removeBareRemotes(dir string) error {
	matches, err := filepath.Glob(dir + "-*.git")
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.RemoveAll(m); err != nil {
			return err
		}
	}
	return nil
}

// BasicSceneSetup creates a single commit on main.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// RemoteSceneSetup creates a single commit on main and publishes main to a
// bare remote named origin.
func RemoteSceneSetup(scene *Scene) error {
	if err := BasicSceneSetup(scene); err != nil {
		return err
	}
	if _, err := scene.Repo.CreateBareRemote("origin"); err != nil {
		return err
	}
	return scene.Repo.PushBranch("origin", "main")
}

// RemoteDir returns the bare repository created for remote by
// CreateBareRemote.
func (s *Scene) RemoteDir(remote string) string {
	return s.Dir + "-" + remote + ".git"
}
