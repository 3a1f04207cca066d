package testhelpers

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	sharedBinaryPath string
	binaryOnce       sync.Once
	binaryErr        error
)

// GetSharedBinaryPath returns the path of the stacker binary, building it on
// first use.
func GetSharedBinaryPath() (string, error) {
	binaryOnce.Do(func() {
		if sharedBinaryPath == "" {
			sharedBinaryPath, _, binaryErr = buildBinary()
		}
	})
	return sharedBinaryPath, binaryErr
}

// TestMain builds the stacker binary once for a test package, runs its
// tests and removes the binary afterwards.
func TestMain(m *testing.M) {
	path, cleanup, err := buildBinary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build stacker binary: %v\n", err)
		os.Exit(1)
	}
	sharedBinaryPath = path

	code := m.Run()
	cleanup()
	os.Exit(code)
}

// buildBinary builds cmd/stacker into a temporary directory.
func buildBinary() (string, func(), error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		return "", nil, fmt.Errorf("could not find module root (go.mod) starting from %s", wd)
	}

	tmpDir, err := os.MkdirTemp("", "stacker-test-binary-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	binaryPath := filepath.Join(tmpDir, "stacker")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/stacker")
	cmd.Dir = moduleRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to build: %s: %w", string(output), err)
	}
	return binaryPath, cleanup, nil
}

// findModuleRoot walks up from startDir to the directory containing go.mod.
func findModuleRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// RunStacker runs the stacker binary in the scene's repository and returns
// its exit code, stdout and stderr.
func (s *Scene) RunStacker(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	cmd, err := s.StackerCommand(args...)
	if err != nil {
		t.Fatalf("failed to build stacker binary: %v", err)
	}

	var stdout, stderr safeBuffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), stdout.String(), stderr.String()
	}
	if err != nil {
		t.Fatalf("failed to run stacker: %v", err)
	}
	return 0, stdout.String(), stderr.String()
}

// StackerCommand prepares the stacker binary to run in the scene's
// repository. Unlike RunStacker it never fails the test, so it may be used
// from other goroutines.
func (s *Scene) StackerCommand(args ...string) (*exec.Cmd, error) {
	binaryPath, err := GetSharedBinaryPath()
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = s.Dir
	cmd.Env = append(gitEnv(), "STACKER_NON_INTERACTIVE=1", "STACKER_LOG_FILE="+filepath.Join(s.Dir, ".git", "stacker.log"))
	return cmd, nil
}
