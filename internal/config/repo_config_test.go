package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	stackererrors "stacker.dev/stacker/internal/errors"
)

func newRepoRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func TestGetRepoConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults when the file does not exist", func(t *testing.T) {
		t.Parallel()
		root := newRepoRoot(t)

		remote, err := GetRemote(root)
		require.NoError(t, err)
		require.Equal(t, DefaultRemote, remote)

		enabled, err := GetPrintCommands(root)
		require.NoError(t, err)
		require.False(t, enabled)

		printCommands, err := Get(root, KeyPrintCommands)
		require.NoError(t, err)
		require.Equal(t, "false", printCommands)
	})

	t.Run("reads stored values", func(t *testing.T) {
		t.Parallel()
		root := newRepoRoot(t)
		data := []byte(`{"remote": "upstream", "printCommands": true}`)
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", ".stacker_config"), data, 0600))

		config, err := GetRepoConfig(root)
		require.NoError(t, err)
		require.Equal(t, "upstream", config.RemoteOrDefault())
		require.True(t, config.PrintCommandsEnabled())
	})

	t.Run("fails on malformed files", func(t *testing.T) {
		t.Parallel()
		root := newRepoRoot(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", ".stacker_config"), []byte("{"), 0600))

		_, err := GetRepoConfig(root)
		require.ErrorContains(t, err, "failed to parse repo config")
	})
}

func TestSetRepoConfig(t *testing.T) {
	t.Parallel()

	t.Run("round trips every key", func(t *testing.T) {
		t.Parallel()
		root := newRepoRoot(t)

		require.NoError(t, Set(root, KeyRemote, "fork"))
		require.NoError(t, Set(root, KeyPrintCommands, "true"))

		remote, err := Get(root, KeyRemote)
		require.NoError(t, err)
		require.Equal(t, "fork", remote)
		printCommands, err := Get(root, KeyPrintCommands)
		require.NoError(t, err)
		require.Equal(t, "true", printCommands)
	})

	t.Run("keeps other keys", func(t *testing.T) {
		t.Parallel()
		root := newRepoRoot(t)

		require.NoError(t, SetPrintCommands(root, true))
		require.NoError(t, SetRemote(root, "fork"))

		config, err := GetRepoConfig(root)
		require.NoError(t, err)
		require.True(t, config.PrintCommandsEnabled())
		require.Equal(t, "fork", config.RemoteOrDefault())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()
		root := newRepoRoot(t)

		require.ErrorIs(t, Set(root, "trunk", "main"), stackererrors.ErrInvalidArgument)
		require.ErrorIs(t, Set(root, KeyRemote, ""), stackererrors.ErrInvalidArgument)
		require.ErrorIs(t, Set(root, KeyPrintCommands, "maybe"), stackererrors.ErrInvalidArgument)
		_, err := Get(root, "trunk")
		require.ErrorIs(t, err, stackererrors.ErrInvalidArgument)

		_, err = os.Stat(filepath.Join(root, ".git", ".stacker_config"))
		require.True(t, os.IsNotExist(err))
	})
}
