// Package testhelpers provides testing utilities for stacker: temporary
// Git repositories (scenes), repository helpers and assertions.
package testhelpers

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must panics if err is not nil, otherwise returns the value. Useful in
// setup code where errors are not expected.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts the repository has exactly the expected branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("for-each-ref", "refs/heads/", "--format=%(refname:short)")
	require.NoError(t, err, "Failed to list branches")

	branches := splitLines(output)
	slices.Sort(branches)
	expected = slices.Clone(expected)
	slices.Sort(expected)
	require.Equal(t, expected, branches, "Branches do not match")
}

// ExpectRef asserts that name resolves to the same object as rev.
func ExpectRef(t *testing.T, repo *GitRepo, name, rev string) {
	t.Helper()

	got, err := repo.GetRevision(name)
	require.NoError(t, err, "%s does not exist", name)
	want, err := repo.GetRevision(rev)
	require.NoError(t, err, "%s does not exist", rev)
	require.Equal(t, want, got, "%s is not at %s", name, rev)
}

// ExpectSymbolicRef asserts that name is a symbolic reference to target.
func ExpectSymbolicRef(t *testing.T, repo *GitRepo, name, target string) {
	t.Helper()

	got, err := repo.GetSymbolicRef(name)
	require.NoError(t, err, "%s is not a symbolic ref", name)
	require.Equal(t, target, got)
}

// ExpectNoRef asserts that name does not exist.
func ExpectNoRef(t *testing.T, repo *GitRepo, name string) {
	t.Helper()
	require.False(t, repo.RefExists(name), "%s should not exist", name)
}
