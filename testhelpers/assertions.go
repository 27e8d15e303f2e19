// Package testhelpers provides testing utilities for snap,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectCommits asserts that the newest commit subjects on rev match expected.
func ExpectCommits(t *testing.T, repo *GitRepo, rev string, expected []string) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("log", "--format=%s", rev)
	require.NoError(t, err, "Failed to list commits")

	subjects := splitLines(output)
	if len(subjects) < len(expected) {
		require.Fail(t, "Not enough commits", "Expected %d commits, got %d", len(expected), len(subjects))
		return
	}

	require.Equal(t, expected, subjects[:len(expected)], "Commits do not match")
}

// ExpectCommitCount asserts the number of commits reachable from rev.
func ExpectCommitCount(t *testing.T, repo *GitRepo, rev string, expected int) {
	t.Helper()

	count, err := repo.CommitCount(rev)
	require.NoError(t, err)
	require.Equal(t, expected, count, "Commit count does not match for %s", rev)
}

// ExpectClean asserts the working tree and index have no changes.
func ExpectClean(t *testing.T, repo *GitRepo) {
	t.Helper()

	status, err := repo.StatusPorcelain()
	require.NoError(t, err)
	require.Empty(t, status, "Working tree is not clean")
}

// ExpectStaged asserts that exactly the given paths are staged.
func ExpectStaged(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("-c", "core.quotePath=false", "diff", "--cached", "--name-only")
	require.NoError(t, err)
	require.ElementsMatch(t, expected, splitLines(output), "Staged files do not match")
}

// ExpectNoRebase asserts that no rebase is in progress.
func ExpectNoRebase(t *testing.T, repo *GitRepo) {
	t.Helper()
	require.False(t, repo.RebaseInProgress(), "Expected no rebase in progress")
}

// ExpectGitLockAbsent asserts that a lock artifact is not present in the git dir.
func ExpectGitLockAbsent(t *testing.T, repo *GitRepo, name string) {
	t.Helper()

	gitDir, err := repo.GitDir()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(gitDir, name))
	require.True(t, os.IsNotExist(err), "Expected %s to be absent", name)
}

// ExpectFileContent asserts a working tree file has exactly content.
func ExpectFileContent(t *testing.T, repo *GitRepo, name, content string) {
	t.Helper()

	actual, err := repo.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, content, actual, "File %s content does not match", name)
}

// ExpectSubjectPrefix asserts the HEAD subject starts with prefix.
func ExpectSubjectPrefix(t *testing.T, repo *GitRepo, prefix string) {
	t.Helper()

	subject, err := repo.RunGitCommandAndGetOutput("log", "-1", "--format=%s")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(subject, prefix), "Subject %q does not start with %q", subject, prefix)
}
