package integration

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"snap.dev/snap/testhelpers"
)

// =============================================================================
// Test Shell - A helper to make integration tests read like terminal sessions
// =============================================================================

// TestShell wraps a test scene and runs the snap binary inside it
type TestShell struct {
	t          *testing.T
	scene      *testhelpers.Scene
	binaryPath string
	lastOutput string
	lastCode   int
}

// NewTestShell creates a shell-like test environment with one commit and no remote
func NewTestShell(t *testing.T, binaryPath string) *TestShell {
	t.Helper()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	return &TestShell{t: t, scene: scene, binaryPath: binaryPath}
}

// NewTestShellWithRemote creates a shell whose main branch is published to a bare "origin"
func NewTestShellWithRemote(t *testing.T, binaryPath string) *TestShell {
	t.Helper()
	scene := testhelpers.NewScene(t, testhelpers.PublishedSceneSetup)
	return &TestShell{t: t, scene: scene, binaryPath: binaryPath}
}

// Scene returns the underlying test scene for direct access when needed.
func (s *TestShell) Scene() *testhelpers.Scene {
	return s.scene
}

// =============================================================================
// Command Execution
// =============================================================================

func (s *TestShell) command(args string) *exec.Cmd {
	cmd := exec.Command(s.binaryPath, splitArgs(args)...)
	cmd.Dir = s.scene.Repo.Dir
	cmd.Env = append(os.Environ(), "SNAP_TEST_NO_INTERACTIVE=1", "NO_COLOR=1")
	return cmd
}

// Run executes a snap command and requires it to succeed
func (s *TestShell) Run(args string) *TestShell {
	s.t.Helper()
	return s.RunExpectCode(0, args)
}

// RunExpectCode executes a snap command and requires the given exit status
func (s *TestShell) RunExpectCode(code int, args string) *TestShell {
	s.t.Helper()
	output, err := s.command(args).CombinedOutput()
	s.lastOutput = string(output)
	s.lastCode = exitCode(s.t, err)
	require.Equal(s.t, code, s.lastCode, "$ snap %s\n%s", args, s.lastOutput)
	return s
}

// Background is a snap process started with Start
type Background struct {
	cmd    *exec.Cmd
	output *bytes.Buffer
}

// Start launches a snap command without waiting for it
func (s *TestShell) Start(args string) *Background {
	s.t.Helper()
	var output bytes.Buffer
	cmd := s.command(args)
	cmd.Stdout = &output
	cmd.Stderr = &output
	require.NoError(s.t, cmd.Start())
	s.t.Cleanup(func() {
		if cmd.ProcessState == nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}
	})
	return &Background{cmd: cmd, output: &output}
}

// Signal sends sig to the background process
func (b *Background) Signal(t *testing.T, sig os.Signal) {
	t.Helper()
	require.NoError(t, b.cmd.Process.Signal(sig))
}

// Wait waits for the background process and returns its exit status and output
func (b *Background) Wait(t *testing.T) (int, string) {
	t.Helper()
	err := b.cmd.Wait()
	return exitCode(t, err), b.output.String()
}

// Git executes a raw git command in the repository
func (s *TestShell) Git(args string) *TestShell {
	s.t.Helper()
	require.NoError(s.t, s.scene.Repo.RunGitCommand(splitArgs(args)...))
	return s
}

// =============================================================================
// File Operations
// =============================================================================

// Write creates or modifies prefix_test.txt without staging it
func (s *TestShell) Write(prefix, content string) *TestShell {
	s.t.Helper()
	require.NoError(s.t, s.scene.Repo.CreateChange(content, prefix, true), "failed to write %s", prefix)
	return s
}

// Commit creates a file change and commits it with raw git
func (s *TestShell) Commit(prefix, message string) *TestShell {
	s.t.Helper()
	require.NoError(s.t, s.scene.Repo.CreateChangeAndCommit(message, prefix), "failed to commit %s", prefix)
	return s
}

// BlockingPreCommitHook installs a pre-commit hook that touches marker and
// then sleeps, so a commit can be interrupted while git holds index.lock.
func (s *TestShell) BlockingPreCommitHook(marker string) *TestShell {
	s.t.Helper()
	script := fmt.Sprintf("#!/bin/sh\ntouch %q\nexec sleep 30 >/dev/null 2>&1\n", marker)
	require.NoError(s.t, s.scene.Repo.InstallHook("pre-commit", script))
	return s
}

// RemoveHook deletes a hook installed earlier
func (s *TestShell) RemoveHook(name string) *TestShell {
	s.t.Helper()
	gitDir, err := s.scene.Repo.GitDir()
	require.NoError(s.t, err)
	require.NoError(s.t, os.Remove(filepath.Join(gitDir, "hooks", name)))
	return s
}

// WaitForFile blocks until path exists
func (s *TestShell) WaitForFile(path string) *TestShell {
	s.t.Helper()
	require.Eventually(s.t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 10*time.Second, 20*time.Millisecond, "%s never appeared", path)
	return s
}

// =============================================================================
// Output Inspection
// =============================================================================

// Output returns the last command's output
func (s *TestShell) Output() string {
	return s.lastOutput
}

// OutputContains asserts the last output contains the given string
func (s *TestShell) OutputContains(substr string) *TestShell {
	s.t.Helper()
	require.Contains(s.t, s.lastOutput, substr)
	return s
}

// =============================================================================
// Assertions
// =============================================================================

// CommitCount asserts the number of commits reachable from HEAD
func (s *TestShell) CommitCount(expected int) *TestShell {
	s.t.Helper()
	testhelpers.ExpectCommitCount(s.t, s.scene.Repo, "HEAD", expected)
	return s
}

// NoGitLocks asserts git left none of its lock files behind
func (s *TestShell) NoGitLocks() *TestShell {
	s.t.Helper()
	for _, name := range []string{"index.lock", "HEAD.lock", "refs/heads/main.lock"} {
		testhelpers.ExpectGitLockAbsent(s.t, s.scene.Repo, name)
	}
	return s
}

// Log prints a message (useful for documenting test steps)
func (s *TestShell) Log(msg string) *TestShell {
	s.t.Log(msg)
	return s
}

// =============================================================================
// Utility Functions
// =============================================================================

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "snap did not run: %v", err)
	return exitErr.ExitCode()
}

// splitArgs splits a command string into args, respecting quotes
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)

	for _, r := range s {
		switch {
		case r == '"' || r == '\'':
			switch {
			case inQuote && r == quoteChar:
				inQuote = false
			case !inQuote:
				inQuote = true
				quoteChar = r
			default:
				current.WriteRune(r)
			}
		case r == ' ' && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}
