package integration

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterruptedSaveLeavesNoLocks(t *testing.T) {
	shell := NewTestShellWithRemote(t, getSnapBinary(t))
	marker := filepath.Join(shell.Scene().Dir, "hook-started")

	shell.Write("wip", "half done\n").BlockingPreCommitHook(marker)
	save := shell.Start("save 'will be interrupted'")
	shell.WaitForFile(marker)

	save.Signal(t, os.Interrupt)
	code, output := save.Wait(t)
	assert.Equal(t, 130, code, output)
	assert.Contains(t, output, "interrupted")

	shell.NoGitLocks().CommitCount(1)

	shell.Log("The next save is not blocked")
	shell.RemoveHook("pre-commit").
		Run("save --no-push 'after interrupt'").
		CommitCount(2)
}

func TestConcurrentInvocationFailsFast(t *testing.T) {
	shell := NewTestShellWithRemote(t, getSnapBinary(t))
	marker := filepath.Join(shell.Scene().Dir, "hook-started")

	shell.Write("wip", "first\n").BlockingPreCommitHook(marker)
	first := shell.Start("save --no-push first")
	shell.WaitForFile(marker)

	shell.RunExpectCode(2, "save --no-push second").
		OutputContains("another snap process")

	first.Signal(t, syscall.SIGTERM)
	code, output := first.Wait(t)
	assert.Equal(t, 130, code, output)
	shell.NoGitLocks()
}
