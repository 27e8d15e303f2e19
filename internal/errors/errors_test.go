package errors_test

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	snaperrors "snap.dev/snap/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want snaperrors.ExitClass
	}{
		{"nil", nil, snaperrors.ExitSuccess},
		{"nothing to save", snaperrors.ErrEmptyChangeSet, snaperrors.ExitSuccess},
		{"not a repository", fmt.Errorf("pre-flight: %w", snaperrors.ErrNotARepository), snaperrors.ExitFatal},
		{"git missing", snaperrors.ErrBackendUnavailable, snaperrors.ExitFatal},
		{"unsafe undo", snaperrors.NewUnsafeUndoError("abcdef123456", "manual"), snaperrors.ExitUserActionable},
		{"lock held", snaperrors.NewLockHeldError("/tmp/x.lock", 42), snaperrors.ExitUserActionable},
		{"conflict", snaperrors.NewOutcomeError(snaperrors.ErrConflictDetected, "conflict in %s", "a.txt"), snaperrors.ExitUserActionable},
		{"network", snaperrors.NewOutcomeError(snaperrors.ErrNetworkFailure, "offline"), snaperrors.ExitUserActionable},
		{"commit refused", snaperrors.NewCommitRefusedError(2, "lint failed"), snaperrors.ExitUserActionable},
		{"canceled", fmt.Errorf("push: %w", context.Canceled), snaperrors.ExitInterrupted},
		{"unknown", errors.New("boom"), snaperrors.ExitFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, snaperrors.Classify(tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, snaperrors.ExitSuccess.ExitCode())
	assert.Equal(t, 2, snaperrors.ExitUserActionable.ExitCode())
	assert.Equal(t, 1, snaperrors.ExitFatal.ExitCode())
	assert.Equal(t, 130, snaperrors.ExitInterrupted.ExitCode())
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	t.Run("unsafe undo", func(t *testing.T) {
		err := fmt.Errorf("undo: %w", snaperrors.NewUnsafeUndoError("0123456789", "wip"))
		require.ErrorIs(t, err, snaperrors.ErrUnsafeUndo)

		var undoErr *snaperrors.UnsafeUndoError
		require.ErrorAs(t, err, &undoErr)
		assert.Equal(t, "wip", undoErr.Subject)
		assert.Contains(t, err.Error(), "0123456")
	})

	t.Run("outcome kind", func(t *testing.T) {
		err := snaperrors.NewOutcomeError(snaperrors.ErrPushRejected, "rejected")
		assert.ErrorIs(t, err, snaperrors.ErrPushRejected)
		assert.NotErrorIs(t, err, snaperrors.ErrNetworkFailure)
	})

	t.Run("commit refused states the repository", func(t *testing.T) {
		err := fmt.Errorf("save: %w", snaperrors.NewCommitRefusedError(3, "lint failed"))
		require.ErrorIs(t, err, snaperrors.ErrCommitRefused)
		assert.Equal(t, "save: changes staged (3 paths), commit refused: lint failed", err.Error())
	})

	t.Run("lock held without pid mentions git", func(t *testing.T) {
		err := snaperrors.NewLockHeldError(".git/index.lock", 0)
		assert.Contains(t, err.Error(), "git operation")
	})
}

func TestGitCommandErrorExitCode(t *testing.T) {
	runErr := exec.Command("sh", "-c", "exit 3").Run()
	require.Error(t, runErr)

	err := snaperrors.NewGitCommandError("git", []string{"status"}, "", "fatal: nope", runErr)
	assert.Equal(t, 3, err.ExitCode)
	assert.Contains(t, err.Error(), "fatal: nope")

	err = snaperrors.NewGitCommandError("git", nil, "", "", context.DeadlineExceeded)
	assert.Equal(t, -1, err.ExitCode)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
