package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// RebaseResult represents the result of a rebase operation
type RebaseResult int

const (
	// RebaseDone indicates the rebase was successful
	RebaseDone RebaseResult = iota
	// RebaseConflict indicates a conflict occurred during rebase
	RebaseConflict
)

// Rebase replays the current branch's commits on top of upstream. A conflict
// leaves the rebase in progress for the caller to inspect and abort.
func (r *CommandRunner) Rebase(ctx context.Context, upstream string) (RebaseResult, error) {
	_, err := r.Run(ctx, "-c", "core.editor=true", "rebase", "--no-autostash", upstream)
	if err == nil {
		return RebaseDone, nil
	}
	if ctx.Err() != nil {
		return RebaseConflict, fmt.Errorf("rebase interrupted: %w", err)
	}
	// Check if rebase is in progress (conflict)
	if r.IsRebaseInProgress(ctx) {
		return RebaseConflict, nil
	}
	return RebaseConflict, fmt.Errorf("rebase onto %s failed: %w", upstream, err)
}

// IsRebaseInProgress checks if a rebase is currently in progress
func (r *CommandRunner) IsRebaseInProgress(ctx context.Context) bool {
	// Check for .git/rebase-merge or .git/rebase-apply directories
	// This is more reliable than checking REBASE_HEAD which can persist after rebase
	gitDir, err := r.GitDir(ctx)
	if err != nil {
		return false
	}
	for _, name := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(gitDir, name)); err == nil {
			return true
		}
	}
	return false
}

// RebaseAbort aborts an in-progress rebase, restoring the pre-rebase state
func (r *CommandRunner) RebaseAbort(ctx context.Context) error {
	_, err := r.Run(ctx, "rebase", "--abort")
	if err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}

// UnmergedFiles lists paths with unresolved conflicts
func (r *CommandRunner) UnmergedFiles(ctx context.Context) ([]string, error) {
	files, err := r.RunPaths(ctx, "diff", "-z", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicted files: %w", err)
	}
	return files, nil
}
