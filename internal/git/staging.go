package git

import (
	"context"
	"fmt"
)

// StageAll stages all changes including untracked files and deletions
func (r *CommandRunner) StageAll(ctx context.Context) error {
	_, err := r.Run(ctx, "add", "-A")
	if err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}

// StagedFiles lists the paths staged for the next commit
func (r *CommandRunner) StagedFiles(ctx context.Context) ([]string, error) {
	files, err := r.RunPaths(ctx, "diff", "--cached", "-z", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("failed to list staged changes: %w", err)
	}
	return files, nil
}
