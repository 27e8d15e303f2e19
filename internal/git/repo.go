package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	snaperrors "snap.dev/snap/internal/errors"
)

// CheckBackend verifies the git executable is available
func CheckBackend() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("%w: %v", snaperrors.ErrBackendUnavailable, err)
	}
	return nil
}

// FindRepoRoot returns the root of the working tree containing dir,
// searching upward the way git does.
func FindRepoRoot(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", snaperrors.ErrNotARepository, dir)
		}
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no working tree to snapshot.
		return "", fmt.Errorf("%w: %s has no working tree", snaperrors.ErrNotARepository, dir)
	}

	return worktree.Filesystem.Root(), nil
}

// GitDir returns the absolute path of the repository's git directory
func (r *CommandRunner) GitDir(ctx context.Context) (string, error) {
	dir, err := r.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to locate git directory: %w", err)
	}
	return dir, nil
}

// GitCommonDir returns the absolute path of the directory shared by all
// worktrees. It equals GitDir outside a linked worktree.
func (r *CommandRunner) GitCommonDir(ctx context.Context) (string, error) {
	dir, err := r.Run(ctx, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("failed to locate common git directory: %w", err)
	}
	if !filepath.IsAbs(dir) {
		dir, err = filepath.Abs(filepath.Join(r.workingDir, dir))
		if err != nil {
			return "", fmt.Errorf("failed to resolve common git directory: %w", err)
		}
	}
	return filepath.Clean(dir), nil
}

// HasCommits reports whether HEAD resolves to a commit
func (r *CommandRunner) HasCommits(ctx context.Context) (bool, error) {
	_, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", "HEAD")
	if err == nil {
		return true, nil
	}
	if ExitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to resolve HEAD: %w", err)
}

// HeadSHA returns the commit HEAD points at
func (r *CommandRunner) HeadSHA(ctx context.Context) (string, error) {
	sha, err := r.Run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return sha, nil
}
