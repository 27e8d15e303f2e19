package git

import (
	"context"
	"fmt"
)

// SoftReset moves the current branch to revision, keeping index and working tree
func (r *CommandRunner) SoftReset(ctx context.Context, revision string) error {
	_, err := r.Run(ctx, "reset", "-q", "--soft", revision)
	if err != nil {
		return fmt.Errorf("failed to soft reset to %s: %w", revision, err)
	}
	return nil
}

// UnbornReset removes the only commit of a branch by deleting the branch ref,
// keeping index and working tree. HEAD stays attached to the now unborn branch.
func (r *CommandRunner) UnbornReset(ctx context.Context, branch, expectedSHA string) error {
	_, err := r.Run(ctx, "update-ref", "-d", "refs/heads/"+branch, expectedSHA)
	if err != nil {
		return fmt.Errorf("failed to remove root commit from %s: %w", branch, err)
	}
	return nil
}

// ParentCount returns the number of parents of revision
func (r *CommandRunner) ParentCount(ctx context.Context, revision string) (int, error) {
	parents, err := r.RunLines(ctx, "rev-list", "--parents", "-n", "1", revision)
	if err != nil {
		return 0, fmt.Errorf("failed to read parents of %s: %w", revision, err)
	}
	if len(parents) == 0 {
		return 0, fmt.Errorf("commit %s not found", revision)
	}
	// first field is the commit itself
	count := 0
	for _, c := range parents[0] {
		if c == ' ' {
			count++
		}
	}
	return count, nil
}

// IsAncestor checks whether ancestor is reachable from descendant
func (r *CommandRunner) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	_, err := r.Run(ctx, "merge-base", "--is-ancestor", ancestor, descendant)
	if err == nil {
		return true, nil
	}
	if ExitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to compare %s and %s: %w", ancestor, descendant, err)
}

// RefExists reports whether ref resolves to an object
func (r *CommandRunner) RefExists(ctx context.Context, ref string) (bool, error) {
	_, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", ref)
	if err == nil {
		return true, nil
	}
	if ExitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to resolve %s: %w", ref, err)
}
