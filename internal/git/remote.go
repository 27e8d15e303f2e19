package git

import (
	"context"
	"fmt"
	"slices"
)

// Remotes returns the configured remote names
func (r *CommandRunner) Remotes(ctx context.Context) ([]string, error) {
	remotes, err := r.RunLines(ctx, "remote")
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	return remotes, nil
}

// BranchRemote returns the remote a branch tracks, or "" when it has no upstream
func (r *CommandRunner) BranchRemote(ctx context.Context, branch string) string {
	remote, err := r.Run(ctx, "config", "--get", "branch."+branch+".remote")
	if err != nil {
		return ""
	}
	return remote
}

// ResolveRemote picks the remote to use for branch: its upstream remote, then
// the preferred remote, then the only configured remote. It returns "" when
// no remote is configured.
func (r *CommandRunner) ResolveRemote(ctx context.Context, branch, preferred string) (string, error) {
	if remote := r.BranchRemote(ctx, branch); remote != "" && remote != "." {
		return remote, nil
	}
	remotes, err := r.Remotes(ctx)
	if err != nil {
		return "", err
	}
	if slices.Contains(remotes, preferred) {
		return preferred, nil
	}
	if len(remotes) == 1 {
		return remotes[0], nil
	}
	return "", nil
}
