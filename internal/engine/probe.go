package engine

import (
	"context"
	"fmt"
	"strings"

	snaperrors "snap.dev/snap/internal/errors"
	"snap.dev/snap/internal/git"
)

// Probe reads the current repository state. It never caches.
func (e *engineImpl) Probe(ctx context.Context) (RepositoryState, error) {
	status, err := e.git.Status(ctx)
	if err != nil {
		if strings.Contains(strings.ToLower(git.Stderr(err)), "not a git repository") {
			return RepositoryState{}, fmt.Errorf("%w: %v", snaperrors.ErrNotARepository, err)
		}
		return RepositoryState{}, err
	}

	return RepositoryState{
		IsTracked:        true,
		CurrentBranch:    status.Branch,
		Upstream:         status.Upstream,
		HasUpstream:      status.Upstream != "",
		IsClean:          status.IsClean(),
		AheadCount:       status.Ahead,
		BehindCount:      status.Behind,
		Detached:         status.Detached,
		Unborn:           status.Unborn,
		RebaseInProgress: e.git.IsRebaseInProgress(ctx),
		ChangedPaths:     status.ChangedPaths(),
		ConflictedPaths:  status.Conflicted,
	}, nil
}

// LastSnapshot returns the most recent commit, or nil on an unborn branch
func (e *engineImpl) LastSnapshot(ctx context.Context) (*SnapshotRecord, error) {
	records, err := e.ListRecentSnapshots(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// ListRecentSnapshots returns up to n commits, newest first
func (e *engineImpl) ListRecentSnapshots(ctx context.Context, n int) ([]SnapshotRecord, error) {
	if n <= 0 {
		return []SnapshotRecord{}, nil
	}
	entries, err := e.git.Log(ctx, n)
	if err != nil {
		return nil, err
	}
	records := make([]SnapshotRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, snapshotFromLog(entry))
	}
	return records, nil
}
