package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	snaperrors "snap.dev/snap/internal/errors"
	"snap.dev/snap/internal/git"
)

// StageAll stages every pending change and returns the number of staged
// paths. Calling it on a clean tree is an error (ErrEmptyChangeSet).
func (e *engineImpl) StageAll(ctx context.Context) (int, error) {
	state, err := e.Probe(ctx)
	if err != nil {
		return 0, err
	}
	if state.IsClean {
		return 0, snaperrors.ErrEmptyChangeSet
	}

	if err := e.git.StageAll(ctx); err != nil {
		return 0, err
	}
	staged, err := e.git.StagedFiles(ctx)
	if err != nil {
		return 0, err
	}
	if len(staged) == 0 {
		return 0, snaperrors.ErrEmptyChangeSet
	}
	return len(staged), nil
}

// Commit creates exactly one snapshot commit from the index
func (e *engineImpl) Commit(ctx context.Context, message string, timestamp time.Time) (SnapshotRecord, error) {
	if strings.TrimSpace(message) == "" {
		return SnapshotRecord{}, snaperrors.ErrEmptyMessage
	}
	staged, err := e.git.StagedFiles(ctx)
	if err != nil {
		return SnapshotRecord{}, err
	}
	if len(staged) == 0 {
		return SnapshotRecord{}, snaperrors.ErrEmptyChangeSet
	}

	sha, err := e.git.Commit(ctx, FormatMessage(timestamp, message, e.newID()))
	if err != nil {
		return SnapshotRecord{}, err
	}
	e.logger.Debug("created snapshot %s", sha)

	last, err := e.LastSnapshot(ctx)
	if err != nil {
		return SnapshotRecord{}, err
	}
	if last == nil || last.ID != sha {
		return SnapshotRecord{}, fmt.Errorf("snapshot %s is not at HEAD after commit", sha)
	}
	return *last, nil
}

// Save stages everything, commits one snapshot and publishes it unless
// opts.NoPush is set. A clean tree yields NothingToSave and no commit. A
// push failure is reported in the result; the local commit is kept.
func (e *engineImpl) Save(ctx context.Context, message string, opts SaveOptions) (SaveResult, error) {
	if strings.TrimSpace(message) == "" {
		return SaveResult{}, snaperrors.ErrEmptyMessage
	}

	state, err := e.Probe(ctx)
	if err != nil {
		return SaveResult{}, err
	}
	if state.Detached {
		return SaveResult{}, snaperrors.ErrDetachedHead
	}
	if state.RebaseInProgress {
		return SaveResult{}, snaperrors.ErrOperationInProgress
	}
	if state.IsClean {
		return SaveResult{NothingToSave: true}, nil
	}

	count, err := e.StageAll(ctx)
	if err != nil {
		if errors.Is(err, snaperrors.ErrEmptyChangeSet) {
			return SaveResult{NothingToSave: true}, nil
		}
		return SaveResult{}, err
	}

	record, err := e.Commit(ctx, message, e.clock())
	if err != nil {
		if git.ExitCode(err) > 0 && !git.IsInterrupted(err) {
			return SaveResult{StagedCount: count}, snaperrors.NewCommitRefusedError(count, git.FailureReason(err))
		}
		return SaveResult{}, err
	}
	result := SaveResult{StagedCount: count, Snapshot: &record}
	if opts.NoPush {
		return result, nil
	}

	outcome, err := e.Push(ctx, state.CurrentBranch)
	if err != nil {
		return result, err
	}
	result.Push = outcome
	return result, nil
}
