package engine

import (
	"context"
	"fmt"

	snaperrors "snap.dev/snap/internal/errors"
)

// UndoLast removes the last commit from the current branch and leaves its
// changes staged. File contents are not touched. A commit that snap did not
// create is refused unless force is set.
//
// UndoLast is not idempotent: calling it again undoes the commit that is
// now last.
func (e *engineImpl) UndoLast(ctx context.Context, force bool) (UndoOutcome, error) {
	state, err := e.Probe(ctx)
	if err != nil {
		return UndoOutcome{}, err
	}
	if state.Detached {
		return UndoOutcome{}, snaperrors.ErrDetachedHead
	}
	if state.RebaseInProgress {
		return UndoOutcome{}, snaperrors.ErrOperationInProgress
	}

	last, err := e.LastSnapshot(ctx)
	if err != nil {
		return UndoOutcome{}, err
	}
	if last == nil {
		return UndoOutcome{}, snaperrors.ErrNothingToUndo
	}
	if !last.CreatedByTool && !force {
		return UndoOutcome{}, snaperrors.NewUnsafeUndoError(last.ID, last.Subject)
	}

	published, err := e.isPublished(ctx, state, last.ID)
	if err != nil {
		return UndoOutcome{}, err
	}

	parents, err := e.git.ParentCount(ctx, last.ID)
	if err != nil {
		return UndoOutcome{}, err
	}
	if parents == 0 {
		err = e.git.UnbornReset(ctx, state.CurrentBranch, last.ID)
	} else {
		err = e.git.SoftReset(ctx, "HEAD~1")
	}
	if err != nil {
		return UndoOutcome{}, fmt.Errorf("undo %s: %w", last.ShortID, err)
	}
	e.logger.Debug("undid %s (root: %t, forced: %t)", last.ID, parents == 0, !last.CreatedByTool)

	restored, err := e.git.StagedFiles(ctx)
	if err != nil {
		return UndoOutcome{}, err
	}

	return UndoOutcome{
		Undone:        *last,
		Forced:        !last.CreatedByTool,
		WasPublished:  published,
		RestoredPaths: restored,
	}, nil
}

// isPublished reports whether sha is already on the branch's upstream
func (e *engineImpl) isPublished(ctx context.Context, state RepositoryState, sha string) (bool, error) {
	if !state.HasUpstream {
		return false, nil
	}
	upstreamRef := "refs/remotes/" + state.Upstream
	exists, err := e.git.RefExists(ctx, upstreamRef)
	if err != nil || !exists {
		return false, err
	}
	return e.git.IsAncestor(ctx, sha, upstreamRef)
}
