package engine

import (
	"context"
	"errors"
	"fmt"

	snaperrors "snap.dev/snap/internal/errors"
	"snap.dev/snap/internal/git"
)

const (
	stageFetch = "fetch"
	stagePush  = "push"
)

// pullResult describes a pull that reached the Clean state
type pullResult struct {
	pulled        int
	remoteMissing bool
}

// Sync pulls the remote branch with a rebase and publishes local commits.
// It refuses to start on a dirty tree or during a rebase. A conflicting pull
// is aborted and reported as ConflictDetected; nothing is pushed after it.
// No rebase is left in progress when Sync returns, including on cancellation.
func (e *engineImpl) Sync(ctx context.Context, opts SyncOptions) (outcome SyncOutcome, err error) {
	state, err := e.Probe(ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case state.Detached:
		return nil, snaperrors.ErrDetachedHead
	case state.RebaseInProgress:
		return nil, snaperrors.ErrOperationInProgress
	case !state.IsClean:
		return nil, fmt.Errorf("%w: save or discard them before syncing", snaperrors.ErrUncommittedChanges)
	case state.Unborn:
		return nil, fmt.Errorf("%w: save a snapshot before syncing", snaperrors.ErrUnbornBranch)
	}

	branch := state.CurrentBranch
	remote, err := e.git.ResolveRemote(ctx, branch, e.remote)
	if err != nil {
		return nil, err
	}
	if remote == "" {
		return Unreachable{Stage: stageFetch, Reason: noRemoteReason}, nil
	}

	m := newSyncMachine(e.logger)
	if err := m.to(StatePulling); err != nil {
		return nil, err
	}

	rebaseStarted := false
	defer func() {
		if !rebaseStarted {
			return
		}
		// cleanup must run even when ctx is already cancelled
		cleanupCtx := context.WithoutCancel(ctx)
		if !e.git.IsRebaseInProgress(cleanupCtx) {
			return
		}
		e.logger.Debug("sync: aborting unfinished rebase")
		if abortErr := e.git.RebaseAbort(cleanupCtx); abortErr != nil {
			outcome = nil
			err = errors.Join(err, fmt.Errorf("%w: %w", snaperrors.ErrRebaseNotAborted, abortErr))
		}
	}()

	pull, stopped, err := e.pull(ctx, m, remote, branch, &rebaseStarted)
	if err != nil || stopped != nil {
		return stopped, err
	}

	ahead, err := e.localAhead(ctx, remote, branch, pull.remoteMissing)
	if err != nil {
		return nil, err
	}

	if ahead == 0 || opts.NoPush {
		// a push would set the upstream; without one, track the branch we just pulled
		if !state.HasUpstream && !pull.remoteMissing {
			if err := e.git.SetUpstream(ctx, remote, branch); err != nil {
				return nil, err
			}
		}
		if err := m.to(StateDone); err != nil {
			return nil, err
		}
		switch {
		case ahead > 0:
			return Rebased{Pulled: pull.pulled, Unpushed: ahead}, nil
		case pull.pulled > 0:
			return FastForwarded{Pulled: pull.pulled}, nil
		default:
			return UpToDate{}, nil
		}
	}

	return e.publish(ctx, m, remote, branch, pull, ahead, pull.remoteMissing || !state.HasUpstream)
}

// pull fetches remote/branch and rebases onto it. On success m is Clean.
// A non-nil outcome means the sync stopped in ConflictDetected or PullFailed.
func (e *engineImpl) pull(ctx context.Context, m *syncMachine, remote, branch string, rebaseStarted *bool) (pullResult, SyncOutcome, error) {
	fetch, err := e.git.FetchBranch(ctx, remote, branch)
	if err != nil {
		return pullResult{}, nil, err
	}

	switch fetch.Status {
	case git.FetchUnreachable:
		if err := m.to(StatePullFailed); err != nil {
			return pullResult{}, nil, err
		}
		return pullResult{}, Unreachable{Stage: stageFetch, Reason: fetch.Reason}, nil
	case git.FetchNoRemoteBranch:
		e.logger.Debug("sync: %s has no branch %s yet", remote, branch)
		return pullResult{remoteMissing: true}, nil, m.to(StateClean)
	}

	tracking := git.RemoteTrackingRef(remote, branch)
	_, behind, err := e.git.AheadBehind(ctx, "HEAD", tracking)
	if err != nil {
		return pullResult{}, nil, err
	}
	if behind == 0 {
		return pullResult{}, nil, m.to(StateClean)
	}

	*rebaseStarted = true
	result, err := e.git.Rebase(ctx, tracking)
	if err != nil {
		return pullResult{}, nil, err
	}
	if result == git.RebaseConflict {
		paths, err := e.git.UnmergedFiles(ctx)
		if err != nil {
			return pullResult{}, nil, err
		}
		if err := e.git.RebaseAbort(ctx); err != nil {
			return pullResult{}, nil, err
		}
		if err := m.to(StateConflictDetected); err != nil {
			return pullResult{}, nil, err
		}
		return pullResult{}, ConflictDetected{Paths: paths}, nil
	}

	return pullResult{pulled: behind}, nil, m.to(StateClean)
}

// publish pushes after a clean pull. The machine rejects this from any
// state other than Clean.
func (e *engineImpl) publish(ctx context.Context, m *syncMachine, remote, branch string, pull pullResult, ahead int, setUpstream bool) (SyncOutcome, error) {
	if err := m.to(StatePushing); err != nil {
		return nil, err
	}
	pushed, err := e.pushTo(ctx, remote, branch, setUpstream)
	if err != nil {
		return nil, err
	}

	switch p := pushed.(type) {
	case Published:
		if err := m.to(StateDone); err != nil {
			return nil, err
		}
		return RebasedAndPushed{Pulled: pull.pulled, Pushed: ahead}, nil
	case Rejected:
		if err := m.to(StatePushFailed); err != nil {
			return nil, err
		}
		return PushRejected{Reason: p.Reason}, nil
	case NetworkFailure:
		if err := m.to(StatePushFailed); err != nil {
			return nil, err
		}
		return Unreachable{Stage: stagePush, Reason: p.Reason}, nil
	default:
		return nil, fmt.Errorf("unexpected push outcome %T", pushed)
	}
}

// localAhead counts commits that the remote branch does not have yet
func (e *engineImpl) localAhead(ctx context.Context, remote, branch string, remoteMissing bool) (int, error) {
	if remoteMissing {
		return e.git.CountCommits(ctx, "HEAD")
	}
	ahead, _, err := e.git.AheadBehind(ctx, "HEAD", git.RemoteTrackingRef(remote, branch))
	return ahead, err
}
