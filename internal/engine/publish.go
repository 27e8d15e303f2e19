package engine

import (
	"context"

	"snap.dev/snap/internal/git"
)

const noRemoteReason = "no remote configured"

// Push publishes branch to its remote. Remote failures are reported as
// outcomes; only interruption and local failures are errors.
func (e *engineImpl) Push(ctx context.Context, branch string) (PushOutcome, error) {
	state, err := e.Probe(ctx)
	if err != nil {
		return nil, err
	}
	remote, err := e.git.ResolveRemote(ctx, branch, e.remote)
	if err != nil {
		return nil, err
	}
	if remote == "" {
		return NetworkFailure{Reason: noRemoteReason}, nil
	}
	setUpstream := branch == state.CurrentBranch && !state.HasUpstream
	return e.pushTo(ctx, remote, branch, setUpstream)
}

func (e *engineImpl) pushTo(ctx context.Context, remote, branch string, setUpstream bool) (PushOutcome, error) {
	e.logger.Debug("pushing %s to %s (set upstream: %t)", branch, remote, setUpstream)
	result, err := e.git.Push(ctx, remote, branch, setUpstream)
	if err != nil {
		return nil, err
	}
	switch result.Status {
	case git.PushDone:
		return Published{Remote: remote, Branch: branch}, nil
	case git.PushRejected:
		return Rejected{Reason: result.Reason}, nil
	default:
		return NetworkFailure{Reason: result.Reason}, nil
	}
}
