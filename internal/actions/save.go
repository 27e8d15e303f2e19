package actions

import (
	"context"
	"errors"

	"snap.dev/snap/internal/engine"
	snaperrors "snap.dev/snap/internal/errors"
	"snap.dev/snap/internal/lock"
	"snap.dev/snap/internal/runtime"
	"snap.dev/snap/internal/tui"
)

// SaveOptions contains options for the save command
type SaveOptions struct {
	Message string
	NoPush  bool
}

// SaveAction stages all changes, commits one snapshot and publishes it
func SaveAction(ctx *runtime.Context, opts SaveOptions) error {
	splog := ctx.Splog
	noPush := opts.NoPush || !ctx.Config.AutoPush

	title := "Saving snapshot"
	if !noPush {
		title = "Saving and publishing snapshot"
	}
	result, err := lock.WithLock(ctx, ctx.Guard, func(c context.Context) (engine.SaveResult, error) {
		return tui.RunWithSpinner(c, ctx.Spinner && !noPush, title, func(c context.Context) (engine.SaveResult, error) {
			return ctx.Engine.Save(c, opts.Message, engine.SaveOptions{NoPush: noPush})
		})
	})
	if err != nil {
		if result.Snapshot != nil {
			splog.Warn("Commit %s was created locally before the failure.", result.Snapshot.ShortID)
		}
		if errors.Is(err, snaperrors.ErrCommitRefused) {
			splog.Tip("Your changes are staged. Fix what the commit hook reported and run %s again.", tui.ColorCyan("snap save"))
		}
		return err
	}

	if result.NothingToSave {
		splog.Info("Nothing to save, working tree clean.")
		return nil
	}

	snap := result.Snapshot
	splog.Success("Saved %s %s (%s)", tui.ColorCommitID(snap.ShortID), snap.Subject, pluralize(result.StagedCount, "file"))

	switch push := result.Push.(type) {
	case nil:
		splog.Info("Commit created locally, not pushed.")
		return nil
	case engine.Published:
		splog.Success("Published %s to %s.", tui.ColorBranchName(push.Branch), push.Remote)
		return nil
	case engine.Rejected:
		splog.Tip("Run %s to pull remote changes and publish.", tui.ColorCyan("snap sync"))
		return snaperrors.NewOutcomeError(snaperrors.ErrPushRejected,
			"commit %s created locally, push rejected: %s", snap.ShortID, push.Reason)
	case engine.NetworkFailure:
		splog.Tip("Your work is committed. Run %s once the remote is reachable.", tui.ColorCyan("snap sync"))
		return snaperrors.NewOutcomeError(snaperrors.ErrNetworkFailure,
			"commit %s created locally, push failed: %s", snap.ShortID, push.Reason)
	default:
		return nil
	}
}
