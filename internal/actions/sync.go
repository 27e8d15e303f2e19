package actions

import (
	"context"
	"strings"

	"snap.dev/snap/internal/engine"
	snaperrors "snap.dev/snap/internal/errors"
	"snap.dev/snap/internal/lock"
	"snap.dev/snap/internal/runtime"
	"snap.dev/snap/internal/tui"
)

// SyncOptions contains options for the sync command
type SyncOptions struct {
	NoPush bool
}

// SyncAction pulls remote changes with a rebase and publishes local commits
func SyncAction(ctx *runtime.Context, opts SyncOptions) error {
	splog := ctx.Splog
	noPush := opts.NoPush || !ctx.Config.AutoPush

	outcome, err := lock.WithLock(ctx, ctx.Guard, func(c context.Context) (engine.SyncOutcome, error) {
		return tui.RunWithSpinner(c, ctx.Spinner, "Syncing with remote", func(c context.Context) (engine.SyncOutcome, error) {
			return ctx.Engine.Sync(c, engine.SyncOptions{NoPush: noPush})
		})
	})
	if err != nil {
		return err
	}

	switch o := outcome.(type) {
	case engine.UpToDate:
		splog.Info("Already up to date.")
	case engine.FastForwarded:
		splog.Success("Pulled %s.", pluralize(o.Pulled, "commit"))
	case engine.Rebased:
		splog.Success("Pulled %s.", pluralize(o.Pulled, "commit"))
		splog.Info("%s not pushed.", pluralize(o.Unpushed, "local commit"))
	case engine.RebasedAndPushed:
		if o.Pulled > 0 {
			splog.Success("Pulled %s.", pluralize(o.Pulled, "commit"))
		}
		splog.Success("Published %s.", pluralize(o.Pushed, "commit"))
	case engine.ConflictDetected:
		return printConflict(ctx, o)
	case engine.PushRejected:
		splog.Tip("The remote moved again while syncing. Run %s again.", tui.ColorCyan("snap sync"))
		return snaperrors.NewOutcomeError(snaperrors.ErrPushRejected,
			"remote changes pulled and rebased locally, push rejected: %s", o.Reason)
	case engine.Unreachable:
		if o.Stage == "push" {
			return snaperrors.NewOutcomeError(snaperrors.ErrNetworkFailure,
				"remote changes pulled and rebased locally, push failed: %s", o.Reason)
		}
		return snaperrors.NewOutcomeError(snaperrors.ErrNetworkFailure,
			"could not fetch, nothing changed: %s", o.Reason)
	}
	return nil
}

// printConflict explains a conflicting pull. The engine has already aborted
// the rebase, so the branch is exactly as it was before the sync.
func printConflict(ctx *runtime.Context, o engine.ConflictDetected) error {
	splog := ctx.Splog
	splog.Info("%s", tui.ColorRed("Remote changes conflict with your local commits."))
	if len(o.Paths) > 0 {
		splog.Info("%s", tui.ColorYellow("Conflicting files:"))
		for _, path := range o.Paths {
			splog.Info("  %s", tui.ColorRed(path))
		}
	}
	splog.Newline()
	splog.Info("The rebase was aborted: your branch is unchanged and nothing was pushed.")
	splog.Info("%s", tui.ColorYellow("To resolve:"))
	splog.Info("(1) run %s", tui.ColorCyan("git pull --rebase"))
	splog.Info("(2) fix the conflicts and %s", tui.ColorCyan("git rebase --continue"))
	splog.Info("(3) run %s to publish", tui.ColorCyan("snap sync"))

	return snaperrors.NewOutcomeError(snaperrors.ErrConflictDetected,
		"sync stopped: conflict in %s", strings.Join(o.Paths, ", "))
}
