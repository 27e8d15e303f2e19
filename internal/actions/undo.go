package actions

import (
	"context"
	"errors"
	"fmt"

	"snap.dev/snap/internal/engine"
	"snap.dev/snap/internal/lock"
	"snap.dev/snap/internal/runtime"
	"snap.dev/snap/internal/tui"
)

// UndoOptions contains options for the undo command
type UndoOptions struct {
	// Force allows undoing a commit snap did not create
	Force bool
	// Yes skips the confirmation shown before a forced undo
	Yes bool
}

// confirmFunc asks the user a yes/no question
type confirmFunc func(message string, defaultValue bool) (bool, error)

// UndoAction removes the last snapshot, keeping its changes staged
func UndoAction(ctx *runtime.Context, opts UndoOptions) error {
	return undoAction(ctx, opts, tui.PromptConfirm)
}

func undoAction(ctx *runtime.Context, opts UndoOptions, confirm confirmFunc) error {
	splog := ctx.Splog

	if opts.Force && !opts.Yes && ctx.Interactive {
		last, err := ctx.Engine.LastSnapshot(ctx)
		if err != nil {
			return err
		}
		if last != nil && !last.CreatedByTool {
			ok, err := confirm(fmt.Sprintf("Undo %s %q? It was not created by snap.", last.ShortID, last.Subject), false)
			if err != nil && !errors.Is(err, tui.ErrInteractiveDisabled) {
				return err
			}
			if err == nil && !ok {
				splog.Info("Undo cancelled, nothing changed.")
				return nil
			}
		}
	}

	outcome, err := lock.WithLock(ctx, ctx.Guard, func(c context.Context) (engine.UndoOutcome, error) {
		return ctx.Engine.UndoLast(c, opts.Force)
	})
	if err != nil {
		return err
	}

	undone := outcome.Undone
	splog.Success("Undid %s %s", tui.ColorCommitID(undone.ShortID), undone.Subject)
	splog.Info("Its changes are staged (%s).", pluralize(len(outcome.RestoredPaths), "file"))
	if outcome.WasPublished {
		splog.Warn("%s was already published. The remote still has it, so the next sync will bring it back.", undone.ShortID)
	}
	splog.Info("%s", tui.ColorDim("Undo is not idempotent: running it again undoes the commit before this one."))
	return nil
}
