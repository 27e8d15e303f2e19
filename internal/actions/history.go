package actions

import (
	"snap.dev/snap/internal/runtime"
	"snap.dev/snap/internal/tui"
)

// HistoryOptions contains options for the history command
type HistoryOptions struct {
	// Limit is the number of commits to show; zero uses the configured default
	Limit int
}

// HistoryAction prints the most recent commits on the current branch
func HistoryAction(ctx *runtime.Context, opts HistoryOptions) error {
	limit := opts.Limit
	if limit <= 0 {
		limit = ctx.Config.HistoryLimit
	}

	state, err := ctx.Engine.Probe(ctx)
	if err != nil {
		return err
	}
	records, err := ctx.Engine.ListRecentSnapshots(ctx, limit)
	if err != nil {
		return err
	}

	branch := state.CurrentBranch
	if state.Detached {
		branch = "HEAD"
	}
	ctx.Splog.Page(tui.RenderHistory(branch, records))
	return nil
}
