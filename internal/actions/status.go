package actions

import (
	"snap.dev/snap/internal/runtime"
	"snap.dev/snap/internal/tui"
)

// StatusAction prints the branch, its upstream and pending changes
func StatusAction(ctx *runtime.Context) error {
	state, err := ctx.Engine.Probe(ctx)
	if err != nil {
		return err
	}
	ctx.Splog.Page(tui.RenderStatus(state))
	return nil
}
