package cli

import (
	"github.com/spf13/cobra"

	"snap.dev/snap/internal/actions"
	"snap.dev/snap/internal/cli/helpers"
	"snap.dev/snap/internal/runtime"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	var noPush bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull remote changes with a rebase and publish local commits",
		Long: `Fetch the current branch from its remote and replay local commits on top
of it, keeping history linear. Local commits are then pushed.

The working tree must be clean. If the pull conflicts, the rebase is aborted,
the branch is left exactly as it was and nothing is pushed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.SyncAction(ctx, actions.SyncOptions{NoPush: noPush})
			})
		},
	}

	cmd.Flags().BoolVar(&noPush, "no-push", false, "Pull only, do not publish local commits")

	return cmd
}
