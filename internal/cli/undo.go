package cli

import (
	"github.com/spf13/cobra"

	"snap.dev/snap/internal/actions"
	"snap.dev/snap/internal/cli/helpers"
	"snap.dev/snap/internal/runtime"
)

// newUndoCmd creates the undo command
func newUndoCmd() *cobra.Command {
	var (
		force bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Remove the last snapshot and keep its changes staged",
		Long: `Remove the last commit from the current branch. Its changes stay in the
working tree, staged and uncommitted, with file contents unchanged.

Only commits created by 'snap save' are undone unless --force is given.
Undo is not idempotent: running it twice removes two commits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.UndoAction(ctx, actions.UndoOptions{
					Force: force,
					Yes:   yes,
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Undo the last commit even if snap did not create it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}
