package cli

import (
	"github.com/spf13/cobra"

	"snap.dev/snap/internal/actions"
	"snap.dev/snap/internal/cli/helpers"
	"snap.dev/snap/internal/runtime"
)

// newHistoryCmd creates the history command
func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"log"},
		Short:   "Show recent commits on the current branch",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.HistoryAction(ctx, actions.HistoryOptions{Limit: limit})
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "number", "n", 0, "Number of commits to show (default from history_limit)")

	return cmd
}
