package cli

import (
	"github.com/spf13/cobra"

	"snap.dev/snap/internal/actions"
	"snap.dev/snap/internal/cli/helpers"
	"snap.dev/snap/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the branch, its remote and pending changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.StatusAction)
		},
	}
}
