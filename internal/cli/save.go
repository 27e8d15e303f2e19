package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"snap.dev/snap/internal/actions"
	"snap.dev/snap/internal/cli/helpers"
	"snap.dev/snap/internal/runtime"
	"snap.dev/snap/internal/utils"
)

// newSaveCmd creates the save command
func newSaveCmd() *cobra.Command {
	var (
		message string
		noPush  bool
	)

	cmd := &cobra.Command{
		Use:   "save [message]",
		Short: "Stage everything, commit a snapshot and publish it",
		Long: `Stage every change in the working tree and commit it as one snapshot
whose subject starts with "[Snap <timestamp>]". The branch is then pushed to
its remote unless --no-push is given or auto_push is disabled.

The message comes from --message, the arguments, or piped standard input.
A clean working tree is not an error: nothing is committed.
If the push fails the commit is kept locally; run 'snap sync' later.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				message = strings.Join(args, " ")
			}
			if message == "" {
				piped, err := utils.ReadFromStdin()
				if err != nil {
					return err
				}
				message = piped
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.SaveAction(ctx, actions.SaveOptions{
					Message: message,
					NoPush:  noPush,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Snapshot message")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "Commit locally without pushing")

	return cmd
}
