package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"snap.dev/snap/internal/tui/style"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "snap",
		Short: "snap saves, syncs and undoes your work in one command",
		Long: `snap is a command line tool that collapses git's stage, commit, push and pull
steps into single guarded commands.

  snap save "message"   stage everything, commit one snapshot and publish it
  snap sync             pull remote changes with a rebase and publish yours
  snap undo             remove the last snapshot, keeping its changes staged`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			style.ConfigureColors(noColor)
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Show git commands and write a debug log")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newStatusCmd())

	return rootCmd
}
