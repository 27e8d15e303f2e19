// Package style holds the lipgloss styles shared by snap's terminal output.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bold   = lipgloss.NewStyle().Bold(true)
)

// ColorRed colors text red
func ColorRed(text string) string { return red.Render(text) }

// ColorGreen colors text green
func ColorGreen(text string) string { return green.Render(text) }

// ColorYellow colors text yellow
func ColorYellow(text string) string { return yellow.Render(text) }

// ColorCyan colors text cyan
func ColorCyan(text string) string { return cyan.Render(text) }

// ColorDim renders secondary text
func ColorDim(text string) string { return dim.Render(text) }

// Bold renders text in bold
func Bold(text string) string { return bold.Render(text) }

// ColorCommitID colors an abbreviated commit id
func ColorCommitID(id string) string { return yellow.Render(id) }

// ColorBranchName colors a branch name
func ColorBranchName(name string) string { return cyan.Render(name) }

// ConfigureColors disables colors when NO_COLOR is set or noColor is true.
// Lipgloss already falls back to plain text when stdout is not a terminal.
func ConfigureColors(noColor bool) {
	if noColor || termenv.EnvNoColor() || os.Getenv("SNAP_NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
