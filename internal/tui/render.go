package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"snap.dev/snap/internal/engine"
)

const (
	snapshotGlyph = "●"
	manualGlyph   = "○"
)

// RenderHistory formats records newest first, one per line. Commits not
// created by snap are marked so undo's safety check is visible up front.
func RenderHistory(branch string, records []engine.SnapshotRecord) string {
	var b strings.Builder
	if len(records) == 0 {
		fmt.Fprintf(&b, "No commits on %s yet.\n", ColorBranchName(branch))
		return b.String()
	}

	subjectWidth := 0
	for _, r := range records {
		if w := lipgloss.Width(r.Subject); w > subjectWidth {
			subjectWidth = w
		}
	}

	fmt.Fprintf(&b, "Recent commits on %s\n\n", ColorBranchName(branch))
	for _, r := range records {
		glyph := ColorGreen(snapshotGlyph)
		note := ""
		if !r.CreatedByTool {
			glyph = ColorDim(manualGlyph)
			note = "  " + ColorDim("(not a snapshot)")
		}
		padding := strings.Repeat(" ", subjectWidth-lipgloss.Width(r.Subject))
		fmt.Fprintf(&b, "%s %s  %s%s  %s%s\n",
			glyph, ColorCommitID(r.ShortID), r.Subject, padding, ColorDim(r.RelativeAge), note)
	}
	return b.String()
}

// RenderStatus formats a repository state for the status command
func RenderStatus(state engine.RepositoryState) string {
	var b strings.Builder

	switch {
	case state.Detached:
		fmt.Fprintf(&b, "HEAD is %s\n", ColorYellow("detached"))
	case state.Unborn:
		fmt.Fprintf(&b, "On branch %s %s\n", ColorBranchName(state.CurrentBranch), ColorDim("(no commits yet)"))
	default:
		fmt.Fprintf(&b, "On branch %s\n", ColorBranchName(state.CurrentBranch))
	}

	if state.HasUpstream {
		fmt.Fprintf(&b, "Tracking %s: %s\n", state.Upstream, describeDivergence(state.AheadCount, state.BehindCount))
	} else if !state.Detached {
		fmt.Fprintf(&b, "%s\n", ColorDim("Not published yet"))
	}

	if state.RebaseInProgress {
		fmt.Fprintf(&b, "%s\n", ColorRed("A rebase is in progress"))
	}

	if len(state.ConflictedPaths) > 0 {
		fmt.Fprintf(&b, "\nConflicted:\n")
		for _, p := range state.ConflictedPaths {
			fmt.Fprintf(&b, "  %s\n", ColorRed(p))
		}
	}

	if state.IsClean {
		fmt.Fprintf(&b, "\nWorking tree clean\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\nChanged (%d):\n", len(state.ChangedPaths))
	for _, p := range state.ChangedPaths {
		fmt.Fprintf(&b, "  %s\n", ColorYellow(p))
	}
	return b.String()
}

func describeDivergence(ahead, behind int) string {
	switch {
	case ahead == 0 && behind == 0:
		return "up to date"
	case behind == 0:
		return fmt.Sprintf("%d ahead", ahead)
	case ahead == 0:
		return fmt.Sprintf("%d behind", behind)
	default:
		return fmt.Sprintf("%d ahead, %d behind", ahead, behind)
	}
}
