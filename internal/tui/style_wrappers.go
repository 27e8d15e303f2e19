package tui

import "snap.dev/snap/internal/tui/style"

// ColorRed colors text red
func ColorRed(text string) string { return style.ColorRed(text) }

// ColorGreen colors text green
func ColorGreen(text string) string { return style.ColorGreen(text) }

// ColorYellow colors text yellow
func ColorYellow(text string) string { return style.ColorYellow(text) }

// ColorCyan colors text cyan
func ColorCyan(text string) string { return style.ColorCyan(text) }

// ColorDim renders secondary text
func ColorDim(text string) string { return style.ColorDim(text) }

// ColorCommitID colors an abbreviated commit id
func ColorCommitID(id string) string { return style.ColorCommitID(id) }

// ColorBranchName colors a branch name
func ColorBranchName(name string) string { return style.ColorBranchName(name) }
