// Package tui provides the terminal user interface for snap.
//
// It handles:
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - Confirmation prompts (using survey)
//   - A spinner around network operations (using bubbletea)
//   - Rendering of snapshot history and repository status
package tui
