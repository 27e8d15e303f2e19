package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If SNAP_LOG_FILE is set, uses that path; otherwise configured is used
// when non-empty, falling back to ~/.snap/logs/snap.log
func GetLogFilePath(configured string) string {
	if customPath := os.Getenv("SNAP_LOG_FILE"); customPath != "" {
		return customPath
	}
	if configured != "" {
		return configured
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "snap.log"
	}

	return filepath.Join(homeDir, ".snap", "logs", "snap.log")
}
