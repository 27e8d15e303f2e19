package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"snap.dev/snap/internal/git"
)

const (
	// TimestampLayout is the layout of the timestamp in a snapshot subject
	TimestampLayout = "2006-01-02 15:04:05"
	// TrailerKey marks a commit as created by snap
	TrailerKey = "Snap-Id"
)

var (
	subjectPattern = regexp.MustCompile(`^\[Snap (\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\] `)
	trailerPattern = regexp.MustCompile(`^` + TrailerKey + `: (\S+)$`)
)

// FormatMessage builds a snapshot commit message: the prefixed subject, the
// rest of message, and a trailer carrying id.
func FormatMessage(timestamp time.Time, message, id string) string {
	return fmt.Sprintf("[Snap %s] %s\n\n%s: %s", timestamp.Format(TimestampLayout), strings.TrimSpace(message), TrailerKey, id)
}

// IsSnapshotMessage reports whether message was produced by FormatMessage.
// Both the subject prefix and a well-formed trailer in the last paragraph
// must be present.
func IsSnapshotMessage(message string) bool {
	message = strings.TrimSpace(message)
	match := subjectPattern.FindStringSubmatch(message)
	if match == nil {
		return false
	}
	if _, err := time.ParseInLocation(TimestampLayout, match[1], time.Local); err != nil {
		return false
	}

	paragraphs := strings.Split(message, "\n\n")
	if len(paragraphs) < 2 {
		return false
	}
	for _, line := range strings.Split(paragraphs[len(paragraphs)-1], "\n") {
		m := trailerPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		if _, err := uuid.Parse(m[1]); err == nil {
			return true
		}
	}
	return false
}

func snapshotFromLog(entry git.LogEntry) SnapshotRecord {
	return SnapshotRecord{
		ID:            entry.SHA,
		ShortID:       entry.ShortSHA,
		Message:       entry.Message,
		Subject:       entry.Subject(),
		CreatedByTool: IsSnapshotMessage(entry.Message),
		Timestamp:     entry.CommittedAt,
		RelativeAge:   entry.RelativeAge,
	}
}
