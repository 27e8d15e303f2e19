package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// logFormat emits one record per commit: sha, short sha, commit time,
// relative age, raw body.
var logFormat = "--format=" + strings.Join([]string{"%H", "%h", "%ct", "%cr", "%B"}, "%x1f") + "%x1e"

// LogEntry is one commit read from `git log`
type LogEntry struct {
	SHA         string
	ShortSHA    string
	CommittedAt time.Time
	RelativeAge string
	Message     string
}

// Subject returns the first line of the commit message
func (e LogEntry) Subject() string {
	subject, _, _ := strings.Cut(e.Message, "\n")
	return subject
}

// Log returns up to n commits reachable from HEAD, newest first. An unborn
// branch yields no entries.
func (r *CommandRunner) Log(ctx context.Context, n int) ([]LogEntry, error) {
	if n <= 0 {
		return []LogEntry{}, nil
	}
	hasCommits, err := r.HasCommits(ctx)
	if err != nil {
		return nil, err
	}
	if !hasCommits {
		return []LogEntry{}, nil
	}
	output, err := r.RunRaw(ctx, "log", "-n", strconv.Itoa(n), logFormat, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return ParseLog(output)
}

// ParseLog parses output produced with logFormat
func ParseLog(output string) ([]LogEntry, error) {
	entries := []LogEntry{}
	for _, record := range strings.Split(output, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}
		fields := strings.SplitN(record, fieldSep, 5)
		if len(fields) != 5 {
			return nil, fmt.Errorf("malformed log record: %q", record)
		}
		unix, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed commit time %q: %w", fields[2], err)
		}
		entries = append(entries, LogEntry{
			SHA:         fields[0],
			ShortSHA:    fields[1],
			CommittedAt: time.Unix(unix, 0),
			RelativeAge: fields[3],
			Message:     strings.TrimRight(fields[4], "\n"),
		})
	}
	return entries, nil
}

// CountCommits returns the number of commits reachable from revision
func (r *CommandRunner) CountCommits(ctx context.Context, revision string) (int, error) {
	output, err := r.Run(ctx, "rev-list", "--count", revision)
	if err != nil {
		return 0, fmt.Errorf("failed to count commits in %s: %w", revision, err)
	}
	count, err := strconv.Atoi(output)
	if err != nil {
		return 0, fmt.Errorf("unexpected commit count %q: %w", output, err)
	}
	return count, nil
}
