package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Status is the parsed form of `git status --porcelain=v2 --branch`
type Status struct {
	Branch     string
	Upstream   string
	Detached   bool
	Unborn     bool
	Ahead      int
	Behind     int
	Staged     []string
	Unstaged   []string
	Untracked  []string
	Conflicted []string
}

// IsClean reports whether the working tree and index match HEAD
func (s *Status) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0 && len(s.Untracked) == 0 && len(s.Conflicted) == 0
}

// ChangedPaths returns every path with a pending change, without duplicates
func (s *Status) ChangedPaths() []string {
	seen := make(map[string]bool)
	var paths []string
	for _, group := range [][]string{s.Conflicted, s.Staged, s.Unstaged, s.Untracked} {
		for _, p := range group {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths
}

// Status queries the working tree state
func (r *CommandRunner) Status(ctx context.Context) (*Status, error) {
	output, err := r.RunRaw(ctx, "status", "--porcelain=v2", "--branch")
	if err != nil {
		return nil, fmt.Errorf("failed to read status: %w", err)
	}
	return ParseStatus(output)
}

// ParseStatus parses porcelain v2 status output
func ParseStatus(output string) (*Status, error) {
	status := &Status{}
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		switch line[0] {
		case '#':
			if err := parseBranchHeader(status, line); err != nil {
				return nil, err
			}
		case '1':
			fields := strings.SplitN(line, " ", 9)
			if len(fields) < 9 {
				return nil, fmt.Errorf("malformed status entry: %q", line)
			}
			addTracked(status, fields[1], fields[8])
		case '2':
			fields := strings.SplitN(line, " ", 10)
			if len(fields) < 10 {
				return nil, fmt.Errorf("malformed rename entry: %q", line)
			}
			path, _, _ := strings.Cut(fields[9], "\t")
			addTracked(status, fields[1], path)
		case 'u':
			fields := strings.SplitN(line, " ", 11)
			if len(fields) < 11 {
				return nil, fmt.Errorf("malformed unmerged entry: %q", line)
			}
			status.Conflicted = append(status.Conflicted, unquote(fields[10]))
		case '?':
			status.Untracked = append(status.Untracked, unquote(strings.TrimPrefix(line, "? ")))
		}
	}
	return status, nil
}

func parseBranchHeader(status *Status, line string) error {
	key, value, _ := strings.Cut(strings.TrimPrefix(line, "# "), " ")
	switch key {
	case "branch.oid":
		status.Unborn = value == "(initial)"
	case "branch.head":
		if value == "(detached)" {
			status.Detached = true
		} else {
			status.Branch = value
		}
	case "branch.upstream":
		status.Upstream = value
	case "branch.ab":
		var ahead, behind string
		if _, err := fmt.Sscanf(value, "%s %s", &ahead, &behind); err != nil {
			return fmt.Errorf("malformed ahead/behind header: %q", line)
		}
		a, err := strconv.Atoi(strings.TrimPrefix(ahead, "+"))
		if err != nil {
			return fmt.Errorf("malformed ahead count: %q", line)
		}
		b, err := strconv.Atoi(strings.TrimPrefix(behind, "-"))
		if err != nil {
			return fmt.Errorf("malformed behind count: %q", line)
		}
		status.Ahead, status.Behind = a, b
	}
	return nil
}

func addTracked(status *Status, xy, path string) {
	path = unquote(path)
	if len(xy) != 2 {
		return
	}
	if xy[0] != '.' {
		status.Staged = append(status.Staged, path)
	}
	if xy[1] != '.' {
		status.Unstaged = append(status.Unstaged, path)
	}
}

// unquote strips git's C-style quoting from a path, if present
func unquote(path string) string {
	if len(path) >= 2 && path[0] == '"' && path[len(path)-1] == '"' {
		if s, err := strconv.Unquote(path); err == nil {
			return s
		}
	}
	return path
}
