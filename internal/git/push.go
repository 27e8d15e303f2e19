package git

import (
	"context"
	"fmt"
	"strings"
)

// PushStatus classifies the result of a push
type PushStatus int

const (
	// PushDone indicates the remote accepted the push
	PushDone PushStatus = iota
	// PushRejected indicates the remote refused the update (diverged or hook rejection)
	PushRejected
	// PushUnreachable indicates the remote could not be reached or authenticated
	PushUnreachable
)

// PushResult is the classified outcome of a push
type PushResult struct {
	Status PushStatus
	Reason string
}

// rejectionMarkers identify a push refused by a reachable remote
var rejectionMarkers = []string{
	"[rejected]",
	"[remote rejected]",
	"non-fast-forward",
	"fetch first",
	"stale info",
	"updates were rejected",
}

// networkEnv keeps git from blocking on credential prompts
var networkEnv = []string{"GIT_TERMINAL_PROMPT=0", "GIT_SSH_COMMAND=ssh -o BatchMode=yes"}

// Push pushes branch to remote. setUpstream records the remote branch as the
// local branch's upstream. Only interruption and local failures are returned
// as errors; remote failures are classified into the result.
func (r *CommandRunner) Push(ctx context.Context, remote, branch string, setUpstream bool) (PushResult, error) {
	args := []string{"push", "--porcelain"}
	if setUpstream {
		args = append(args, "--set-upstream")
	}
	args = append(args, remote, "refs/heads/"+branch+":refs/heads/"+branch)

	output, err := r.RunWithEnv(ctx, networkEnv, args...)
	if err == nil {
		// older git exits 0 under --porcelain even when a ref is refused
		if strings.Contains(output, "\t[rejected]") || strings.Contains(output, "\t[remote rejected]") {
			return classifyPushFailure(output), nil
		}
		return PushResult{Status: PushDone}, nil
	}
	if IsInterrupted(err) {
		if ctx.Err() != nil {
			return PushResult{}, fmt.Errorf("push interrupted: %w", err)
		}
		return PushResult{Status: PushUnreachable, Reason: "timed out waiting for the remote"}, nil
	}
	return classifyPushFailure(Stdout(err) + "\n" + Stderr(err)), nil
}

func classifyPushFailure(output string) PushResult {
	lower := strings.ToLower(output)
	for _, marker := range rejectionMarkers {
		if strings.Contains(lower, marker) {
			return PushResult{Status: PushRejected, Reason: firstMeaningfulLine(output)}
		}
	}
	return PushResult{Status: PushUnreachable, Reason: firstMeaningfulLine(output)}
}

// firstMeaningfulLine picks the line that best explains a failed network command
func firstMeaningfulLine(output string) string {
	var fallback string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "Done" || strings.HasPrefix(line, "To ") || strings.HasPrefix(line, "hint:") {
			continue
		}
		if strings.HasPrefix(line, "fatal:") || strings.HasPrefix(line, "error:") || strings.HasPrefix(line, "!") {
			return line
		}
		if fallback == "" {
			fallback = line
		}
	}
	if fallback == "" {
		return "unknown error"
	}
	return fallback
}
