package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// FetchStatus classifies the result of fetching a branch
type FetchStatus int

const (
	// FetchDone indicates the remote branch was fetched
	FetchDone FetchStatus = iota
	// FetchNoRemoteBranch indicates the remote is reachable but has no such branch
	FetchNoRemoteBranch
	// FetchUnreachable indicates the remote could not be reached or authenticated
	FetchUnreachable
)

// FetchResult is the classified outcome of a fetch
type FetchResult struct {
	Status FetchStatus
	Reason string
}

// RemoteTrackingRef returns the remote-tracking ref for remote/branch
func RemoteTrackingRef(remote, branch string) string {
	return "refs/remotes/" + remote + "/" + branch
}

// FetchBranch fetches branch from remote into its remote-tracking ref
func (r *CommandRunner) FetchBranch(ctx context.Context, remote, branch string) (FetchResult, error) {
	refspec := "+refs/heads/" + branch + ":" + RemoteTrackingRef(remote, branch)
	_, err := r.RunWithEnv(ctx, networkEnv, "fetch", "--quiet", "--no-tags", remote, refspec)
	if err == nil {
		return FetchResult{Status: FetchDone}, nil
	}
	if IsInterrupted(err) {
		if ctx.Err() != nil {
			return FetchResult{}, fmt.Errorf("fetch interrupted: %w", err)
		}
		return FetchResult{Status: FetchUnreachable, Reason: "timed out waiting for the remote"}, nil
	}
	stderr := Stderr(err)
	if strings.Contains(strings.ToLower(stderr), "couldn't find remote ref") {
		return FetchResult{Status: FetchNoRemoteBranch, Reason: firstMeaningfulLine(stderr)}, nil
	}
	return FetchResult{Status: FetchUnreachable, Reason: firstMeaningfulLine(stderr)}, nil
}

// AheadBehind counts commits on local not on upstream (ahead) and on
// upstream not on local (behind)
func (r *CommandRunner) AheadBehind(ctx context.Context, local, upstream string) (int, int, error) {
	output, err := r.Run(ctx, "rev-list", "--left-right", "--count", local+"..."+upstream)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compare %s with %s: %w", local, upstream, err)
	}
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %q", output)
	}
	ahead, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected ahead count %q: %w", fields[0], err)
	}
	behind, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected behind count %q: %w", fields[1], err)
	}
	return ahead, behind, nil
}

// SetUpstream records remote/branch as the upstream of branch
func (r *CommandRunner) SetUpstream(ctx context.Context, remote, branch string) error {
	_, err := r.Run(ctx, "branch", "--set-upstream-to="+remote+"/"+branch, branch)
	if err != nil {
		return fmt.Errorf("failed to set upstream of %s: %w", branch, err)
	}
	return nil
}
