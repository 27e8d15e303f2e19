package engine_test

import (
	"context"
	"fmt"
	"strings"

	"snap.dev/snap/internal/git"
)

// fakeRunner is a scripted git.Runner that records every call
type fakeRunner struct {
	status     *git.Status
	log        []git.LogEntry
	remote     string
	fetch      git.FetchResult
	behind     int
	ahead      int
	rebase     git.RebaseResult
	rebaseErr  error
	unmerged   []string
	abortErr   error
	push       git.PushResult
	inProgress bool

	calls      []string
	abortCtxOK []bool
}

var _ git.Runner = (*fakeRunner)(nil)

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		status: &git.Status{Branch: "main", Upstream: "origin/main"},
		remote: "origin",
		fetch:  git.FetchResult{Status: git.FetchDone},
		push:   git.PushResult{Status: git.PushDone},
	}
}

func (f *fakeRunner) record(name string, args ...interface{}) {
	if len(args) == 0 {
		f.calls = append(f.calls, name)
		return
	}
	f.calls = append(f.calls, fmt.Sprintf("%s %v", name, args))
}

func (f *fakeRunner) called(name string) bool {
	for _, c := range f.calls {
		if c == name || strings.HasPrefix(c, name+" ") {
			return true
		}
	}
	return false
}

func (f *fakeRunner) GitDir(context.Context) (string, error) { return "/repo/.git", nil }

func (f *fakeRunner) HasCommits(context.Context) (bool, error) { return len(f.log) > 0, nil }

func (f *fakeRunner) HeadSHA(context.Context) (string, error) {
	if len(f.log) == 0 {
		return "", fmt.Errorf("no HEAD")
	}
	return f.log[0].SHA, nil
}

func (f *fakeRunner) Status(context.Context) (*git.Status, error) {
	f.record("status")
	s := *f.status
	return &s, nil
}

func (f *fakeRunner) Log(_ context.Context, n int) ([]git.LogEntry, error) {
	if n > len(f.log) {
		n = len(f.log)
	}
	return f.log[:n], nil
}

func (f *fakeRunner) CountCommits(context.Context, string) (int, error) { return len(f.log), nil }

func (f *fakeRunner) RefExists(context.Context, string) (bool, error) { return true, nil }

func (f *fakeRunner) IsAncestor(context.Context, string, string) (bool, error) { return false, nil }

func (f *fakeRunner) ParentCount(context.Context, string) (int, error) { return 1, nil }

func (f *fakeRunner) StageAll(context.Context) error {
	f.record("add")
	return nil
}

func (f *fakeRunner) StagedFiles(context.Context) ([]string, error) { return nil, nil }

func (f *fakeRunner) Commit(_ context.Context, message string) (string, error) {
	f.record("commit")
	return "", fmt.Errorf("unexpected commit %q", message)
}

func (f *fakeRunner) SoftReset(_ context.Context, revision string) error {
	f.record("reset", revision)
	return nil
}

func (f *fakeRunner) UnbornReset(_ context.Context, branch, _ string) error {
	f.record("update-ref", branch)
	return nil
}

func (f *fakeRunner) ResolveRemote(context.Context, string, string) (string, error) {
	return f.remote, nil
}

func (f *fakeRunner) Push(ctx context.Context, remote, branch string, setUpstream bool) (git.PushResult, error) {
	f.record("push", remote, branch, setUpstream)
	if err := ctx.Err(); err != nil {
		return git.PushResult{}, err
	}
	return f.push, nil
}

func (f *fakeRunner) FetchBranch(_ context.Context, remote, branch string) (git.FetchResult, error) {
	f.record("fetch", remote, branch)
	return f.fetch, nil
}

func (f *fakeRunner) AheadBehind(context.Context, string, string) (int, int, error) {
	// after a successful rebase the branch is no longer behind
	if f.called("rebase") && f.rebase == git.RebaseDone && f.rebaseErr == nil {
		return f.ahead, 0, nil
	}
	return f.ahead, f.behind, nil
}

func (f *fakeRunner) SetUpstream(_ context.Context, remote, branch string) error {
	f.record("set-upstream", remote, branch)
	return nil
}

func (f *fakeRunner) Rebase(_ context.Context, upstream string) (git.RebaseResult, error) {
	f.record("rebase", upstream)
	if f.rebaseErr != nil || f.rebase == git.RebaseConflict {
		f.inProgress = true
	}
	return f.rebase, f.rebaseErr
}

func (f *fakeRunner) IsRebaseInProgress(context.Context) bool { return f.inProgress }

func (f *fakeRunner) RebaseAbort(ctx context.Context) error {
	f.record("rebase-abort")
	f.abortCtxOK = append(f.abortCtxOK, ctx.Err() == nil)
	if f.abortErr != nil {
		return f.abortErr
	}
	f.inProgress = false
	return nil
}

func (f *fakeRunner) UnmergedFiles(context.Context) ([]string, error) { return f.unmerged, nil }
