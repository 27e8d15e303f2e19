package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	snaperrors "snap.dev/snap/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// interruptGrace is how long an interrupted git child gets to clean up its
// own lock files before it is killed.
const interruptGrace = 3 * time.Second

// CommandObserver is notified around every git subprocess. The lock guard
// uses it to attribute lock artifacts to this invocation.
type CommandObserver interface {
	BeforeCommand(args []string)
	AfterCommand(args []string, interrupted bool)
}

// Logger receives debug output about executed commands
type Logger interface {
	Debug(format string, args ...interface{})
}

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
	timeout    time.Duration
	env        []string
	observer   CommandObserver
	logger     Logger
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{
		workingDir: workingDir,
		timeout:    DefaultCommandTimeout,
	}
}

// SetTimeout sets the per-command timeout applied when the context has no deadline
func (r *CommandRunner) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// SetObserver installs the observer notified around each subprocess
func (r *CommandRunner) SetObserver(o CommandObserver) {
	r.observer = o
}

// SetLogger installs a debug logger
func (r *CommandRunner) SetLogger(l Logger) {
	r.logger = l
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "", nil, true, args...)
}

// RunRaw executes a git command and returns the output without trimming
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "", nil, false, args...)
}

// RunLines executes a git command and returns output as lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// RunPaths executes a git command that lists paths NUL-separated (-z) and
// returns them verbatim, without git's C-style quoting
func (r *CommandRunner) RunPaths(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.RunRaw(ctx, append([]string{"-c", "core.quotePath=false"}, args...)...)
	if err != nil {
		return nil, err
	}
	return splitPaths(output), nil
}

// RunWithInput executes a git command feeding input on stdin
func (r *CommandRunner) RunWithInput(ctx context.Context, input string, args ...string) (string, error) {
	return r.runInternal(ctx, input, nil, true, args...)
}

// RunWithEnv executes a git command with extra environment variables
func (r *CommandRunner) RunWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	return r.runInternal(ctx, "", env, true, args...)
}

// runInternal is the internal implementation that handles directory, input and environment
func (r *CommandRunner) runInternal(ctx context.Context, input string, env []string, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	// Give git a chance to remove its own lock files before it is killed.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGINT)
	}
	cmd.WaitDelay = interruptGrace

	cmdEnv := append(os.Environ(), "LC_ALL=C", "GIT_EDITOR=true")
	cmdEnv = append(cmdEnv, r.env...)
	cmd.Env = append(cmdEnv, env...)

	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if r.observer != nil {
		r.observer.BeforeCommand(args)
	}
	start := time.Now()
	err := cmd.Run()
	interrupted := ctx.Err() != nil
	if r.observer != nil {
		r.observer.AfterCommand(args, interrupted)
	}
	if r.logger != nil {
		r.logger.Debug("git %s (%s)", strings.Join(args, " "), time.Since(start).Round(time.Millisecond))
	}

	if err != nil {
		if interrupted {
			return "", snaperrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", snaperrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}

// ExitCode returns the exit status of a failed git command, or -1 when err
// did not come from a git process exit.
func ExitCode(err error) int {
	var gitErr *snaperrors.GitCommandError
	if errors.As(err, &gitErr) {
		return gitErr.ExitCode
	}
	return -1
}

// Stdout returns the captured stdout of a failed git command
func Stdout(err error) string {
	var gitErr *snaperrors.GitCommandError
	if errors.As(err, &gitErr) {
		return gitErr.Stdout
	}
	return ""
}

// Stderr returns the captured stderr of a failed git command
func Stderr(err error) string {
	var gitErr *snaperrors.GitCommandError
	if errors.As(err, &gitErr) {
		return gitErr.Stderr
	}
	return ""
}

// FailureReason returns the output line that best explains a failed git command
func FailureReason(err error) string {
	return firstMeaningfulLine(Stderr(err) + "\n" + Stdout(err))
}

// IsInterrupted reports whether err came from a cancelled or timed out command
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

func splitPaths(s string) []string {
	paths := []string{}
	for _, path := range strings.Split(s, "\x00") {
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// Runner defines the git operations used by the engine.
// This allows the engine to be used with both real git and scripted implementations.
type Runner interface {
	// Repository state
	GitDir(ctx context.Context) (string, error)
	HasCommits(ctx context.Context) (bool, error)
	HeadSHA(ctx context.Context) (string, error)
	Status(ctx context.Context) (*Status, error)
	Log(ctx context.Context, n int) ([]LogEntry, error)
	CountCommits(ctx context.Context, revision string) (int, error)
	RefExists(ctx context.Context, ref string) (bool, error)
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)
	ParentCount(ctx context.Context, revision string) (int, error)

	// Local mutations
	StageAll(ctx context.Context) error
	StagedFiles(ctx context.Context) ([]string, error)
	Commit(ctx context.Context, message string) (string, error)
	SoftReset(ctx context.Context, revision string) error
	UnbornReset(ctx context.Context, branch, expectedSHA string) error

	// Remote operations
	ResolveRemote(ctx context.Context, branch, preferred string) (string, error)
	Push(ctx context.Context, remote, branch string, setUpstream bool) (PushResult, error)
	FetchBranch(ctx context.Context, remote, branch string) (FetchResult, error)
	AheadBehind(ctx context.Context, local, upstream string) (int, int, error)
	SetUpstream(ctx context.Context, remote, branch string) error

	// Rebase
	Rebase(ctx context.Context, upstream string) (RebaseResult, error)
	IsRebaseInProgress(ctx context.Context) bool
	RebaseAbort(ctx context.Context) error
	UnmergedFiles(ctx context.Context) ([]string, error)
}

var _ Runner = (*CommandRunner)(nil)
