// Package errors provides sentinel errors and custom error types for snap.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates no git repository was found upward from the working directory
	ErrNotARepository = errors.New("not a git repository")

	// ErrBackendUnavailable indicates the git binary could not be found
	ErrBackendUnavailable = errors.New("git executable not found")

	// ErrEmptyChangeSet indicates there is nothing staged or nothing to stage
	ErrEmptyChangeSet = errors.New("nothing to save")

	// ErrConflictDetected indicates a pull could not be replayed without conflicts
	ErrConflictDetected = errors.New("conflict detected")

	// ErrNetworkFailure indicates the remote could not be reached or refused authentication
	ErrNetworkFailure = errors.New("remote unreachable")

	// ErrPushRejected indicates the remote refused the push, usually because it diverged
	ErrPushRejected = errors.New("push rejected")

	// ErrUnsafeUndo indicates an undo was refused because the last commit was not created by snap
	ErrUnsafeUndo = errors.New("refusing to undo a commit not created by snap")

	// ErrLockHeld indicates another invocation (or another git process) holds the repository lock
	ErrLockHeld = errors.New("another operation is already in progress")

	// ErrUncommittedChanges indicates the working tree has changes that block the operation
	ErrUncommittedChanges = errors.New("working tree has uncommitted changes")

	// ErrOperationInProgress indicates a rebase or merge is already in progress
	ErrOperationInProgress = errors.New("a rebase is already in progress")

	// ErrNothingToUndo indicates the current branch has no commits
	ErrNothingToUndo = errors.New("no commits to undo")

	// ErrEmptyMessage indicates a save was requested without a message
	ErrEmptyMessage = errors.New("a snapshot message is required")

	// ErrDetachedHead indicates HEAD does not point at a branch
	ErrDetachedHead = errors.New("HEAD is detached")

	// ErrUnbornBranch indicates the current branch has no commits yet
	ErrUnbornBranch = errors.New("current branch has no commits yet")

	// ErrCommitRefused indicates git refused a snapshot commit, usually a hook, after its changes were staged
	ErrCommitRefused = errors.New("commit refused")

	// ErrRebaseNotAborted indicates a rebase could not be aborted and is still in progress
	ErrRebaseNotAborted = errors.New("rebase is still in progress; run 'git rebase --abort' to restore the branch")

	// ErrInterrupted indicates the operation was interrupted by a signal
	ErrInterrupted = errors.New("interrupted")
)

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", strings.TrimSpace(e.Stderr))
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError. The exit code is taken
// from err when it is an *exec.ExitError, and is -1 otherwise.
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: code,
		Err:      err,
	}
}

// UnsafeUndoError is returned when undo would discard a commit snap did not create
type UnsafeUndoError struct {
	CommitID string
	Subject  string
}

func (e *UnsafeUndoError) Error() string {
	return fmt.Sprintf("refusing to undo %s (%q): it was not created by snap; pass --force to undo it anyway", shortID(e.CommitID), e.Subject)
}

// Is returns true if the target error is ErrUnsafeUndo
func (e *UnsafeUndoError) Is(target error) bool {
	return target == ErrUnsafeUndo
}

// NewUnsafeUndoError creates a new UnsafeUndoError
func NewUnsafeUndoError(commitID, subject string) *UnsafeUndoError {
	return &UnsafeUndoError{CommitID: commitID, Subject: subject}
}

// LockHeldError describes who holds the repository lock
type LockHeldError struct {
	Path string
	PID  int
}

func (e *LockHeldError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("another snap process (PID %d) is already running in this repository (lock: %s)", e.PID, e.Path)
	}
	return fmt.Sprintf("another git operation is already in progress (lock: %s); if no git process is running, remove the file", e.Path)
}

// Is returns true if the target error is ErrLockHeld
func (e *LockHeldError) Is(target error) bool {
	return target == ErrLockHeld
}

// NewLockHeldError creates a new LockHeldError
func NewLockHeldError(path string, pid int) *LockHeldError {
	return &LockHeldError{Path: path, PID: pid}
}

// CommitRefusedError reports a commit git refused after snap staged the changes.
// Nothing was committed and the changes stay staged.
type CommitRefusedError struct {
	Staged int
	Reason string
}

func (e *CommitRefusedError) Error() string {
	return fmt.Sprintf("changes staged (%d paths), commit refused: %s", e.Staged, e.Reason)
}

// Is returns true if the target error is ErrCommitRefused
func (e *CommitRefusedError) Is(target error) bool {
	return target == ErrCommitRefused
}

// NewCommitRefusedError creates a new CommitRefusedError
func NewCommitRefusedError(staged int, reason string) *CommitRefusedError {
	return &CommitRefusedError{Staged: staged, Reason: reason}
}

// OutcomeError carries a user-actionable outcome through the error channel so
// the CLI layer can pick an exit status. Kind is one of the outcome sentinels
// (ErrConflictDetected, ErrPushRejected, ErrNetworkFailure).
type OutcomeError struct {
	Kind    error
	Message string
}

func (e *OutcomeError) Error() string {
	return e.Message
}

// Is returns true if the target is the outcome's kind
func (e *OutcomeError) Is(target error) bool {
	return target == e.Kind
}

// NewOutcomeError creates a new OutcomeError
func NewOutcomeError(kind error, format string, args ...interface{}) *OutcomeError {
	return &OutcomeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ExitClass groups errors by how the CLI should exit
type ExitClass int

const (
	// ExitSuccess means the command succeeded or had nothing to do
	ExitSuccess ExitClass = iota
	// ExitUserActionable means the command stopped and the user has to act
	ExitUserActionable
	// ExitFatal means a pre-flight check failed or something unexpected broke
	ExitFatal
	// ExitInterrupted means the command was stopped by a signal
	ExitInterrupted
)

// Classify maps an error to its exit class
func Classify(err error) ExitClass {
	switch {
	case err == nil, errors.Is(err, ErrEmptyChangeSet):
		return ExitSuccess
	case errors.Is(err, ErrInterrupted), errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, ErrNotARepository), errors.Is(err, ErrBackendUnavailable):
		return ExitFatal
	case errors.Is(err, ErrConflictDetected),
		errors.Is(err, ErrNetworkFailure),
		errors.Is(err, ErrPushRejected),
		errors.Is(err, ErrCommitRefused),
		errors.Is(err, ErrUnsafeUndo),
		errors.Is(err, ErrLockHeld),
		errors.Is(err, ErrUncommittedChanges),
		errors.Is(err, ErrOperationInProgress),
		errors.Is(err, ErrNothingToUndo),
		errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrDetachedHead),
		errors.Is(err, ErrUnbornBranch):
		return ExitUserActionable
	default:
		return ExitFatal
	}
}

// ExitCode returns the process exit status for an exit class
func (c ExitClass) ExitCode() int {
	switch c {
	case ExitSuccess:
		return 0
	case ExitUserActionable:
		return 2
	case ExitInterrupted:
		return 130
	default:
		return 1
	}
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
