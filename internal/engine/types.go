package engine

import (
	"fmt"
	"strings"
	"time"
)

// RepositoryState is a point-in-time view of the working copy
type RepositoryState struct {
	IsTracked        bool
	CurrentBranch    string
	Upstream         string // e.g. "origin/main", empty when the branch tracks nothing
	HasUpstream      bool
	IsClean          bool
	AheadCount       int
	BehindCount      int
	Detached         bool
	Unborn           bool
	RebaseInProgress bool
	ChangedPaths     []string
	ConflictedPaths  []string
}

// SnapshotRecord describes one commit as snap sees it
type SnapshotRecord struct {
	ID            string
	ShortID       string
	Message       string
	Subject       string
	CreatedByTool bool
	Timestamp     time.Time
	RelativeAge   string
}

// SaveOptions contains options for Save
type SaveOptions struct {
	NoPush bool
}

// SaveResult is the outcome of a save. Snapshot is nil when there was
// nothing to save; Push is nil when publishing was skipped.
type SaveResult struct {
	NothingToSave bool
	StagedCount   int
	Snapshot      *SnapshotRecord
	Push          PushOutcome
}

// SyncOptions contains options for Sync
type SyncOptions struct {
	NoPush bool
}

// UndoOutcome describes the commit removed by UndoLast
type UndoOutcome struct {
	Undone        SnapshotRecord
	Forced        bool
	WasPublished  bool
	RestoredPaths []string
}

// PushOutcome is the classified result of publishing a branch.
// It is one of Published, Rejected or NetworkFailure.
type PushOutcome interface {
	isPushOutcome()
	String() string
}

// Published means the remote accepted the branch
type Published struct {
	Remote string
	Branch string
}

// Rejected means the remote is reachable but refused the update
type Rejected struct {
	Reason string
}

// NetworkFailure means the remote could not be reached, refused
// authentication, or is not configured
type NetworkFailure struct {
	Reason string
}

func (Published) isPushOutcome()      {}
func (Rejected) isPushOutcome()       {}
func (NetworkFailure) isPushOutcome() {}

func (p Published) String() string {
	return fmt.Sprintf("published %s to %s", p.Branch, p.Remote)
}

func (r Rejected) String() string {
	return "push rejected: " + r.Reason
}

func (n NetworkFailure) String() string {
	return "remote unreachable: " + n.Reason
}

// SyncOutcome is the single result of a sync. Callers must type-switch on it:
// UpToDate, FastForwarded, Rebased, RebasedAndPushed, ConflictDetected,
// PushRejected or Unreachable.
type SyncOutcome interface {
	isSyncOutcome()
	String() string
}

// UpToDate means there was nothing to pull and nothing to push
type UpToDate struct{}

// FastForwarded means remote commits were pulled and there was nothing to push
type FastForwarded struct {
	Pulled int
}

// Rebased means local commits were replayed on the remote branch but not
// pushed because publishing was disabled
type Rebased struct {
	Pulled   int
	Unpushed int
}

// RebasedAndPushed means the pull succeeded and local commits were published
type RebasedAndPushed struct {
	Pulled int
	Pushed int
}

// ConflictDetected means the pull could not be replayed. The rebase has been
// aborted and nothing was pushed.
type ConflictDetected struct {
	Paths []string
}

// PushRejected means the pull succeeded but the remote refused the push
type PushRejected struct {
	Reason string
}

// Unreachable means the remote could not be reached during Stage ("fetch" or "push")
type Unreachable struct {
	Stage  string
	Reason string
}

func (UpToDate) isSyncOutcome()         {}
func (FastForwarded) isSyncOutcome()    {}
func (Rebased) isSyncOutcome()          {}
func (RebasedAndPushed) isSyncOutcome() {}
func (ConflictDetected) isSyncOutcome() {}
func (PushRejected) isSyncOutcome()     {}
func (Unreachable) isSyncOutcome()      {}

func (UpToDate) String() string { return "already up to date" }

func (f FastForwarded) String() string {
	return fmt.Sprintf("pulled %s", plural(f.Pulled, "commit"))
}

func (r Rebased) String() string {
	return fmt.Sprintf("pulled %s, %s not pushed", plural(r.Pulled, "commit"), plural(r.Unpushed, "local commit"))
}

func (r RebasedAndPushed) String() string {
	return fmt.Sprintf("pulled %s, pushed %s", plural(r.Pulled, "commit"), plural(r.Pushed, "commit"))
}

func (c ConflictDetected) String() string {
	return "conflict in " + strings.Join(c.Paths, ", ")
}

func (p PushRejected) String() string {
	return "push rejected: " + p.Reason
}

func (u Unreachable) String() string {
	return fmt.Sprintf("remote unreachable during %s: %s", u.Stage, u.Reason)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
