package engine

import (
	"context"
	"time"
)

// Prober provides read-only access to repository state and history
type Prober interface {
	Probe(ctx context.Context) (RepositoryState, error)
	LastSnapshot(ctx context.Context) (*SnapshotRecord, error)
	ListRecentSnapshots(ctx context.Context, n int) ([]SnapshotRecord, error)
}

// Saver stages and commits the working tree
type Saver interface {
	StageAll(ctx context.Context) (int, error)
	Commit(ctx context.Context, message string, timestamp time.Time) (SnapshotRecord, error)
	Save(ctx context.Context, message string, opts SaveOptions) (SaveResult, error)
}

// Publisher pushes a branch to its remote
type Publisher interface {
	Push(ctx context.Context, branch string) (PushOutcome, error)
}

// Syncer pulls remote changes and publishes local ones
type Syncer interface {
	Sync(ctx context.Context, opts SyncOptions) (SyncOutcome, error)
}

// Undoer rewinds the last snapshot
type Undoer interface {
	UndoLast(ctx context.Context, force bool) (UndoOutcome, error)
}

// Engine is the full set of snap workflows
type Engine interface {
	Prober
	Saver
	Publisher
	Syncer
	Undoer
}
