package engine

import (
	"fmt"
	"slices"

	"snap.dev/snap/internal/git"
)

// SyncState is a step of the sync protocol
type SyncState int

const (
	StateIdle SyncState = iota
	StatePulling
	StatePullFailed
	StateClean
	StateConflictDetected
	StatePushing
	StateDone
	StatePushFailed
)

var syncStateNames = map[SyncState]string{
	StateIdle:             "idle",
	StatePulling:          "pulling",
	StatePullFailed:       "pull-failed",
	StateClean:            "clean",
	StateConflictDetected: "conflict-detected",
	StatePushing:          "pushing",
	StateDone:             "done",
	StatePushFailed:       "push-failed",
}

func (s SyncState) String() string {
	if name, ok := syncStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SyncState(%d)", int(s))
}

// syncTransitions lists every legal edge. Terminal states have none.
// Clean goes straight to Done when there is nothing to publish.
var syncTransitions = map[SyncState][]SyncState{
	StateIdle:    {StatePulling},
	StatePulling: {StateClean, StateConflictDetected, StatePullFailed},
	StateClean:   {StatePushing, StateDone},
	StatePushing: {StateDone, StatePushFailed},
}

// CanTransition reports whether the protocol allows moving from one state to another
func CanTransition(from, to SyncState) bool {
	return slices.Contains(syncTransitions[from], to)
}

// syncMachine tracks the state of a single sync
type syncMachine struct {
	state  SyncState
	logger git.Logger
}

func newSyncMachine(logger git.Logger) *syncMachine {
	return &syncMachine{state: StateIdle, logger: logger}
}

func (m *syncMachine) to(next SyncState) error {
	if !CanTransition(m.state, next) {
		return fmt.Errorf("illegal sync transition %s -> %s", m.state, next)
	}
	m.logger.Debug("sync: %s -> %s", m.state, next)
	m.state = next
	return nil
}
