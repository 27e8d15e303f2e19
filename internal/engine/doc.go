// Package engine implements snap's repository workflows on top of the git
// subprocess layer.
//
// It is the core of snap, responsible for:
//   - Probing repository state (branch, upstream, pending changes)
//   - Staging and committing snapshots with a recognizable marker
//   - Publishing the current branch and classifying remote failures
//   - Syncing through a rebase pull guarded by an explicit state machine
//   - Undoing the last snapshot without touching file contents
//
// The engine holds no state between calls. Every query re-reads the
// repository through a git.Runner.
package engine
