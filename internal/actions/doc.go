// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a snap command (save, sync, undo, history,
// status) and turns engine outcomes into messages that state what happened
// to the repository.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Engine, Splog and the repository lock
//   - Mutating actions run under lock.WithLock
//   - Outcomes the user has to act on are returned as OutcomeError so the CLI can pick an exit status
package actions
