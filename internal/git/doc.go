// Package git provides low-level Git operations.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Repo state queries (status, log, refs, ahead/behind counts)
//   - Local mutations (stage, commit, soft reset)
//   - Remote operations (fetch, push) classified into typed results
//   - Rebase control (rebase, abort, conflict listing)
//
// Raw git output never leaves this package; callers receive parsed values.
// This package should be the only place where direct git commands are executed.
package git
