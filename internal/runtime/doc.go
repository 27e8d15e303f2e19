// Package runtime provides the execution context for snap commands.
//
// It runs the pre-flight checks (git available, inside a working tree),
// loads configuration and wires the engine, logger and repository lock
// that actions share.
package runtime
