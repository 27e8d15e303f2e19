// Package lock serializes mutating snap commands on a repository and cleans
// up git lock files left behind when one of them is interrupted.
package lock
