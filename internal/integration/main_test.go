// Package integration runs the snap binary end to end against real repositories.
package integration

import (
	"testing"

	"snap.dev/snap/internal/testhelper"
)

// getSnapBinary returns the path to the pre-built snap binary.
func getSnapBinary(t *testing.T) string {
	t.Helper()
	binaryPath := testhelper.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelper.GetBinaryError(); err != nil {
			t.Fatalf("failed to build snap binary: %v", err)
		}
		t.Fatal("snap binary not built")
	}
	return binaryPath
}
