package git

import (
	"context"
	"fmt"
)

// Commit creates a single commit from the index with the given message and
// returns its SHA. The message is passed on stdin so it is kept verbatim.
func (r *CommandRunner) Commit(ctx context.Context, message string) (string, error) {
	_, err := r.RunWithInput(ctx, message, "commit", "--quiet", "--cleanup=whitespace", "--file=-")
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return r.HeadSHA(ctx)
}
