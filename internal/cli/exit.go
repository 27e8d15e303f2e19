package cli

import (
	"errors"
	"io"

	snaperrors "snap.dev/snap/internal/errors"
	"snap.dev/snap/internal/tui"
)

// Report prints err to w and returns the process exit status for it
func Report(err error, w io.Writer) int {
	class := snaperrors.Classify(err)
	if err == nil || class == snaperrors.ExitSuccess {
		return class.ExitCode()
	}

	splog, _ := tui.NewSplogWithOptions(tui.SplogOptions{Writer: w})
	if class == snaperrors.ExitInterrupted {
		splog.Error("interrupted")
		if errors.Is(err, snaperrors.ErrRebaseNotAborted) {
			splog.Error("%s", snaperrors.ErrRebaseNotAborted)
		}
	} else {
		splog.Error("%s", err)
	}
	return class.ExitCode()
}
