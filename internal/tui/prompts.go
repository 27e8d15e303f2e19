package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	snaperrors "snap.dev/snap/internal/errors"
)

// ErrInteractiveDisabled is returned when a prompt cannot be shown, either
// because SNAP_TEST_NO_INTERACTIVE is set or because there is no terminal
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled; pass --yes to skip confirmation")

// checkInteractiveAllowed returns an error if prompts cannot be shown
func checkInteractiveAllowed() error {
	if os.Getenv("SNAP_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	if !IsTTY() {
		return ErrInteractiveDisabled
	}
	return nil
}

// PromptConfirm prompts the user for yes/no confirmation
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	confirmed := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, snaperrors.ErrInterrupted
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}
