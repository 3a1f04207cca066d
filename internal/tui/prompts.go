package tui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via STACKER_NON_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (STACKER_NON_INTERACTIVE is set)")

// CheckInteractiveAllowed returns an error if prompting is not possible
func CheckInteractiveAllowed() error {
	if os.Getenv("STACKER_NON_INTERACTIVE") != "" || !IsTTY() {
		return ErrInteractiveDisabled
	}
	return nil
}

// PromptBranchName asks for a branch name until validate accepts it.
func PromptBranchName(message string, validate func(string) error) (string, error) {
	if err := CheckInteractiveAllowed(); err != nil {
		return "", err
	}

	var branchName string
	prompt := &survey.Input{
		Message: message,
	}
	validator := func(ans any) error {
		name, _ := ans.(string)
		if name == "" {
			return fmt.Errorf("branch name cannot be empty")
		}
		return validate(name)
	}
	if err := survey.AskOne(prompt, &branchName, survey.WithValidator(validator)); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return branchName, nil
}
