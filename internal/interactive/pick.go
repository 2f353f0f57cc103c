// Package interactive provides prompt-based file selection.
package interactive

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// askOne is swappable for testing.
var askOne = survey.AskOne

// PickFile shows a select prompt over the repository's changed files and
// returns the chosen path.
func PickFile(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("no changed files to pick from")
	}

	var selected string
	prompt := &survey.Select{
		Message: "Pick a file to inspect:",
		Options: paths,
	}
	if err := askOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}
