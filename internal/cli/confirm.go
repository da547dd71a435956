package cli

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// formRunner is an interface that matches huh.Form's Run method.
type formRunner interface {
	Run() error
}

// createUnlinkConfirmForm builds the unlink confirmation form.
//
//nolint:gochecknoglobals // Test injection point - standard Go testing pattern
var createUnlinkConfirmForm = defaultCreateUnlinkConfirmForm

// defaultCreateUnlinkConfirmForm creates the actual Charm Huh form for unlink confirmation.
func defaultCreateUnlinkConfirmForm(deviceName string, confirm *bool) formRunner {
	title := "Unlink this device?"
	if deviceName != "" {
		title = "Unlink from " + deviceName + "?"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("The shared settings on this device are erased. This cannot be undone.").
				Affirmative("Yes, unlink").
				Negative("No, cancel").
				Value(confirm),
		),
	)
}

// terminalCheck is a variable for the terminal check function, allowing tests to override it.
//
//nolint:gochecknoglobals // Required for test injection of terminal detection
var terminalCheck = isTerminal

// isTerminal returns true if stdin is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
