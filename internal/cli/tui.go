package cli

import (
	"errors"
	"os"

	"github.com/andy/invoicedesk/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("the TUI needs an interactive terminal; use 'invoicedesk export' for scripted runs")

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal UI",
	Long:  `Launch the interactive terminal user interface for invoicedesk.`,
	RunE:  launchTUI,
}

func launchTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	return tui.Run(appInstance)
}
