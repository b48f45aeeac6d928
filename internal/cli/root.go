package cli

import (
	"github.com/andy/invoicedesk/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "invoicedesk",
	Short: "A terminal editor for tax invoices",
	Long: `Invoicedesk keeps a set of draft invoices open side by side, lets you edit
them field by field and exports each one as a single-page A4 PDF.

By default, running invoicedesk without arguments launches the interactive TUI.
Use subcommands for scripted exports.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Read by main before the app is built; declared here so cobra accepts it
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to the log file")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(blankCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tuiCmd)
}
