package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mkroman/soundcloud-grabber/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var resolveCmd = &cobra.Command{
	Use:   "resolve {url}",
	Short: "Resolve a public page URL to its canonical API URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requireValidConfig(cmd)

		app.ExecuteResolveCommand(cmd.Context(), appConfig, args[0])
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(resolveCmd)
}
