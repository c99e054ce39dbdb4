package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkroman/soundcloud-grabber/internal/version"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// The version command needs no configuration at all.
	PersistentPreRun: func(_ *cobra.Command, _ []string) {},
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Fprintln(os.Stdout, version.Full())
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(versionCmd)
}
