package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mkroman/soundcloud-grabber/internal/app"
	"github.com/mkroman/soundcloud-grabber/internal/logger"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var getCmd = &cobra.Command{
	Use:   "get {track-id}",
	Short: "Fetch a single track record by identifier",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requireValidConfig(cmd)

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			logger.Fatalf(cmd.Context(), "Failed to parse track ID '%s': %v", args[0], err)
		}

		app.ExecuteGetCommand(cmd.Context(), appConfig, id)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(getCmd)
}
