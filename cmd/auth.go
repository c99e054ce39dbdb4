package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mkroman/soundcloud-grabber/internal/app"
	"github.com/mkroman/soundcloud-grabber/internal/config"
	"github.com/mkroman/soundcloud-grabber/internal/logger"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var authCmd = &cobra.Command{
	Use:   "auth {client-id}",
	Short: "Save the API client ID to the configuration file",
	Long: `Save the API client ID to the configuration file.

The client ID identifies the calling application and is attached to every
API request. After saving it you can search and download tracks:
  soundcloud-grabber auth 556c63d3be11be4bbb9d2c8a3a5bd47e
  soundcloud-grabber search --query "morning light"`,
	Args:             cobra.ExactArgs(1),
	PersistentPreRun: initConfigAllowMissing,
	Run: func(cmd *cobra.Command, args []string) {
		app.ExecuteAuthCommand(cmd.Context(), appConfig, args[0])
	},
}

// initConfigAllowMissing loads the configuration but tolerates a missing
// file: saving the credential is how the file gets created in the first place.
func initConfigAllowMissing(_ *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		appConfig = &config.Config{}
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(authCmd)
}
