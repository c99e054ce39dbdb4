package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mkroman/soundcloud-grabber/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	downloadCmd = &cobra.Command{
		Use:   "download {url-or-id}",
		Short: "Download a track's original asset to a file",
		Long: `Download a track's original asset into the output directory.

The target may be a public track page URL or a bare track identifier:
  soundcloud-grabber download https://soundcloud.com/artist/track
  soundcloud-grabber download 13158665 --output ~/Music`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			requireValidConfig(cmd)

			app.ExecuteDownloadCommand(cmd.Context(), appConfig, args[0])
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	streamCmd = &cobra.Command{
		Use:   "stream {url-or-id}",
		Short: "Stream a track's transcoded audio to standard output",
		Long: `Stream a track's transcoded audio to standard output.

The output can be piped into a player:
  soundcloud-grabber stream 13158665 | mpv -`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			requireValidConfig(cmd)

			app.ExecuteStreamCommand(cmd.Context(), appConfig, args[0])
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(streamCmd)
}
