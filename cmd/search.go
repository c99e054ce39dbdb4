package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mkroman/soundcloud-grabber/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for tracks",
	Long: `Search for tracks by any combination of criteria.

Examples:
  soundcloud-grabber search --query "morning light"
  soundcloud-grabber search --tags house,deep --filter public
  soundcloud-grabber search --ids 13158665,13158666
  soundcloud-grabber search --genres Electronic --types original,remix`,
	Run: func(cmd *cobra.Command, _ []string) {
		requireValidConfig(cmd)

		flags := cmd.Flags()
		opts := &app.SearchOptions{}

		opts.Query, _ = flags.GetString("query")
		opts.Tags, _ = flags.GetStringSlice("tags")
		opts.Filter, _ = flags.GetString("filter")
		opts.License, _ = flags.GetString("license")
		opts.IDs, _ = flags.GetInt64Slice("ids")
		opts.Genres, _ = flags.GetStringSlice("genres")
		opts.Types, _ = flags.GetStringSlice("types")

		app.ExecuteSearchCommand(cmd.Context(), appConfig, opts)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	searchCmdFlags := searchCmd.Flags()

	searchCmdFlags.StringP("query", "q", "", "free-text search query.")
	searchCmdFlags.StringSlice("tags", nil, "comma-separated list of tags.")
	searchCmdFlags.String("filter", "", "visibility filter: all, public or private.")
	searchCmdFlags.String("license", "", "license filter, for example: cc-by.")
	searchCmdFlags.Int64Slice("ids", nil, "comma-separated list of track IDs.")
	searchCmdFlags.StringSlice("genres", nil, "comma-separated list of genres.")
	searchCmdFlags.StringSlice("types", nil, "comma-separated list of track types.")

	rootCmd.AddCommand(searchCmd)
}
