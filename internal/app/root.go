package app

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/dustin/go-humanize"

	soundcloud_client "github.com/mkroman/soundcloud-grabber/internal/client/soundcloud"
	"github.com/mkroman/soundcloud-grabber/internal/config"
	"github.com/mkroman/soundcloud-grabber/internal/logger"
	soundcloud_service "github.com/mkroman/soundcloud-grabber/internal/service/soundcloud"
)

// numericIDPattern matches a bare track identifier.
//
//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
var numericIDPattern = regexp.MustCompile(`^\d+$`)

// SearchOptions carries the search criteria collected from CLI flags.
type SearchOptions struct {
	// Query is the free-text search query.
	Query string
	// Tags is the list of tags to filter by.
	Tags []string
	// Filter is the visibility filter token ("all", "public", "private").
	Filter string
	// License is the license filter.
	License string
	// IDs is an explicit list of track identifiers.
	IDs []int64
	// Genres is the list of genres to filter by.
	Genres []string
	// Types is the list of track types to filter by.
	Types []string
}

// ExecuteSearchCommand searches for tracks and prints one line per result.
func ExecuteSearchCommand(ctx context.Context, cfg *config.Config, opts *SearchOptions) {
	scClient, err := soundcloud_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize client: %v", err)
	}

	builder := scClient.Tracks()

	if opts.Query != "" {
		builder.Query(opts.Query)
	}

	if len(opts.Tags) > 0 {
		builder.Tags(opts.Tags...)
	}

	if opts.Filter != "" {
		filter, parseErr := soundcloud_client.ParseFilter(opts.Filter)
		if parseErr != nil {
			logger.Fatalf(ctx, "Failed to parse filter: %v", parseErr)
		}

		builder.Filter(filter)
	}

	if opts.License != "" {
		builder.License(opts.License)
	}

	if len(opts.IDs) > 0 {
		builder.IDs(opts.IDs...)
	}

	if len(opts.Genres) > 0 {
		builder.Genres(opts.Genres...)
	}

	if len(opts.Types) > 0 {
		builder.Types(opts.Types...)
	}

	tracks, found, err := builder.Execute(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Search failed: %v", err)
	}

	if !found {
		logger.Info(ctx, "No tracks matched the given criteria")
		return
	}

	for _, track := range tracks {
		fmt.Fprintf(os.Stdout, "%d\t%s\t%s\n", track.ID, track.Title, track.PermalinkURL)
	}

	logger.Infof(ctx, "Found %d tracks", len(tracks))
}

// ExecuteGetCommand fetches a single track by identifier and prints a summary.
func ExecuteGetCommand(ctx context.Context, cfg *config.Config, id int64) {
	scClient, err := soundcloud_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize client: %v", err)
	}

	track, err := scClient.Track(id).Execute(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Failed to fetch track %d: %v", id, err)
	}

	printTrackSummary(track)
}

// ExecuteResolveCommand resolves a public URL and prints its canonical API URL.
func ExecuteResolveCommand(ctx context.Context, cfg *config.Config, resourceURL string) {
	scClient, err := soundcloud_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize client: %v", err)
	}

	resolved, err := scClient.Resolve(ctx, resourceURL)
	if err != nil {
		logger.Fatalf(ctx, "Failed to resolve URL: %v", err)
	}

	fmt.Fprintln(os.Stdout, resolved.String())
}

// ExecuteDownloadCommand downloads a track's original asset to the output
// directory. The target may be a public URL or a bare track identifier.
func ExecuteDownloadCommand(ctx context.Context, cfg *config.Config, target string) {
	service, track := fetchTrackForTarget(ctx, cfg, target)

	trackPath, bytesWritten, err := service.DownloadTrackToFile(ctx, track)
	if err != nil {
		logger.Fatalf(ctx, "Failed to download track: %v", err)
	}

	logger.Infof(ctx, "Downloaded '%s' to '%s' (%s)",
		track.Title, trackPath, humanize.Bytes(uint64(bytesWritten)))
}

// ExecuteStreamCommand streams a track's transcoded audio to standard output.
func ExecuteStreamCommand(ctx context.Context, cfg *config.Config, target string) {
	service, track := fetchTrackForTarget(ctx, cfg, target)

	bytesWritten, err := service.StreamTrackToWriter(ctx, track, os.Stdout)
	if err != nil {
		logger.Fatalf(ctx, "Failed to stream track: %v", err)
	}

	logger.Debugf(ctx, "Streamed %s", humanize.Bytes(uint64(bytesWritten)))
}

// fetchTrackForTarget builds the service stack and fetches the track record
// behind target, which is either a bare identifier or a public URL.
func fetchTrackForTarget(
	ctx context.Context,
	cfg *config.Config,
	target string,
) (soundcloud_service.Service, *soundcloud_client.Track) {
	scClient, err := soundcloud_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize client: %v", err)
	}

	service := soundcloud_service.NewService(cfg, scClient)

	var track *soundcloud_client.Track

	if numericIDPattern.MatchString(target) {
		id, parseErr := strconv.ParseInt(target, 10, 64)
		if parseErr != nil {
			logger.Fatalf(ctx, "Failed to parse track ID '%s': %v", target, parseErr)
		}

		track, err = service.FetchTrackByID(ctx, id)
	} else {
		track, err = service.FetchTrackByURL(ctx, target)
	}

	if err != nil {
		logger.Fatalf(ctx, "Failed to fetch track: %v", err)
	}

	return service, track
}

// printTrackSummary prints the interesting fields of a track record.
func printTrackSummary(track *soundcloud_client.Track) {
	fmt.Fprintf(os.Stdout, "ID:           %d\n", track.ID)
	fmt.Fprintf(os.Stdout, "Title:        %s\n", track.Title)
	fmt.Fprintf(os.Stdout, "User:         %s\n", track.User.Username)
	fmt.Fprintf(os.Stdout, "Duration:     %dms\n", track.Duration)
	fmt.Fprintf(os.Stdout, "Genre:        %s\n", track.Genre)
	fmt.Fprintf(os.Stdout, "License:      %s\n", track.License)
	fmt.Fprintf(os.Stdout, "Sharing:      %s\n", track.Sharing)
	fmt.Fprintf(os.Stdout, "Streamable:   %t\n", track.Streamable)
	fmt.Fprintf(os.Stdout, "Downloadable: %t\n", track.Downloadable)
	fmt.Fprintf(os.Stdout, "Permalink:    %s\n", track.PermalinkURL)
}
