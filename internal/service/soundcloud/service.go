package soundcloud

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/mkroman/soundcloud-grabber/internal/client/soundcloud"
	"github.com/mkroman/soundcloud-grabber/internal/config"
	"github.com/mkroman/soundcloud-grabber/internal/constants"
	"github.com/mkroman/soundcloud-grabber/internal/logger"
	"github.com/mkroman/soundcloud-grabber/internal/utils"
)

const (
	// File options for overwriting an existing file.
	overwriteFileOptions = os.O_CREATE | os.O_TRUNC | os.O_WRONLY

	// partFileSuffix marks a download in progress. Part files are always
	// safe to overwrite: they indicate an earlier incomplete download.
	partFileSuffix = ".part"
)

// trackPathPattern matches the path of a canonical API track URL and captures
// the numeric track identifier.
//
//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
var trackPathPattern = regexp.MustCompile(`^/tracks/(\d+)$`)

// Service provides high-level operations for fetching tracks and saving
// their audio to files or arbitrary writers.
type Service interface {
	// FetchTrackByURL resolves a public track page URL and fetches the track record.
	FetchTrackByURL(ctx context.Context, resourceURL string) (*soundcloud.Track, error)
	// FetchTrackByID fetches the track record with the given identifier.
	FetchTrackByID(ctx context.Context, id int64) (*soundcloud.Track, error)
	// DownloadTrackToFile downloads the track's original asset into the output
	// directory and returns the final file path and the number of bytes written.
	DownloadTrackToFile(ctx context.Context, track *soundcloud.Track) (string, int64, error)
	// StreamTrackToWriter copies the track's transcoded audio to sink and
	// returns the number of bytes written.
	StreamTrackToWriter(ctx context.Context, track *soundcloud.Track, sink io.Writer) (int64, error)
}

// ServiceImpl implements Service on top of the API client.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// scClient is the client for interacting with the API.
	scClient soundcloud.Client
}

// NewService creates a service instance with dependency-injected components.
func NewService(cfg *config.Config, scClient soundcloud.Client) Service {
	return &ServiceImpl{
		cfg:      cfg,
		scClient: scClient,
	}
}

// FetchTrackByURL resolves a public track page URL and fetches the track record.
func (s *ServiceImpl) FetchTrackByURL(ctx context.Context, resourceURL string) (*soundcloud.Track, error) {
	resolved, err := s.scClient.Resolve(ctx, resourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve URL: %w", err)
	}

	matches := trackPathPattern.FindStringSubmatch(resolved.Path)
	if matches == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedTrackURL, resolved.Path)
	}

	trackID, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse track ID '%s': %w", matches[1], err)
	}

	return s.FetchTrackByID(ctx, trackID)
}

// FetchTrackByID fetches the track record with the given identifier.
func (s *ServiceImpl) FetchTrackByID(ctx context.Context, id int64) (*soundcloud.Track, error) {
	track, err := s.scClient.Track(id).Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch track %d: %w", id, err)
	}

	return track, nil
}

// DownloadTrackToFile downloads the track's original asset into the output
// directory. The audio is written to a temporary .part file first and renamed
// into place only after the transfer completes, so a crash or a failed
// download never leaves a truncated file behind under the final name.
func (s *ServiceImpl) DownloadTrackToFile(ctx context.Context, track *soundcloud.Track) (string, int64, error) {
	trackPath := s.trackFilePath(track)

	// Check if final file already exists.
	if !s.cfg.ReplaceTracks {
		if _, err := os.Stat(trackPath); err == nil {
			logger.Infof(ctx, "Track '%s' already exists, skipping download", trackPath)

			return trackPath, 0, nil
		}
	}

	if err := os.MkdirAll(s.cfg.OutputPath, constants.DefaultFolderPermissions); err != nil {
		return "", 0, fmt.Errorf("failed to create output path: %w", err)
	}

	tempFilePath, bytesWritten, err := s.downloadToPartFile(ctx, track, trackPath)
	if err != nil {
		return "", 0, err
	}

	// Atomically rename the .part file to the final name.
	if err = os.Rename(tempFilePath, trackPath); err != nil {
		if removeErr := os.Remove(tempFilePath); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warnf(ctx, "Failed to clean up temporary file '%s': %v", tempFilePath, removeErr)
		}

		return "", 0, fmt.Errorf("failed to finalize file: %w", err)
	}

	logger.Infof(ctx, "Saved track '%s' (%s)", trackPath, humanize.Bytes(uint64(bytesWritten)))

	return trackPath, bytesWritten, nil
}

// StreamTrackToWriter copies the track's transcoded audio to sink.
func (s *ServiceImpl) StreamTrackToWriter(ctx context.Context, track *soundcloud.Track, sink io.Writer) (int64, error) {
	bytesWritten, err := s.copyWithSpeedLimit(sink, func(writer io.Writer) (int64, error) {
		return s.scClient.Stream(ctx, track, writer)
	})
	if err != nil {
		return bytesWritten, fmt.Errorf("failed to stream track: %w", err)
	}

	logger.Debugf(ctx, "Streamed %s of track %d", humanize.Bytes(uint64(bytesWritten)), track.ID)

	return bytesWritten, nil
}

// downloadToPartFile downloads the track's asset to a temporary .part file
// next to trackPath and returns the temporary path. The .part file is removed
// if the download fails.
func (s *ServiceImpl) downloadToPartFile(
	ctx context.Context,
	track *soundcloud.Track,
	trackPath string,
) (string, int64, error) {
	tempFilePath := trackPath + partFileSuffix

	f, openErr := os.OpenFile(filepath.Clean(tempFilePath), overwriteFileOptions, constants.DefaultFilePermissions)
	if openErr != nil {
		return "", 0, fmt.Errorf("failed to create temporary file: %w", openErr)
	}

	// Track whether download succeeded.
	// If not, we'll clean up the .part file on function exit.
	var downloadSucceeded bool

	defer func() {
		// Ensure file is closed before cleanup.
		closeErr := f.Close()

		if !downloadSucceeded {
			// Small delay to ensure file handle is released (Windows needs this).
			time.Sleep(10 * time.Millisecond)

			if removeErr := os.Remove(tempFilePath); removeErr != nil && !os.IsNotExist(removeErr) {
				logger.Warnf(ctx, "Failed to clean up temporary file '%s': %v (close error: %v)",
					tempFilePath, removeErr, closeErr)
			}
		}
	}()

	// Initialize progress tracker. The payload size is not known up front,
	// so the bar runs in indeterminate mode and counts bytes.
	var writer io.Writer

	if logger.Level() <= zap.InfoLevel {
		bar := progressbar.DefaultBytes(-1, "Downloading")
		writer = io.MultiWriter(f, bar)
	} else {
		writer = f
	}

	bytesWritten, err := s.copyWithSpeedLimit(writer, func(sink io.Writer) (int64, error) {
		return s.scClient.Download(ctx, track, sink)
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	downloadSucceeded = true

	return tempFilePath, bytesWritten, nil
}

// copyWithSpeedLimit runs transfer against writer, throttling throughput to
// the configured download speed limit. With no limit configured the transfer
// writes straight through.
func (s *ServiceImpl) copyWithSpeedLimit(writer io.Writer, transfer func(io.Writer) (int64, error)) (int64, error) {
	if s.cfg.ParsedDownloadSpeedLimit == 0 {
		return transfer(writer)
	}

	// Route the transfer through a pipe so the read side can be paced
	// with io.CopyN, one speed-limit-sized chunk per second.
	pipeReader, pipeWriter := io.Pipe()

	go func() {
		_, transferErr := transfer(pipeWriter)
		pipeWriter.CloseWithError(transferErr) //nolint:errcheck,gosec // CloseWithError always returns nil.
	}()

	var (
		bytesWritten int64
		err          error
	)

	for {
		var n int64

		n, err = io.CopyN(writer, pipeReader, s.cfg.ParsedDownloadSpeedLimit)
		bytesWritten += n

		if errors.Is(err, io.EOF) {
			err = nil

			break
		}

		if err != nil {
			break
		}

		// Throttle to respect speed limit.
		time.Sleep(time.Second)
	}

	return bytesWritten, err
}

// trackFilePath derives the destination file path for a track inside the
// output directory. The filename comes from the track title, sanitized for
// the local filesystem, with the extension taken from the uploaded format.
func (s *ServiceImpl) trackFilePath(track *soundcloud.Track) string {
	name := utils.SanitizeFilename(track.Title)
	if name == "" || name == "_" {
		name = strconv.FormatInt(track.ID, 10)
	}

	extension := constants.ExtensionMP3
	if track.OriginalFormat != "" {
		extension = "." + track.OriginalFormat
	}

	return filepath.Join(s.cfg.OutputPath, utils.SetFileExtension(name, extension))
}
