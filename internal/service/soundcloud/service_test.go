package soundcloud

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkroman/soundcloud-grabber/internal/client/soundcloud"
	mock_soundcloud "github.com/mkroman/soundcloud-grabber/internal/client/soundcloud/mocks"
	"github.com/mkroman/soundcloud-grabber/internal/config"
)

func newTestConfig(outputPath string) *config.Config {
	return &config.Config{
		ClientID:          "test-client-id",
		OutputPath:        outputPath,
		ParsedHTTPTimeout: 10 * time.Second,
	}
}

// findPartFiles finds all .part files in the given directory.
func findPartFiles(t *testing.T, dir string) []string {
	t.Helper()

	var partFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && filepath.Ext(path) == partFileSuffix {
			partFiles = append(partFiles, path)
		}

		return nil
	})
	require.NoError(t, err, "Failed to walk directory for .part files")

	return partFiles
}

func TestServiceImpl_DownloadTrackToFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	scClient := mock_soundcloud.NewMockClient(ctrl)

	track := &soundcloud.Track{
		ID:           1337,
		Title:        "Morning Light",
		Downloadable: true,
		DownloadURL:  "https://api.soundcloud.com/tracks/1337/download",
	}
	payload := bytes.Repeat([]byte{0xAB}, 4096)

	scClient.EXPECT().
		Download(gomock.Any(), track, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *soundcloud.Track, sink io.Writer) (int64, error) {
			n, err := sink.Write(payload)
			return int64(n), err
		})

	tempDir := t.TempDir()
	service := NewService(newTestConfig(tempDir), scClient)

	trackPath, bytesWritten, err := service.DownloadTrackToFile(context.Background(), track)
	require.NoError(t, err)

	assert.Equal(t, int64(len(payload)), bytesWritten)
	assert.Equal(t, filepath.Join(tempDir, "Morning Light.mp3"), trackPath)

	content, err := os.ReadFile(trackPath)
	require.NoError(t, err)
	assert.Equal(t, payload, content)

	assert.Empty(t, findPartFiles(t, tempDir), ".part files should be cleaned up after successful download")
}

func TestServiceImpl_DownloadTrackToFile_SkipsExistingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: the client must not be touched for an existing file.
	scClient := mock_soundcloud.NewMockClient(ctrl)

	tempDir := t.TempDir()
	existingPath := filepath.Join(tempDir, "Morning Light.mp3")
	require.NoError(t, os.WriteFile(existingPath, []byte("old content"), 0o644))

	track := &soundcloud.Track{ID: 1337, Title: "Morning Light", Downloadable: true, DownloadURL: "https://x/d"}
	service := NewService(newTestConfig(tempDir), scClient)

	trackPath, bytesWritten, err := service.DownloadTrackToFile(context.Background(), track)
	require.NoError(t, err)

	assert.Equal(t, existingPath, trackPath)
	assert.Zero(t, bytesWritten)

	content, err := os.ReadFile(existingPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("old content"), content, "existing file should be left untouched")
}

func TestServiceImpl_DownloadTrackToFile_ReplacesExistingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	scClient := mock_soundcloud.NewMockClient(ctrl)

	tempDir := t.TempDir()
	existingPath := filepath.Join(tempDir, "Morning Light.mp3")
	require.NoError(t, os.WriteFile(existingPath, []byte("old content"), 0o644))

	track := &soundcloud.Track{ID: 1337, Title: "Morning Light", Downloadable: true, DownloadURL: "https://x/d"}
	payload := []byte("new content")

	scClient.EXPECT().
		Download(gomock.Any(), track, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *soundcloud.Track, sink io.Writer) (int64, error) {
			n, err := sink.Write(payload)
			return int64(n), err
		})

	cfg := newTestConfig(tempDir)
	cfg.ReplaceTracks = true
	service := NewService(cfg, scClient)

	_, bytesWritten, err := service.DownloadTrackToFile(context.Background(), track)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), bytesWritten)

	content, err := os.ReadFile(existingPath)
	require.NoError(t, err)
	assert.Equal(t, payload, content)
}

func TestServiceImpl_DownloadTrackToFile_CleansUpPartFileOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	scClient := mock_soundcloud.NewMockClient(ctrl)

	track := &soundcloud.Track{ID: 1337, Title: "Morning Light", Downloadable: true, DownloadURL: "https://x/d"}
	transferErr := errors.New("connection reset by peer")

	scClient.EXPECT().
		Download(gomock.Any(), track, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *soundcloud.Track, sink io.Writer) (int64, error) {
			// Write a partial payload before failing.
			n, _ := sink.Write(bytes.Repeat([]byte{0x01}, 100))
			return int64(n), transferErr
		})

	tempDir := t.TempDir()
	service := NewService(newTestConfig(tempDir), scClient)

	_, _, err := service.DownloadTrackToFile(context.Background(), track)
	require.Error(t, err)
	assert.ErrorIs(t, err, transferErr)

	assert.NoFileExists(t, filepath.Join(tempDir, "Morning Light.mp3"))
	assert.Empty(t, findPartFiles(t, tempDir), ".part files should be cleaned up after failed download")
}

func TestServiceImpl_DownloadTrackToFile_SpeedLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	scClient := mock_soundcloud.NewMockClient(ctrl)

	track := &soundcloud.Track{ID: 1337, Title: "Morning Light", Downloadable: true, DownloadURL: "https://x/d"}
	payload := bytes.Repeat([]byte{0xCD}, 1000)

	scClient.EXPECT().
		Download(gomock.Any(), track, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *soundcloud.Track, sink io.Writer) (int64, error) {
			n, err := sink.Write(payload)
			return int64(n), err
		})

	cfg := newTestConfig(t.TempDir())
	// Limit well above the payload size so the transfer finishes in one chunk.
	cfg.ParsedDownloadSpeedLimit = 1 << 20
	service := NewService(cfg, scClient)

	trackPath, bytesWritten, err := service.DownloadTrackToFile(context.Background(), track)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), bytesWritten)

	content, err := os.ReadFile(trackPath)
	require.NoError(t, err)
	assert.Equal(t, payload, content)
}

func TestServiceImpl_StreamTrackToWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	scClient := mock_soundcloud.NewMockClient(ctrl)

	track := &soundcloud.Track{ID: 1337, Streamable: true, StreamURL: "https://x/s"}
	payload := bytes.Repeat([]byte{0xEF}, 2048)

	scClient.EXPECT().
		Stream(gomock.Any(), track, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *soundcloud.Track, sink io.Writer) (int64, error) {
			n, err := sink.Write(payload)
			return int64(n), err
		})

	service := NewService(newTestConfig(t.TempDir()), scClient)

	var sink bytes.Buffer

	bytesWritten, err := service.StreamTrackToWriter(context.Background(), track, &sink)
	require.NoError(t, err)

	assert.Equal(t, int64(len(payload)), bytesWritten)
	assert.Equal(t, payload, sink.Bytes())
}

func TestServiceImpl_FetchTrackByURL(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/resolve", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", server.URL+"/tracks/12345")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/tracks/12345", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 12345, "title": "Morning Light"}`))
	})

	cfg := newTestConfig(t.TempDir())
	cfg.APIBaseURL = server.URL

	scClient, err := soundcloud.NewClient(cfg)
	require.NoError(t, err)

	service := NewService(cfg, scClient)

	track, err := service.FetchTrackByURL(context.Background(), "https://soundcloud.com/artist/morning-light")
	require.NoError(t, err)

	assert.Equal(t, int64(12345), track.ID)
	assert.Equal(t, "Morning Light", track.Title)
}

func TestServiceImpl_FetchTrackByURL_UnsupportedURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	scClient := mock_soundcloud.NewMockClient(ctrl)

	scClient.EXPECT().
		Resolve(gomock.Any(), "https://soundcloud.com/artist/sets/mixtape").
		Return(&url.URL{Scheme: "https", Host: "api.soundcloud.com", Path: "/playlists/77"}, nil)

	service := NewService(newTestConfig(t.TempDir()), scClient)

	_, err := service.FetchTrackByURL(context.Background(), "https://soundcloud.com/artist/sets/mixtape")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedTrackURL)
}

func TestServiceImpl_FetchTrackByID_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cfg := newTestConfig(t.TempDir())
	cfg.APIBaseURL = server.URL

	scClient, err := soundcloud.NewClient(cfg)
	require.NoError(t, err)

	service := NewService(cfg, scClient)

	_, err = service.FetchTrackByID(context.Background(), 404404)
	require.Error(t, err)
	assert.ErrorIs(t, err, soundcloud.ErrTrackNotFound)
}

func TestServiceImpl_TrackFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		track    *soundcloud.Track
		expected string
	}{
		{
			name:     "plain title gets mp3 extension",
			track:    &soundcloud.Track{ID: 1, Title: "Morning Light"},
			expected: "Morning Light.mp3",
		},
		{
			name:     "invalid characters are replaced",
			track:    &soundcloud.Track{ID: 2, Title: "a/b:c"},
			expected: "a_b_c.mp3",
		},
		{
			name:     "original format wins over default extension",
			track:    &soundcloud.Track{ID: 3, Title: "Morning Light", OriginalFormat: "wav"},
			expected: "Morning Light.wav",
		},
		{
			name:     "empty title falls back to track ID",
			track:    &soundcloud.Track{ID: 42, Title: ""},
			expected: "42.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service := &ServiceImpl{cfg: &config.Config{OutputPath: "out"}}

			assert.Equal(t, filepath.Join("out", tt.expected), service.trackFilePath(tt.track))
		})
	}
}
