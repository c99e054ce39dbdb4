package soundcloud

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkroman/soundcloud-grabber/internal/config"
)

// failingWriter fails every write with a fixed error.
type failingWriter struct {
	err error
}

func (w *failingWriter) Write(_ []byte) (int, error) {
	return 0, w.err
}

// TestClientImpl_Download tests a direct asset download, byte count included.
func TestClientImpl_Download(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte{0x5C}, 16384)

	var requestedQuery string

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/tracks/1337/download", func(w http.ResponseWriter, r *http.Request) {
		requestedQuery = r.URL.RawQuery

		_, _ = w.Write(payload)
	})

	client := newTestClient(t, http.NotFoundHandler())
	track := &Track{
		ID:           1337,
		Downloadable: true,
		DownloadURL:  server.URL + "/tracks/1337/download",
	}

	var sink bytes.Buffer

	bytesCopied, err := client.Download(context.Background(), track, &sink)
	require.NoError(t, err)

	assert.Equal(t, int64(len(payload)), bytesCopied)
	assert.Equal(t, payload, sink.Bytes())
	assert.Equal(t, "client_id=test-client-id", requestedQuery, "credential must be attached to the asset URL")
}

// TestClientImpl_Download_NotDownloadable tests that the precondition is
// checked before any request is made.
func TestClientImpl_Download_NotDownloadable(t *testing.T) {
	t.Parallel()

	var hits int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, http.NotFoundHandler())

	tests := []struct {
		name  string
		track *Track
	}{
		{
			name:  "downloadable flag is false",
			track: &Track{ID: 1, Downloadable: false, DownloadURL: server.URL + "/d"},
		},
		{
			name:  "download URL is absent",
			track: &Track{ID: 2, Downloadable: true, DownloadURL: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sink bytes.Buffer

			bytesCopied, err := client.Download(context.Background(), tt.track, &sink)
			require.Error(t, err)

			assert.ErrorIs(t, err, ErrTrackNotDownloadable)
			assert.Zero(t, bytesCopied)
			assert.Zero(t, sink.Len())
		})
	}

	assert.Zero(t, hits, "no request may be made for a track that cannot be downloaded")
}

// TestClientImpl_Stream_NotStreamable tests the stream precondition.
func TestClientImpl_Stream_NotStreamable(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.NotFoundHandler())

	var sink bytes.Buffer

	_, err := client.Stream(context.Background(), &Track{ID: 1, Streamable: false}, &sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTrackNotStreamable)

	_, err = client.Stream(context.Background(), &Track{ID: 2, Streamable: true, StreamURL: ""}, &sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTrackNotStreamable)
}

// TestClientImpl_Stream tests streaming through the usual CDN redirect.
func TestClientImpl_Stream(t *testing.T) {
	t.Parallel()

	payload := []byte("transcoded audio bytes")

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/tracks/1337/stream", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", server.URL+"/cdn/asset")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/cdn/asset", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	})

	client := newTestClient(t, http.NotFoundHandler())
	track := &Track{
		ID:         1337,
		Streamable: true,
		StreamURL:  server.URL + "/tracks/1337/stream",
	}

	var sink bytes.Buffer

	bytesCopied, err := client.Stream(context.Background(), track, &sink)
	require.NoError(t, err)

	assert.Equal(t, int64(len(payload)), bytesCopied)
	assert.Equal(t, payload, sink.Bytes())
}

// TestClientImpl_Download_FollowsRedirectOnce tests that exactly one redirect
// hop is taken: a Location header on the follow-up response is ignored.
func TestClientImpl_Download_FollowsRedirectOnce(t *testing.T) {
	t.Parallel()

	payload := []byte("original audio bytes")

	var trapHits int

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/asset", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", server.URL+"/cdn/asset")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/cdn/asset", func(w http.ResponseWriter, _ *http.Request) {
		// A second redirect attempt, which must not be followed.
		w.Header().Set("Location", server.URL+"/trap")
		_, _ = w.Write(payload)
	})
	mux.HandleFunc("/trap", func(w http.ResponseWriter, _ *http.Request) {
		trapHits++

		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, http.NotFoundHandler())
	track := &Track{
		ID:           1337,
		Downloadable: true,
		DownloadURL:  server.URL + "/asset",
	}

	var sink bytes.Buffer

	bytesCopied, err := client.Download(context.Background(), track, &sink)
	require.NoError(t, err)

	assert.Equal(t, int64(len(payload)), bytesCopied)
	assert.Equal(t, payload, sink.Bytes())
	assert.Zero(t, trapHits, "only the first redirect may be followed")
}

// TestClientImpl_Download_SinkWriteFailure tests that a failing sink is
// reported as an IO failure, not a transport failure.
func TestClientImpl_Download_SinkWriteFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("audio bytes"))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, http.NotFoundHandler())
	track := &Track{
		ID:           1337,
		Downloadable: true,
		DownloadURL:  server.URL + "/asset",
	}

	sinkErr := errors.New("no space left on device")

	_, err := client.Download(context.Background(), track, &failingWriter{err: sinkErr})
	require.Error(t, err)

	assert.Equal(t, ErrorKindIO, KindOf(err))
	assert.ErrorIs(t, err, sinkErr)
}

// TestClientImpl_Download_UnreachableHost tests transport failure classification.
func TestClientImpl_Download_UnreachableHost(t *testing.T) {
	t.Parallel()

	client, err := NewClient(&config.Config{
		ClientID:          "test-client-id",
		APIBaseURL:        "http://127.0.0.1:1",
		ParsedHTTPTimeout: time.Second,
	})
	require.NoError(t, err)

	track := &Track{
		ID:           1337,
		Downloadable: true,
		DownloadURL:  "http://127.0.0.1:1/asset",
	}

	var sink bytes.Buffer

	_, err = client.Download(context.Background(), track, &sink)
	require.Error(t, err)
	assert.Equal(t, ErrorKindTransport, KindOf(err))
}
