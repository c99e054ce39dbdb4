package soundcloud

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mkroman/soundcloud-grabber/internal/config"
	"github.com/mkroman/soundcloud-grabber/internal/logger"
	http_transport "github.com/mkroman/soundcloud-grabber/internal/transport/http"
	"github.com/mkroman/soundcloud-grabber/internal/utils"
)

// Client defines the interface for interacting with the SoundCloud API.
type Client interface {
	// Resolve maps an arbitrary public resource URL to its canonical API URL.
	Resolve(ctx context.Context, resourceURL string) (*url.URL, error)
	// Tracks returns a request builder for searching tracks.
	Tracks() *TrackRequestBuilder
	// Track returns a request for a single track by identifier.
	Track(id int64) *SingleTrackRequest
	// Download copies the track's original asset bytes to sink and returns the byte count.
	Download(ctx context.Context, track *Track, sink io.Writer) (int64, error)
	// Stream copies the track's transcoded audio bytes to sink and returns the byte count.
	Stream(ctx context.Context, track *Track, sink io.Writer) (int64, error)
}

// ClientImpl implements the Client interface for interacting with the SoundCloud API.
// It is safe for concurrent use: nothing is mutated after construction.
type ClientImpl struct {
	// clientID is the API key attached to every outbound request.
	clientID string
	// baseURL is the base URL for API requests.
	baseURL *url.URL
	// httpClient is the HTTP client for making requests.
	// It is configured to never follow redirects automatically.
	httpClient *http.Client
}

// Param is a single ordered query parameter.
type Param struct {
	// Key is the query parameter name.
	Key string
	// Value is the query parameter value.
	Value string
}

// clientIDParam is the query parameter name carrying the API credential.
const clientIDParam = "client_id"

// resolveURI is the URI path of the resource resolution endpoint.
const resolveURI = "/resolve"

// NewClient creates and returns a new instance of ClientImpl.
// It initializes the HTTP client with the provided configuration.
func NewClient(cfg *config.Config) (Client, error) {
	baseURL, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	timeout := cfg.ParsedHTTPTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	// Initialize the HTTP client with custom transport and timeout.
	// Redirects are never followed automatically: the resolver reads the
	// Location header itself, and the media path follows it exactly once.
	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewRequestIDInjector(
				http_transport.NewLogTransport(http.DefaultTransport, 0)),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		Timeout: timeout,
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &ClientImpl{
		clientID:   cfg.ClientID,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// ClientID returns the API credential the client was constructed with.
func (c *ClientImpl) ClientID() string {
	return c.clientID
}

// Resolve maps an arbitrary public resource URL to its canonical API URL.
// The API answers with a redirect whose Location header carries the target;
// a response without one is a protocol violation by the server.
func (c *ClientImpl) Resolve(ctx context.Context, resourceURL string) (*url.URL, error) {
	response, err := c.get(ctx, resolveURI, []Param{{Key: "url", Value: resourceURL}})
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	location := response.Header.Get("Location")
	if location == "" {
		return nil, apiProtocolError("expected location header", nil)
	}

	resolved, err := url.Parse(location)
	if err != nil {
		return nil, apiProtocolError("invalid location header", err)
	}

	return resolved, nil
}

// Tracks returns a request builder for searching tracks.
func (c *ClientImpl) Tracks() *TrackRequestBuilder {
	return &TrackRequestBuilder{client: c}
}

// Track returns a request for a single track by identifier.
func (c *ClientImpl) Track(id int64) *SingleTrackRequest {
	return &SingleTrackRequest{client: c, id: id}
}

// get sends an authenticated GET request to the API endpoint identified by path.
// The client_id parameter is always appended first; caller-supplied parameters
// follow in the order given and are never de-duplicated against it.
func (c *ClientImpl) get(ctx context.Context, path string, params []Param) (*http.Response, error) {
	target := *c.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + path
	target.RawQuery = encodeParams(append([]Param{{Key: clientIDParam, Value: c.clientID}}, params...))

	return c.getURL(ctx, &target)
}

// getURL sends a GET request to an absolute URL using the client's transport.
func (c *ClientImpl) getURL(ctx context.Context, target *url.URL) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return nil, transportError(err)
	}

	logger.Debugf(ctx, "GET %s", target.Redacted())

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, transportError(err)
	}

	return response, nil
}

// encodeParams builds a raw query string preserving the parameter order.
// url.Values is deliberately not used here: it sorts keys, and the API
// contract requires the credential to come first and caller parameters to
// follow verbatim.
func encodeParams(params []Param) string {
	var b strings.Builder

	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}

	return b.String()
}
