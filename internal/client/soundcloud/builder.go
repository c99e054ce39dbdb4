package soundcloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// tracksURI is the URI path of the track search endpoint.
const tracksURI = "/tracks"

// TrackRequestBuilder accumulates optional filter criteria for a track search.
// Each setter overwrites its field (last-write-wins); unset fields are omitted
// from the request entirely. The builder is not safe for concurrent use, but
// Execute derives the parameters from the current state each time, so calling
// it repeatedly is safe.
type TrackRequestBuilder struct {
	client *ClientImpl

	query     string
	tags      []string
	filter    Filter
	hasFilter bool
	license   string
	ids       []int64
	genres    []string
	types     []string
}

// Query sets the free-text search query.
func (b *TrackRequestBuilder) Query(query string) *TrackRequestBuilder {
	b.query = query
	return b
}

// Tags sets the tag filter; tags are comma-joined on the wire.
func (b *TrackRequestBuilder) Tags(tags ...string) *TrackRequestBuilder {
	b.tags = tags
	return b
}

// Filter restricts the search to all, public, or private tracks.
func (b *TrackRequestBuilder) Filter(filter Filter) *TrackRequestBuilder {
	b.filter = filter
	b.hasFilter = true

	return b
}

// License sets the license filter.
func (b *TrackRequestBuilder) License(license string) *TrackRequestBuilder {
	b.license = license
	return b
}

// IDs sets an explicit list of track identifiers to look up.
func (b *TrackRequestBuilder) IDs(ids ...int64) *TrackRequestBuilder {
	b.ids = ids
	return b
}

// Genres sets the genre filter; genres are comma-joined on the wire.
func (b *TrackRequestBuilder) Genres(genres ...string) *TrackRequestBuilder {
	b.genres = genres
	return b
}

// Types sets the track type filter; types are comma-joined on the wire.
func (b *TrackRequestBuilder) Types(types ...string) *TrackRequestBuilder {
	b.types = types
	return b
}

// Execute issues the search request and decodes the response.
// The second return value reports whether the search produced any results:
// an empty result set yields (nil, false, nil), which is distinct from both
// an error and a decoded empty list.
func (b *TrackRequestBuilder) Execute(ctx context.Context) ([]Track, bool, error) {
	response, err := b.client.get(ctx, tracksURI, b.requestParams())
	if err != nil {
		return nil, false, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, false, transportError(err)
	}

	// Decode the top level first instead of going straight to []Track.
	// This keeps "the array is present but empty" distinguishable from
	// "the payload is not an array at all".
	var elements []json.RawMessage
	if err = json.Unmarshal(body, &elements); err != nil {
		var typeMismatch *json.UnmarshalTypeError
		if errors.As(err, &typeMismatch) {
			return nil, false, apiProtocolError("expected response to be an array", err)
		}

		return nil, false, serializationError("failed to decode track list", err)
	}

	if len(elements) == 0 {
		return nil, false, nil
	}

	// Decode each element independently so a single malformed record is
	// reported with its position instead of poisoning the whole response.
	tracks := make([]Track, 0, len(elements))

	for i, element := range elements {
		var track Track
		if err = json.Unmarshal(element, &track); err != nil {
			return nil, false, serializationError(fmt.Sprintf("failed to decode track at index %d", i), err)
		}

		tracks = append(tracks, track)
	}

	return tracks, true, nil
}

// requestParams serializes the set criteria into an ordered parameter list.
// Unset fields are omitted entirely, never sent as empty values.
func (b *TrackRequestBuilder) requestParams() []Param {
	var params []Param

	if b.query != "" {
		params = append(params, Param{Key: "q", Value: b.query})
	}

	if len(b.tags) > 0 {
		params = append(params, Param{Key: "tags", Value: strings.Join(b.tags, ",")})
	}

	if b.hasFilter {
		params = append(params, Param{Key: "filter", Value: b.filter.String()})
	}

	if b.license != "" {
		params = append(params, Param{Key: "license", Value: b.license})
	}

	if len(b.ids) > 0 {
		ids := make([]string, len(b.ids))
		for i, id := range b.ids {
			ids[i] = strconv.FormatInt(id, 10)
		}

		params = append(params, Param{Key: "ids", Value: strings.Join(ids, ",")})
	}

	if len(b.genres) > 0 {
		params = append(params, Param{Key: "genres", Value: strings.Join(b.genres, ",")})
	}

	if len(b.types) > 0 {
		params = append(params, Param{Key: "types", Value: strings.Join(b.types, ",")})
	}

	return params
}

// SingleTrackRequest is a minimal request for one track by identifier.
type SingleTrackRequest struct {
	client *ClientImpl
	id     int64
}

// ID returns the target track identifier.
func (r *SingleTrackRequest) ID() int64 {
	return r.id
}

// RequestURL returns the canonical API URL of the target track, without credentials.
func (r *SingleTrackRequest) RequestURL() *url.URL {
	target := *r.client.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + fmt.Sprintf("%s/%d", tracksURI, r.id)

	return &target
}

// Execute issues the request and decodes the response body as one track record.
// A 404-class response yields ErrTrackNotFound; any other decode failure is a
// serialization error.
func (r *SingleTrackRequest) Execute(ctx context.Context) (*Track, error) {
	response, err := r.client.get(ctx, fmt.Sprintf("%s/%d", tracksURI, r.id), nil)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if response.StatusCode == http.StatusNotFound || response.StatusCode == http.StatusGone {
		return nil, ErrTrackNotFound
	}

	var track Track
	if err = json.NewDecoder(response.Body).Decode(&track); err != nil {
		return nil, serializationError("failed to decode track", err)
	}

	return &track, nil
}
