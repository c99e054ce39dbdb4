// Package soundcloud provides a typed Go client for the SoundCloud HTTP API.
// It supports resolving public resource URLs into canonical API URLs,
// searching tracks through a fluent request builder, fetching single tracks
// by identifier, and downloading or streaming a track's audio bytes to a
// caller-supplied sink. The underlying HTTP client never follows redirects
// automatically: redirect interception is a deliberate part of both the
// resolver and the media transfer path. All failures are reported through a
// closed, typed error taxonomy suitable for programmatic branching.
package soundcloud
