package soundcloud

import "errors"

// Common errors for the service layer.
var (
	// ErrUnsupportedTrackURL indicates that a resolved URL does not point at a track.
	ErrUnsupportedTrackURL = errors.New("URL does not resolve to a track")
)
