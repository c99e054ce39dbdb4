// Package soundcloud provides the application-facing service layer on top of
// the API client. It resolves public URLs to track records, downloads tracks
// to files atomically via temporary .part files, streams audio to arbitrary
// sinks, and reports progress and byte totals.
package soundcloud
