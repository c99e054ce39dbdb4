// Package app provides the main application logic behind each CLI command.
// It initializes the API client and the download service and orchestrates
// searching, resolving, fetching, downloading, and streaming tracks.
package app
