package http

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDInjector is a custom http.RoundTripper that stamps every outgoing request
// with an X-Request-Id header so that requests can be correlated in debug logs
// and on the server side.
type RequestIDInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
}

// requestIDHeader is the HTTP header name for the request correlation ID.
const requestIDHeader = "X-Request-Id"

// NewRequestIDInjector creates and returns a new instance of RequestIDInjector.
func NewRequestIDInjector(next http.RoundTripper) http.RoundTripper {
	return &RequestIDInjector{next: next}
}

// RoundTrip executes a single HTTP transaction and injects a request ID header if it is missing.
// It implements the http.RoundTripper interface.
func (t *RequestIDInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, uuid.NewString())
	}

	return t.next.RoundTrip(req)
}
