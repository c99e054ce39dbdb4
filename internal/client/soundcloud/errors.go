package soundcloud

import (
	"errors"
	"fmt"
)

// ErrorKind identifies one member of the closed failure taxonomy.
type ErrorKind uint8

const (
	// ErrorKindTransport indicates a network-level failure (DNS, TLS, connection).
	// The client never retries these; the caller may.
	ErrorKindTransport ErrorKind = iota + 1
	// ErrorKindSerialization indicates a JSON decode failure.
	ErrorKindSerialization
	// ErrorKindAPIProtocol indicates the server response violated the expected
	// contract, e.g. a missing Location header or a non-array track list.
	ErrorKindAPIProtocol
	// ErrorKindInvalidFilter indicates the caller supplied an unparseable filter token.
	ErrorKindInvalidFilter
	// ErrorKindIO indicates a sink write failure during media transfer.
	ErrorKindIO
	// ErrorKindNotFound indicates the requested resource does not exist.
	ErrorKindNotFound
	// ErrorKindNotDownloadable indicates the track cannot be downloaded.
	// This is checked client-side before any request is made.
	ErrorKindNotDownloadable
	// ErrorKindNotStreamable indicates the track cannot be streamed.
	// This is checked client-side before any request is made.
	ErrorKindNotStreamable
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "transport"
	case ErrorKindSerialization:
		return "serialization"
	case ErrorKindAPIProtocol:
		return "api protocol"
	case ErrorKindInvalidFilter:
		return "invalid filter"
	case ErrorKindIO:
		return "io"
	case ErrorKindNotFound:
		return "not found"
	case ErrorKindNotDownloadable:
		return "not downloadable"
	case ErrorKindNotStreamable:
		return "not streamable"
	default:
		return "unknown"
	}
}

// Error is a typed client failure carrying its kind, a message, and an
// optional underlying cause. It supports errors.Is matching by kind.
type Error struct {
	// Kind is the taxonomy member this failure belongs to.
	Kind ErrorKind
	// Message describes the failure.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error. Two Errors match when their
// kinds are equal, so callers can branch on kind with a bare &Error{Kind: ...}
// or one of the package sentinels.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}

	return e.Kind == other.Kind
}

// Sentinel errors for the precondition and lookup failure paths.
var (
	// ErrTrackNotDownloadable is returned when a download is requested for a
	// track whose downloadable flag is false or whose download URL is absent.
	ErrTrackNotDownloadable = &Error{Kind: ErrorKindNotDownloadable, Message: "track is not downloadable"}
	// ErrTrackNotStreamable is returned when a stream is requested for a
	// track whose streamable flag is false or whose stream URL is absent.
	ErrTrackNotStreamable = &Error{Kind: ErrorKindNotStreamable, Message: "track is not streamable"}
	// ErrTrackNotFound is returned when the API reports the track does not exist.
	ErrTrackNotFound = &Error{Kind: ErrorKindNotFound, Message: "track not found"}
)

// KindOf returns the taxonomy kind of err, or 0 if err does not carry one.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

func transportError(err error) *Error {
	return &Error{Kind: ErrorKindTransport, Message: "request failed", Err: err}
}

func serializationError(message string, err error) *Error {
	return &Error{Kind: ErrorKindSerialization, Message: message, Err: err}
}

func apiProtocolError(message string, err error) *Error {
	return &Error{Kind: ErrorKindAPIProtocol, Message: message, Err: err}
}

func ioError(err error) *Error {
	return &Error{Kind: ErrorKindIO, Message: "failed to write to sink", Err: err}
}

func invalidFilterError(token string) *Error {
	return &Error{Kind: ErrorKindInvalidFilter, Message: fmt.Sprintf("invalid filter: %q", token)}
}
