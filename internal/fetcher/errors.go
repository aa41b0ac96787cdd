package fetcher

import "fmt"

// ErrorKind classifies a fetch failure.
type ErrorKind string

const (
	// KindNetwork covers transport, DNS, and TLS failures.
	KindNetwork ErrorKind = "network"

	// KindTimeout covers requests that exceeded the configured timeout.
	KindTimeout ErrorKind = "timeout"
)

// FetchError is the typed failure returned when no HTTP response arrived.
// Exactly one of Result or FetchError exists per Fetch call.
type FetchError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// URL is the request URL.
	URL string

	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *FetchError) Unwrap() error {
	return e.Err
}
