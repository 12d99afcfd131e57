package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when the selected provider has no credential configured
var ErrMissingAPIKey = errors.New("api key not configured")

// ErrEmptyResponse is returned when the upstream answered without any usable content
var ErrEmptyResponse = errors.New("upstream returned no content")

// UpstreamError wraps every failure of an upstream call.
// Detail keeps the upstream body for server-side logs only.
type UpstreamError struct {
	Provider   string
	StatusCode int // zero when no HTTP response was received
	Detail     string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
