package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidUpload   = errors.New("invalid upload")
	ErrEmptyResponse   = errors.New("AI generated an empty response")
	ErrProviderFailure = errors.New("provider failure")
	ErrNoProviders     = errors.New("no image providers configured")
)

// ProviderHTTPError reports a provider call that came back with a non-success
// status. Body carries the raw response text so callers can surface it.
type ProviderHTTPError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("NVIDIA API Error: %s", e.Body)
}

// Unwrap lets errors.Is match ErrProviderFailure.
func (e *ProviderHTTPError) Unwrap() error {
	return ErrProviderFailure
}
