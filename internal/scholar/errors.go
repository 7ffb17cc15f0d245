package scholar

import (
	"errors"
	"fmt"
)

// Common errors returned by the SerpApi client.
var (
	// ErrAuthError indicates a missing or rejected API key.
	ErrAuthError = errors.New("SerpApi authentication error")

	// ErrRateLimited indicates the plan's search quota or rate was exceeded.
	ErrRateLimited = errors.New("SerpApi rate limit exceeded")

	// ErrAPIError indicates a general API error.
	ErrAPIError = errors.New("SerpApi API error")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with SerpApi")

	// ErrInvalidResponse indicates an unexpected response body.
	ErrInvalidResponse = errors.New("invalid response from SerpApi")
)

// APIError is an error reported by SerpApi, either as a non-OK status or
// as an "error" field in an otherwise successful response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("SerpApi API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrAPIError.
func (e *APIError) Unwrap() error {
	return ErrAPIError
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
