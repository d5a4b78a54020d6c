// internal/nutrition/errors.go
package nutrition

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimitExceeded is returned before any encoding or network traffic
	// when the daily quota is used up.
	ErrRateLimitExceeded = errors.New("daily AI request limit reached")
	// ErrInvalidResponse covers bodies that are not a completion envelope or whose
	// content is not the nutrition JSON.
	ErrInvalidResponse = errors.New("unable to parse nutritional data")
)

// APIError is a non-200 answer from the gateway or upstream.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure, including timeouts and cancellation.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func invalidResponse(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidResponse, fmt.Sprintf(format, args...))
}
