package httpdomain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent is returned when decoding a body of a 204 response.
	ErrNoContent = errors.New("response has no content")

	// ErrMalformedResponse marks a 2xx response whose body is not JSON.
	ErrMalformedResponse = errors.New("malformed response body")
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
	Method  string
	URL     string

	// Cause is set when a follow-up step failed, e.g. the credential refresh
	// attempted after this 401.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (status %d): %v", e.Message, e.Status, e.Cause)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusCode extracts the HTTP status from err, 0 when err is not an *Error.
func StatusCode(err error) int {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}
