package farcaster

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable is returned while an upstream circuit breaker is open.
var ErrUnavailable = errors.New("farcaster upstream temporarily unavailable")

// maxErrorBody bounds how much of an upstream error body is kept.
const maxErrorBody = 512

// APIError is a non-2xx answer from an upstream endpoint.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("farcaster: %s returned %d", e.Endpoint, e.StatusCode)
	}

	return fmt.Sprintf("farcaster: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func newAPIError(endpoint string, status int, body []byte) *APIError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	return &APIError{Endpoint: endpoint, StatusCode: status, Body: string(body)}
}

// IsNotFound returns true if the error is an upstream 404.
func IsNotFound(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode == http.StatusNotFound
	}

	return false
}
