package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents a structured error response from the followscope API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"error"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("followscope: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("followscope: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func statusOf(err error) int {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsNotFound returns true if the error is a 404 not found.
func IsNotFound(err error) bool { return statusOf(err) == 404 }

// IsInFlight returns true if the session already has a graph request running.
func IsInFlight(err error) bool { return statusOf(err) == 409 }

// IsUnresolved returns true if none of the submitted usernames resolved.
func IsUnresolved(err error) bool { return statusOf(err) == 422 }

// IsUpstreamUnavailable returns true if the Farcaster upstream is failing or
// its circuit is open.
func IsUpstreamUnavailable(err error) bool {
	s := statusOf(err)
	return s == 502 || s == 503 || s == 504
}

// IsRateLimited returns true if the error is a 429 rate limit.
func IsRateLimited(err error) bool { return statusOf(err) == 429 }

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
