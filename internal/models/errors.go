package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for request validation.
var (
	ErrNoUsernames        = errors.New("at least one username is required")
	ErrTooManyUsernames   = errors.New("too many usernames")
	ErrMissingEndpoint    = errors.New("link endpoint id is required")
	ErrMissingCoordinates = errors.New("x and y are required")
)

// Sentinel errors for graph assembly and metrics.
var (
	ErrNoSeedsResolved   = errors.New("none of the usernames could be resolved")
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	ErrGraphTooLarge     = errors.New("follow graph is too large")
)

// Sentinel errors for sessions and lookups.
var (
	ErrRequestInFlight  = errors.New("a graph request is already in flight for this session")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNodeNotFound     = errors.New("node not found")
	ErrDatasetNotLoaded = errors.New("no graph loaded for this session")
)

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
