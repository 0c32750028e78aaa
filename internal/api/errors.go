package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/followscope/followscope/internal/farcaster"
	"github.com/followscope/followscope/internal/httputil"
	"github.com/followscope/followscope/internal/metrics"
	"github.com/followscope/followscope/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeInternalError    = "internal_error"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeValidationError  = "validation_error"
	ErrCodeConflict         = "request_in_flight"
	ErrCodeUnresolved       = "no_seeds_resolved"
	ErrCodeUpstreamError    = "upstream_error"
	ErrCodeUpstreamDown     = "upstream_unavailable"
	ErrCodeUpstreamTimeout  = "upstream_timeout"
	ErrCodeMalformedGraph   = "malformed_graph"
	ErrCodeDatasetNotLoaded = "dataset_not_loaded"
	ErrCodeGraphTooLarge    = "graph_too_large"
	ErrCodeCancelled        = "request_cancelled"
)

// statusClientClosedRequest is reported when the caller went away before
// the graph was ready.
const statusClientClosedRequest = 499

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondDomainError maps a service error to its HTTP status and writes it.
// It reports whether err was one of the known domain errors.
func respondDomainError(c *gin.Context, err error) bool {
	var apiErr *farcaster.APIError

	switch {
	case errors.Is(err, models.ErrNoUsernames),
		errors.Is(err, models.ErrTooManyUsernames),
		errors.Is(err, models.ErrMissingCoordinates):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	case errors.Is(err, models.ErrRequestInFlight):
		respondError(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, models.ErrNoSeedsResolved):
		respondError(c, http.StatusUnprocessableEntity, ErrCodeUnresolved, err.Error())
	case errors.Is(err, models.ErrGraphTooLarge):
		respondError(c, http.StatusUnprocessableEntity, ErrCodeGraphTooLarge, err.Error())
	case errors.Is(err, context.Canceled):
		respondError(c, statusClientClosedRequest, ErrCodeCancelled, "request cancelled")
	case errors.Is(err, farcaster.ErrUnavailable):
		respondError(c, http.StatusServiceUnavailable, ErrCodeUpstreamDown, "farcaster upstream is temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, ErrCodeUpstreamTimeout, "farcaster upstream timed out")
	case errors.As(err, &apiErr):
		respondError(c, http.StatusBadGateway, ErrCodeUpstreamError, "farcaster upstream request failed")
	case errors.Is(err, models.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrNodeNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrDatasetNotLoaded):
		respondError(c, http.StatusNotFound, ErrCodeDatasetNotLoaded, err.Error())
	case errors.Is(err, models.ErrMalformedSnapshot):
		respondError(c, http.StatusInternalServerError, ErrCodeMalformedGraph, "graph data is malformed")
	default:
		return false
	}

	return true
}
