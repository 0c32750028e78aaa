// Package api provides HTTP handlers for the followscope server.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ClientCounter reports connected log viewers.
type ClientCounter interface {
	ClientCount() int
}

// HealthHandler serves the health check endpoint.
type HealthHandler struct {
	hub       ClientCounter
	sessions  SessionStore
	log       *logrus.Logger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler with the given dependencies.
// hub and sessions may be nil.
func NewHealthHandler(hub ClientCounter, sessions SessionStore, log *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		hub:       hub,
		sessions:  sessions,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

// healthResponse is the JSON payload returned by the health endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Sessions      int     `json:"sessions"`
	LogViewers    int     `json:"log_viewers"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.sessions != nil {
		resp.Sessions = h.sessions.Len()
	}

	if h.hub != nil {
		resp.LogViewers = h.hub.ClientCount()
	}

	c.JSON(http.StatusOK, resp)
}
