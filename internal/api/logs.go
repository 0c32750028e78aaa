package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LogsHandler serves the buffered log backlog.
type LogsHandler struct {
	source LogSource
}

// NewLogsHandler creates a LogsHandler reading from source.
func NewLogsHandler(source LogSource) *LogsHandler {
	return &LogsHandler{source: source}
}

// List handles GET /api/logs.
func (h *LogsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"lines": h.source.Lines()})
}
