package api

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/followscope/followscope/internal/graph"
	"github.com/followscope/followscope/internal/models"
)

// SessionHeader carries the viewer session id on requests and responses.
const SessionHeader = "X-Session-ID"

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// GraphHandler serves graph submission.
type GraphHandler struct {
	assembler    GraphAssembler
	sessions     SessionStore
	maxUsernames int
	log          *logrus.Logger
}

// NewGraphHandler creates a GraphHandler with the given dependencies.
func NewGraphHandler(assembler GraphAssembler, sessions SessionStore, maxUsernames int, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{assembler: assembler, sessions: sessions, maxUsernames: maxUsernames, log: log}
}

// GraphData handles POST /api/graph_data.
func (h *GraphHandler) GraphData(c *gin.Context) {
	var req models.GraphDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	seeds, err := req.Seeds(h.maxUsernames)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	sessionID := c.GetHeader(SessionHeader)
	if sessionID != "" && !sessionIDPattern.MatchString(sessionID) {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid session id")

		return
	}

	sess := h.sessions.GetOrCreate(sessionID)
	c.Header(SessionHeader, sess.ID)

	if err := sess.Begin(); err != nil {
		respondDomainError(c, err)

		return
	}

	log := h.log.WithFields(logrus.Fields{"session_id": sess.ID, "seeds": len(seeds)})

	ds, err := h.assembler.Assemble(c.Request.Context(), seeds)
	if err != nil {
		sess.Abort()
		log.WithError(err).Warn("graph assembly failed")

		if !respondDomainError(c, err) {
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	m, err := graph.ComputeMetrics(graph.SnapshotAt(ds, graph.Latest(ds.Timestamps)))
	if err != nil {
		sess.Abort()
		log.WithError(err).Error("computing graph metrics")
		respondDomainError(c, err)

		return
	}

	sess.Finish(ds)

	log.WithFields(logrus.Fields{"nodes": m.NumNodes, "edges": m.NumEdges}).Info("graph data served")

	c.JSON(http.StatusOK, models.GraphDataResponse{
		SessionID:      sess.ID,
		GraphStructure: models.GraphStructure{Nodes: ds.Nodes, Links: ds.Links},
		GraphMetrics:   m,
		Timestamps:     ds.Timestamps,
	})
}
