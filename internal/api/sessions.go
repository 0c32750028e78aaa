package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/followscope/followscope/internal/models"
	"github.com/followscope/followscope/internal/session"
)

// SessionHandler serves time-sliced views and pins for a session.
type SessionHandler struct {
	sessions SessionStore
	log      *logrus.Logger
}

// NewSessionHandler creates a SessionHandler with the given store and logger.
func NewSessionHandler(sessions SessionStore, log *logrus.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, log: log}
}

func (h *SessionHandler) lookup(c *gin.Context) *session.Session {
	id := c.Param("id")
	if !sessionIDPattern.MatchString(id) {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid session id")

		return nil
	}

	sess, err := h.sessions.Get(id)
	if err != nil {
		respondDomainError(c, err)

		return nil
	}

	return sess
}

// View handles GET /api/sessions/:id/view.
func (h *SessionHandler) View(c *gin.Context) {
	var cutoff *int64

	if raw := c.Query("cutoff"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "cutoff must be a unix timestamp")

			return
		}

		cutoff = &v
	}

	sess := h.lookup(c)
	if sess == nil {
		return
	}

	view, err := sess.View(cutoff)
	if err != nil {
		h.log.WithError(err).WithField("session_id", sess.ID).Error("rendering view")

		if !respondDomainError(c, err) {
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, view)
}

// Pin handles PUT /api/sessions/:id/pins/:node.
func (h *SessionHandler) Pin(c *gin.Context) {
	var req models.PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	sess := h.lookup(c)
	if sess == nil {
		return
	}

	node := models.NodeID(c.Param("node"))
	if err := sess.Pin(node, *req.X, *req.Y); err != nil {
		if !respondDomainError(c, err) {
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.Status(http.StatusNoContent)
}

// Unpin handles DELETE /api/sessions/:id/pins/:node.
func (h *SessionHandler) Unpin(c *gin.Context) {
	sess := h.lookup(c)
	if sess == nil {
		return
	}

	if err := sess.Unpin(models.NodeID(c.Param("node"))); err != nil {
		if !respondDomainError(c, err) {
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.Status(http.StatusNoContent)
}
