package api

import (
	"context"

	"github.com/followscope/followscope/internal/models"
	"github.com/followscope/followscope/internal/session"
)

// GraphAssembler builds a follow graph from seed usernames.
type GraphAssembler interface {
	Assemble(ctx context.Context, seeds []string) (*models.Dataset, error)
}

// SessionStore looks up and creates viewer sessions.
type SessionStore interface {
	GetOrCreate(id string) *session.Session
	Get(id string) (*session.Session, error)
	Len() int
}

// LogSource exposes the buffered log lines.
type LogSource interface {
	Lines() []string
}
