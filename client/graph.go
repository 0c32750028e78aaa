package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// GraphService submits seed usernames.
type GraphService struct {
	c *Client
}

// Data fetches the follow graph for usernames. The server session is
// remembered on the client for later View and Pin calls.
func (s *GraphService) Data(ctx context.Context, usernames ...string) (*GraphData, error) {
	body := map[string]string{"usernames": strings.Join(usernames, ",")}

	var resp GraphData
	if err := s.c.post(ctx, "/api/graph_data", body, &resp); err != nil {
		return nil, err
	}
	if resp.SessionID != "" {
		s.c.setSessionID(resp.SessionID)
	}
	return &resp, nil
}

// SessionService reads and annotates a session's graph.
type SessionService struct {
	c *Client
}

func sessionPath(id string) string {
	return "/api/sessions/" + url.PathEscape(id)
}

// View reslices the session's graph at cutoff; nil returns the full graph.
func (s *SessionService) View(ctx context.Context, sessionID string, cutoff *int64) (*View, error) {
	params := url.Values{}
	if cutoff != nil {
		params.Set("cutoff", strconv.FormatInt(*cutoff, 10))
	}

	var resp View
	if err := s.c.get(ctx, sessionPath(sessionID)+"/view", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pin fixes a node's rendered position.
func (s *SessionService) Pin(ctx context.Context, sessionID, nodeID string, x, y float64) error {
	return s.c.put(ctx, sessionPath(sessionID)+"/pins/"+url.PathEscape(nodeID), Position{X: x, Y: y}, nil)
}

// Unpin releases a pinned node.
func (s *SessionService) Unpin(ctx context.Context, sessionID, nodeID string) error {
	return s.c.del(ctx, sessionPath(sessionID)+"/pins/"+url.PathEscape(nodeID), nil)
}
