package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/coder/websocket"
)

// LogService reads the server's relayed log lines.
type LogService struct {
	c *Client
}

// List returns the buffered backlog, oldest first.
func (s *LogService) List(ctx context.Context) ([]string, error) {
	var resp struct {
		Lines []string `json:"lines"`
	}
	if err := s.c.get(ctx, "/api/logs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Lines, nil
}

// Tail streams log lines to fn until ctx is cancelled, the server closes
// the stream, or fn returns an error. The backlog is delivered first.
func (s *LogService) Tail(ctx context.Context, fn func(line string) error) error {
	conn, _, err := websocket.Dial(ctx, wsURL(s.c.baseURL)+"/ws/logs", &websocket.DialOptions{
		HTTPClient: s.c.httpClient,
	})
	if err != nil {
		return fmt.Errorf("dial log stream: %w", err)
	}
	defer conn.CloseNow() //nolint:errcheck // best-effort close on teardown

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read log stream: %w", err)
		}

		if err := fn(string(data)); err != nil {
			conn.Close(websocket.StatusNormalClosure, "") //nolint:errcheck // best-effort
			return err
		}
	}
}

func wsURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return base
	}
}
