package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Endpoint is one end of a Link. Payloads may carry either a bare id or an
// already-resolved node object; both decode into an Endpoint and ID narrows
// them to the same NodeID.
type Endpoint struct {
	id   NodeID
	node *Node
}

// Ref builds an Endpoint from a bare id.
func Ref(id NodeID) Endpoint {
	return Endpoint{id: id}
}

// Resolved builds an Endpoint from a node reference.
func Resolved(n *Node) Endpoint {
	return Endpoint{node: n}
}

// ID returns the node id regardless of how the endpoint was expressed.
func (e Endpoint) ID() NodeID {
	if e.node != nil {
		return e.node.ID
	}

	return e.id
}

// Node returns the resolved node, or nil when the endpoint is a bare id.
func (e Endpoint) Node() *Node {
	return e.node
}

// IsZero reports whether the endpoint carries no id.
func (e Endpoint) IsZero() bool {
	return e.ID() == ""
}

// MarshalJSON always emits the bare id.
func (e Endpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(e.ID()))
}

// UnmarshalJSON accepts "123", 123, or {"id": ...}.
func (e *Endpoint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = Endpoint{}
		return nil
	}

	switch data[0] {
	case '{':
		var raw struct {
			ID        json.RawMessage `json:"id"`
			Username  string          `json:"username"`
			AvatarURL string          `json:"avatar_url"`
			Timestamp int64           `json:"timestamp"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decoding endpoint object: %w", err)
		}

		id, err := decodeID(raw.ID)
		if err != nil {
			return err
		}

		*e = Resolved(&Node{ID: id, Username: raw.Username, AvatarURL: raw.AvatarURL, Timestamp: raw.Timestamp})

		return nil
	default:
		id, err := decodeID(data)
		if err != nil {
			return err
		}

		*e = Ref(id)

		return nil
	}
}

func decodeID(data json.RawMessage) (NodeID, error) {
	if len(data) == 0 {
		return "", ErrMissingEndpoint
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return NodeID(s), nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", fmt.Errorf("endpoint id must be a string or number: %w", err)
	}

	return NodeID(n.String()), nil
}

// Link is a directed follow relationship observed at Timestamp (Unix seconds).
type Link struct {
	Source    Endpoint `json:"source"`
	Target    Endpoint `json:"target"`
	Timestamp int64    `json:"timestamp"`
}

// NewLink builds a Link between two bare ids.
func NewLink(source, target NodeID, ts int64) Link {
	return Link{Source: Ref(source), Target: Ref(target), Timestamp: ts}
}

// Validate checks that both endpoints carry an id.
func (l *Link) Validate() error {
	if l.Source.IsZero() {
		return fmt.Errorf("source: %w", ErrMissingEndpoint)
	}

	if l.Target.IsZero() {
		return fmt.Errorf("target: %w", ErrMissingEndpoint)
	}

	return nil
}
