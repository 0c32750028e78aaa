// Package models defines data types for follow graphs, snapshots, and metrics.
package models

import (
	"strconv"
)

// NodeID identifies an account in the graph. Farcaster FIDs are rendered as
// decimal strings.
type NodeID string

// FIDNodeID returns the NodeID for a Farcaster FID.
func FIDNodeID(fid uint64) NodeID {
	return NodeID(strconv.FormatUint(fid, 10))
}

// Node represents an account in the follow graph.
type Node struct {
	ID        NodeID `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	// Timestamp is the Unix second at which this account first appears.
	Timestamp int64 `json:"timestamp"`
}
