package models

import (
	"regexp"
	"strings"
)

// MaxUsernameLength caps a single seed username.
const MaxUsernameLength = 64

var usernameSeparators = regexp.MustCompile(`[,\s]+`)

// ParseUsernames splits a comma/whitespace-delimited list into lowercase,
// de-duplicated usernames, preserving first-seen order.
func ParseUsernames(raw string) []string {
	parts := usernameSeparators.Split(raw, -1)
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}

		seen[p] = true
		out = append(out, p)
	}

	return out
}

// GraphDataRequest is the payload for POST /api/graph_data.
type GraphDataRequest struct {
	Usernames string `json:"usernames"`
}

// Seeds validates the request and returns the parsed seed usernames.
func (r *GraphDataRequest) Seeds(maxSeeds int) ([]string, error) {
	seeds := ParseUsernames(r.Usernames)
	if len(seeds) == 0 {
		return nil, ErrNoUsernames
	}

	if maxSeeds > 0 && len(seeds) > maxSeeds {
		return nil, ErrTooManyUsernames
	}

	for _, s := range seeds {
		if len(s) > MaxUsernameLength {
			return nil, ErrFieldTooLong("username", MaxUsernameLength)
		}
	}

	return seeds, nil
}

// GraphDataResponse is the success payload for POST /api/graph_data.
type GraphDataResponse struct {
	SessionID      string         `json:"session_id"`
	GraphStructure GraphStructure `json:"graph_structure"`
	GraphMetrics   *Metrics       `json:"graph_metrics"`
	Timestamps     []int64        `json:"timestamps"`
}

// PinRequest is the payload for pinning a node's rendered position.
type PinRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// Validate checks that both coordinates are present.
func (r *PinRequest) Validate() error {
	if r.X == nil || r.Y == nil {
		return ErrMissingCoordinates
	}

	return nil
}
