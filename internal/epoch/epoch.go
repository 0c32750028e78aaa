// Package epoch converts Farcaster network timestamps to Unix time.
package epoch

import "time"

// FarcasterEpoch is 2021-01-01T00:00:00Z in Unix seconds. Hub messages carry
// timestamps as seconds since this instant.
const FarcasterEpoch int64 = 1609459200

// DisplayLayout mirrors the en-US locale string used by the viewer.
const DisplayLayout = "1/2/2006, 3:04:05 PM"

// Normalize converts a Farcaster timestamp to Unix seconds.
func Normalize(raw int64) int64 {
	return raw + FarcasterEpoch
}

// ToTime converts a Farcaster timestamp to a UTC time.Time.
func ToTime(raw int64) time.Time {
	return time.Unix(Normalize(raw), 0).UTC()
}

// Format renders Unix seconds for display in UTC. A nil t yields "".
func Format(t *int64) string {
	return FormatIn(t, time.UTC)
}

// FormatIn renders Unix seconds for display in loc. A nil t yields "".
func FormatIn(t *int64, loc *time.Location) string {
	if t == nil {
		return ""
	}

	if loc == nil {
		loc = time.UTC
	}

	return time.Unix(*t, 0).In(loc).Format(DisplayLayout)
}
