package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/followscope/followscope/internal/farcaster"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

// mockUpstream records calls and returns configured responses.
type mockUpstream struct {
	mu    sync.Mutex
	calls []string

	lookupFID      func(ctx context.Context, username string) (uint64, error)
	profilePicture func(ctx context.Context, fid uint64) (string, error)
	follows        func(ctx context.Context, fid uint64) ([]farcaster.Follow, error)
}

func (m *mockUpstream) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockUpstream) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}

	return n
}

func (m *mockUpstream) LookupFID(ctx context.Context, username string) (uint64, error) {
	m.record("LookupFID")
	return m.lookupFID(ctx, username)
}

func (m *mockUpstream) ProfilePicture(ctx context.Context, fid uint64) (string, error) {
	m.record("ProfilePicture")
	if m.profilePicture == nil {
		return "", nil
	}

	return m.profilePicture(ctx, fid)
}

func (m *mockUpstream) Follows(ctx context.Context, fid uint64) ([]farcaster.Follow, error) {
	m.record("Follows")
	return m.follows(ctx, fid)
}

// fixedUpstream serves lookups from maps.
func fixedUpstream(fids map[string]uint64, follows map[uint64][]farcaster.Follow) *mockUpstream {
	return &mockUpstream{
		lookupFID: func(_ context.Context, username string) (uint64, error) {
			fid, ok := fids[username]
			if !ok {
				return 0, &farcaster.APIError{Endpoint: "transfers/current", StatusCode: 404}
			}

			return fid, nil
		},
		profilePicture: func(_ context.Context, fid uint64) (string, error) {
			return "https://img.example/" + farcasterID(fid) + ".png", nil
		},
		follows: func(_ context.Context, fid uint64) ([]farcaster.Follow, error) {
			return follows[fid], nil
		},
	}
}
