package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/followscope/followscope/internal/metrics"
	"github.com/followscope/followscope/internal/models"
)

// Store defaults.
const (
	DefaultMaxSessions = 1000
	DefaultTTL         = 30 * time.Minute
)

// Store is a bounded in-memory session table. Least recently used sessions
// are evicted beyond the size limit and idle ones expire after the TTL.
type Store struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *Session]
}

// NewStore creates a Store. Non-positive arguments use the defaults.
func NewStore(maxSessions int, ttl time.Duration) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	onEvict := func(string, *Session) {
		metrics.ActiveSessions.Dec()
	}

	return &Store{cache: expirable.NewLRU[string, *Session](maxSessions, onEvict, ttl)}
}

// GetOrCreate returns the session for id, creating it if needed. An empty
// id gets a fresh random one.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}

	if s, ok := st.cache.Get(id); ok {
		st.cache.Add(id, s)
		return s
	}

	s := newSession(id)
	st.cache.Add(id, s)
	metrics.ActiveSessions.Inc()

	return s
}

// Get returns an existing session and refreshes its expiry.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.cache.Get(id)
	if !ok {
		return nil, models.ErrSessionNotFound
	}

	st.cache.Add(id, s)

	return s, nil
}

// Remove drops a session.
func (st *Store) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.cache.Remove(id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	return st.cache.Len()
}
