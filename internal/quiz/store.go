package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultSessionTTL bounds how long an unfinished session survives. Sessions
// are transient: losing one costs the user a quiz run, nothing more.
const DefaultSessionTTL = 30 * time.Minute

// Store persists quiz sessions for their TTL. Both backends keep the session
// as one JSON value so they are interchangeable.
type Store interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
}

// MemoryStore keeps sessions in process memory. It is the default backend
// and the right one for a single-instance deployment.
type MemoryStore struct {
	ttl   time.Duration
	cache *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemoryStore{ttl: ttl, cache: gocache.New(ttl, ttl)}
}

func (m *MemoryStore) Put(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	m.cache.Set(s.ID, data, m.ttl)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (Session, error) {
	v, found := m.cache.Get(id)
	if !found {
		return Session{}, ErrSessionNotFound
	}
	var s Session
	if err := json.Unmarshal(v.([]byte), &s); err != nil {
		return Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return s, nil
}
