package store

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps snapshots in process memory. Suitable for tests and
// single-instance deployments; state does not survive a restart.
type MemoryStore struct {
	c *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		c: gocache.New(gocache.NoExpiration, 0),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, found := m.c.Get(key)
	if !found {
		return nil, ErrNotFound
	}
	b, ok := val.([]byte)
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers cannot mutate the stored snapshot in place.
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	b := make([]byte, len(value))
	copy(b, value)
	m.c.Set(key, b, gocache.NoExpiration)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
