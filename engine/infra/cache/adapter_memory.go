package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// MemoryAdapter implements KV on an in-process ristretto cache. Entries are
// costed at one each, so MaxEntries bounds the item count.
type MemoryAdapter struct {
	cache *ristretto.Cache[string, []byte]
}

func NewMemoryAdapter(maxEntries int64) (*MemoryAdapter, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("max entries must be positive")
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
		// Cost is the entry count, not the byte size.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &MemoryAdapter{cache: c}, nil
}

func (a *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := a.cache.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Set waits for the write buffer so a following Get observes the value.
func (a *MemoryAdapter) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	a.cache.SetWithTTL(key, value, 1, ttl)
	a.cache.Wait()
	return nil
}

func (a *MemoryAdapter) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		a.cache.Del(key)
	}
	return nil
}

func (a *MemoryAdapter) Close() {
	a.cache.Close()
}
