package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// RistrettoStore is the in-process L1.
type RistrettoStore struct {
	c *ristretto.Cache[string, []byte]
}

// NewRistrettoStore sizes the cache for roughly maxItems entries.
func NewRistrettoStore(maxItems int64) (*RistrettoStore, error) {
	if maxItems <= 0 {
		maxItems = 10_000
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxItems * 10,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &RistrettoStore{c: c}, nil
}

func (s *RistrettoStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := s.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set admits value with cost 1 and waits for the write buffer to drain so the entry is
// visible to the next Get.
func (s *RistrettoStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.c.SetWithTTL(key, value, 1, ttl)
	s.c.Wait()
	return nil
}

func (s *RistrettoStore) Delete(_ context.Context, key string) error {
	s.c.Del(key)
	return nil
}

// Close releases the cache goroutines.
func (s *RistrettoStore) Close() {
	s.c.Close()
}
