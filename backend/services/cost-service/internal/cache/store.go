// Package cache keeps device wattage lookups close to the cost service: an in-process
// ristretto L1 in front of an optional shared redis L2.
package cache

import (
	"context"
	"time"
)

// Store is a byte-valued cache with per-entry TTL.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
