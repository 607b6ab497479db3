package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates the key is absent. A miss is an expected outcome,
// not a failure; callers fall through to the backing store.
var ErrCacheMiss = errors.New("cache miss")

// IsCacheMiss checks if an error is a cache miss
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

// Cache defines the interface for cache operations (Redis)
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	// Close connection
	Close() error
}
