package services

import (
	"context"
	"time"
)

// CacheService is the cache surface repositories depend on. The redis client
// in pkg/cache satisfies it; tests pass nil and repositories fall back to the
// database.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}
