package cache

import (
	"context"
	"time"
)

// Cache is the read-through cache used by the repositories. Values are
// stored as JSON; Get reports whether the key was present so a miss is
// not an error.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
