// Package cache provides the key-value store the rate pipeline uses for
// response caching, auth tokens and the rate-limit flag. Implementations must
// be safe for concurrent use; reads and writes are atomic per key and no
// cross-key transactions exist.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key-value store. Get reports whether an unexpired value
// exists for the key.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
