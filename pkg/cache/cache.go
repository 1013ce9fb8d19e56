// Package cache stores synthesized drawings and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// All backends implement [Cache]. [Observed] wraps any of them and reports
// hits, misses and writes to the observability cache hooks.
//
// # Keys
//
// A [Keyer] turns a request into a key. Drawing keys hash the shape, size,
// target, variant and placement options, so changing any of them misses.
// Render keys hash the drawing together with the output options.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.DrawingKey(cache.DrawingKeyOpts{Shape: "cycle", N: 7, K: 9})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/thrackle/pkg/observability"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Observed wraps c so that every lookup and write is reported to the
// cache hooks. The key type passed to the hooks is the key's prefix before
// the first colon.
func Observed(c Cache) Cache {
	return &observed{Cache: c}
}

type observed struct {
	Cache
}

func (o *observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (o *observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := o.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

func keyType(key string) string {
	// Scoped keys carry extra prefixes; the type is the segment right
	// before the hash.
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}
