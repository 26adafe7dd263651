// Package cache provides byte-level caching for conversion results.
//
// The server caches decoded graphs keyed by a hash of the source document,
// so repeated uploads of the same file skip the conversion entirely. Three
// backends are provided: [FileCache] for single-host deployments,
// [RedisCache] for shared deployments, and [NullCache] to disable caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrCacheMiss is returned by helpers that treat a miss as an error.
// [Cache.Get] itself reports misses through its boolean return.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores opaque byte values under string keys with optional TTLs.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data as a 64-character hex
// string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ConversionKey builds the cache key for a conversion of the given source
// document. The full hash is kept to avoid collisions between models.
func ConversionKey(source []byte) string {
	return "convert:" + Hash(source)
}
