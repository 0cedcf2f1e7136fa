// Package cache stores encoded values with a time-to-live.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache holds opaque byte values with per-entry expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Flush removes every entry owned by this cache.
	Flush(ctx context.Context) error
	Stats() Stats
}

// Stats counts cache activity since construction.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Sets      int64 `json:"sets"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)
