package cache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Closer is a Cache that owns background resources.
type Closer interface {
	Cache
	io.Closer
}

// New builds the configured backend. Unknown backends are an error so a typo
// does not silently fall back to memory.
func New(ctx context.Context, backend string, redisCfg RedisConfig, janitorInterval time.Duration, logger *slog.Logger) (Closer, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		return NewMemoryCache(janitorInterval), nil
	case BackendRedis:
		return NewRedisCache(ctx, redisCfg, logger)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
