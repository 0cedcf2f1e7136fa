package config

// CacheConfig selects the read-through cache backend.
type CacheConfig struct {
	TTL           Duration `yaml:"ttl"`
	Backend       string   `yaml:"backend"`
	RedisAddr     string   `yaml:"redis_addr"`
	RedisPassword string   `yaml:"redis_password"`
	RedisDB       int      `yaml:"redis_db"`
}

func defaultCache() CacheConfig {
	return CacheConfig{
		TTL:       defaultCacheTTL,
		Backend:   defaultCacheBackend,
		RedisAddr: defaultRedisAddr,
	}
}

func loadCache(base CacheConfig) CacheConfig {
	return CacheConfig{
		TTL:           durationEnvOrDefault(envCacheTTL, base.TTL),
		Backend:       envOrDefault(envCacheBackend, base.Backend),
		RedisAddr:     envOrDefault(envRedisAddr, base.RedisAddr),
		RedisPassword: envOrDefault(envRedisPassword, base.RedisPassword),
		RedisDB:       intEnvOrDefault(envRedisDB, base.RedisDB),
	}
}
