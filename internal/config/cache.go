package config

import "time"

// CacheConfig controls the gateway cache layers.
type CacheConfig struct {
	RedisURL      string        // empty disables the shared Redis tier
	SweepInterval time.Duration // zero disables the background sweep
}

func loadCache() CacheConfig {
	return CacheConfig{
		RedisURL:      envOrDefault(envRedisURL, ""),
		SweepInterval: durationEnvOrDefault(envCacheSweep, defaultCacheSweep),
	}
}
