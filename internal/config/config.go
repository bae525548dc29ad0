package config

import "time"

// Config holds runtime configuration for the gateway.
type Config struct {
	Port            string
	RefreshInterval Duration
	RefreshEnabled  bool
	ProviderOrder   []string
	Providers       map[string]ProviderConfig
	AdminToken      string
	Breaker         BreakerConfig
	Cache           CacheConfig
	Metrics         MetricsConfig
}

// BreakerConfig controls per-provider circuit breaker behavior.
type BreakerConfig struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		RefreshEnabled:  boolEnvOrDefault(envRefreshEnabled, true),
		ProviderOrder:   loadProviderOrder(),
		Providers:       loadProviders(),
		AdminToken:      envOrDefault(envAdminToken, ""),
		Breaker: BreakerConfig{
			FailureThreshold: intEnvOrDefault(envBreakerThreshold, defaultBreakerThreshold),
			ResetTimeout:     durationEnvOrDefault(envBreakerReset, defaultBreakerReset),
		},
		Cache:   loadCache(),
		Metrics: loadMetrics(),
	}
}
