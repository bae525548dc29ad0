package config

import "time"

const (
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envRefreshEnabled  = "REFRESH_ENABLED"
	envProviderOrder   = "PROVIDER_ORDER"
	envAdminToken      = "ADMIN_TOKEN"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envRedisURL        = "REDIS_URL"
	envCacheSweep      = "CACHE_SWEEP_INTERVAL"

	envBreakerThreshold = "BREAKER_FAILURE_THRESHOLD"
	envBreakerReset     = "BREAKER_RESET_TIMEOUT"

	defaultPort = "4000"
	// Conservative default refresh interval to respect upstream quotas.
	defaultRefreshInterval = 2 * Duration(time.Minute)
	defaultProviderOrder   = "sportsdataio,espn,mlbstats"
	defaultMetricsPort     = "9090"
	defaultCacheSweep      = 5 * Duration(time.Minute)

	defaultBreakerThreshold = 3
	defaultBreakerReset     = 60 * Duration(time.Second)
)

// Cache TTL tiers. Live data churns fast; reference data barely moves.
const (
	TTLLive      = 30 * Duration(time.Second)
	TTLScheduled = 5 * Duration(time.Minute)
	TTLFinal     = 1 * Duration(time.Hour)
	TTLReference = 24 * Duration(time.Hour)
)
