package config

import (
	"strings"
	"time"
)

const (
	envSportsDataIOBaseURL = "SPORTSDATAIO_BASE_URL"
	envSportsDataIOAPIKey  = "SPORTSDATAIO_API_KEY"
	envESPNBaseURL         = "ESPN_BASE_URL"
	envMLBStatsBaseURL     = "MLBSTATS_BASE_URL"

	defaultSportsDataIOBaseURL = "https://api.sportsdata.io"
	defaultESPNBaseURL         = "https://site.api.espn.com"
	defaultMLBStatsBaseURL     = "https://statsapi.mlb.com"

	defaultProviderTimeout  = 8 * time.Second
	defaultProviderAttempts = 3
)

// ProviderConfig describes how the gateway reaches one upstream provider.
// Instances are built once by Load and treated as immutable afterwards.
type ProviderConfig struct {
	Name        string
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	DefaultTTL  time.Duration
	Headers     map[string]string
}

func loadProvider(name, baseURLEnv, defaultBaseURL, apiKeyEnv string, defaultTTL time.Duration, headers map[string]string) ProviderConfig {
	prefix := strings.ToUpper(name)
	return ProviderConfig{
		Name:        name,
		BaseURL:     strings.TrimSuffix(envOrDefault(baseURLEnv, defaultBaseURL), "/"),
		APIKey:      envOrDefault(apiKeyEnv, ""),
		Timeout:     durationEnvOrDefault(prefix+"_TIMEOUT", defaultProviderTimeout),
		MaxAttempts: intEnvOrDefault(prefix+"_MAX_RETRIES", defaultProviderAttempts),
		DefaultTTL:  durationEnvOrDefault(prefix+"_CACHE_TTL", defaultTTL),
		Headers:     headers,
	}
}

func loadProviders() map[string]ProviderConfig {
	sdio := loadProvider("sportsdataio", envSportsDataIOBaseURL, defaultSportsDataIOBaseURL, envSportsDataIOAPIKey, TTLScheduled, nil)
	if sdio.APIKey != "" {
		// SportsDataIO authenticates with a subscription header, not a query param.
		sdio.Headers = map[string]string{"Ocp-Apim-Subscription-Key": sdio.APIKey}
	}

	return map[string]ProviderConfig{
		"sportsdataio": sdio,
		"espn":         loadProvider("espn", envESPNBaseURL, defaultESPNBaseURL, "", TTLLive, nil),
		"mlbstats":     loadProvider("mlbstats", envMLBStatsBaseURL, defaultMLBStatsBaseURL, "", TTLScheduled, nil),
	}
}

func loadProviderOrder() []string {
	raw := envOrDefault(envProviderOrder, defaultProviderOrder)
	parts := strings.Split(raw, ",")
	order := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(p)); trimmed != "" {
			order = append(order, trimmed)
		}
	}
	if len(order) == 0 {
		return strings.Split(defaultProviderOrder, ",")
	}
	return order
}
