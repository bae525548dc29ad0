package cache

import (
	"net/url"
	"strings"
)

// KeySeparator splits the provider segment from the rest of a cache key.
// Stats and Clear rely on it to group entries by provider.
const KeySeparator = ":"

// BuildKey produces a deterministic cache key from provider, endpoint and
// params. url.Values.Encode sorts by key, so equal param sets always yield
// the same string regardless of insertion order.
func BuildKey(provider, endpoint string, params url.Values) string {
	var b strings.Builder
	b.WriteString(provider)
	b.WriteString(KeySeparator)
	b.WriteString(strings.TrimPrefix(endpoint, "/"))
	if len(params) > 0 {
		b.WriteString("?")
		b.WriteString(params.Encode())
	}
	return b.String()
}

// providerOf extracts the provider segment from a cache key.
func providerOf(key string) string {
	if idx := strings.Index(key, KeySeparator); idx > 0 {
		return key[:idx]
	}
	return key
}
