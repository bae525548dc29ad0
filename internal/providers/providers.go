// Package providers holds the per-vendor adapter packages and the decode
// helper they share. Adapters fetch through the gateway client so every
// provider inherits the same cache, retry and rate-limit policy, and keep
// all upstream-shape knowledge to themselves.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/ahump20/blaze-data-gateway/internal/config"
	"github.com/ahump20/blaze-data-gateway/internal/gateway"
	"github.com/ahump20/blaze-data-gateway/internal/timeutil"
)

// FetchJSON fetches an endpoint through the shared client and decodes the
// payload into v. The returned source tells callers whether the bytes came
// from cache.
func FetchJSON(ctx context.Context, d gateway.Doer, provider, endpoint string, params url.Values, opts gateway.Options, v any) (gateway.Source, error) {
	result, err := d.Fetch(ctx, provider, endpoint, params, opts)
	if err != nil {
		return gateway.Source{}, err
	}
	if err := json.Unmarshal(result.Data, v); err != nil {
		return result.Source, fmt.Errorf("%s: decoding %s: %w", provider, endpoint, err)
	}
	return result.Source, nil
}

// TTLForDate picks the cache lifetime for a date-scoped scoreboard payload.
// Today's slate can still change, past days are settled, future days only
// move on schedule updates.
func TTLForDate(date string, now time.Time) time.Duration {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return config.TTLLive
	}
	today := timeutil.FormatDate(now)
	switch {
	case date == today:
		return config.TTLLive
	case day.Before(now):
		return config.TTLFinal
	default:
		return config.TTLScheduled
	}
}
