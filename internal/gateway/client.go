package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ahump20/blaze-data-gateway/internal/cache"
	"github.com/ahump20/blaze-data-gateway/internal/config"
	"github.com/ahump20/blaze-data-gateway/internal/logging"
	"github.com/ahump20/blaze-data-gateway/internal/metrics"
	"github.com/ahump20/blaze-data-gateway/internal/ratelimit"
)

const (
	maxErrorBodyBytes = 512
	maxPayloadBytes   = 8 << 20

	retryBaseDelay   = 250 * time.Millisecond
	retryMaxJitter   = 250 * time.Millisecond
	rateBaseDelay    = 1000 * time.Millisecond
	rateMaxDelay     = 16 * time.Second
	defaultAttempts  = 3
	defaultHTTPLimit = 10 * time.Second
)

// Options tune a single fetch.
type Options struct {
	ForceRefresh bool              // bypass the cache lookup (the result is still written back)
	TTL          time.Duration     // overrides the provider's default cache TTL when positive
	Headers      map[string]string // extra request headers
}

// Source describes where a payload came from, for observability.
type Source struct {
	Provider    string        `json:"provider"`
	CacheHit    bool          `json:"cacheHit"`
	TTL         time.Duration `json:"ttl"`
	RetrievedAt time.Time     `json:"retrievedAt"`
}

// Result is a successful fetch: raw payload bytes plus provenance.
type Result struct {
	Data   []byte
	Source Source
}

// Doer is the transport contract provider adapters build on. Every adapter
// call goes through it so the cache, rate-limit and retry policy is uniform
// across providers.
type Doer interface {
	Fetch(ctx context.Context, provider, endpoint string, params url.Values, opts Options) (*Result, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues one logical request per Fetch call, layering cache lookup,
// rate-limit wait and bounded retry-with-backoff around the transport.
type Client struct {
	providers map[string]config.ProviderConfig
	cache     cache.Cache
	limits    *ratelimit.Tracker
	metrics   *metrics.Recorder
	logger    *slog.Logger

	transport httpDoer
	sleep     func(ctx context.Context, d time.Duration) error
	jitter    func(max time.Duration) time.Duration
	now       func() time.Time
}

// ClientConfig wires the client's collaborators. Cache and Limits are
// required; Transport defaults to a plain http.Client.
type ClientConfig struct {
	Providers map[string]config.ProviderConfig
	Cache     cache.Cache
	Limits    *ratelimit.Tracker
	Metrics   *metrics.Recorder
	Logger    *slog.Logger
	Transport *http.Client
}

// NewClient constructs a fetch client.
func NewClient(cfg ClientConfig) *Client {
	var transport httpDoer = cfg.Transport
	if cfg.Transport == nil {
		transport = &http.Client{Timeout: defaultHTTPLimit}
	}
	return &Client{
		providers: cfg.Providers,
		cache:     cfg.Cache,
		limits:    cfg.Limits,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		transport: transport,
		sleep:     sleepContext,
		jitter: func(max time.Duration) time.Duration {
			if max <= 0 {
				return 0
			}
			return time.Duration(rand.Int63n(int64(max)))
		},
		now: time.Now,
	}
}

// Fetch resolves one logical request against a provider: cache lookup,
// rate-limit wait, then up to the provider's attempt budget of transport
// calls with backoff. Terminal errors propagate without consuming further
// attempts.
func (c *Client) Fetch(ctx context.Context, provider, endpoint string, params url.Values, opts Options) (*Result, error) {
	cfg, ok := c.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", provider)
	}

	key := cache.BuildKey(provider, endpoint, params)
	ttl := cfg.DefaultTTL
	if opts.TTL > 0 {
		ttl = opts.TTL
	}

	if !opts.ForceRefresh {
		if data, hit := c.cache.Get(key); hit {
			c.metrics.RecordCacheLookup(provider, true)
			return &Result{
				Data: data,
				Source: Source{
					Provider:    provider,
					CacheHit:    true,
					TTL:         ttl,
					RetrievedAt: c.now(),
				},
			}, nil
		}
		c.metrics.RecordCacheLookup(provider, false)
	}

	if wait := c.limits.Wait(provider); wait > 0 {
		c.metrics.RecordRateLimit(provider, wait)
		logging.Info(c.logger, "rate limit wait",
			slog.String(logging.FieldProvider, provider),
			slog.Int64(logging.FieldDurationMS, wait.Milliseconds()),
		)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		data, err := c.attempt(ctx, cfg, endpoint, params, opts)
		if err == nil {
			c.cache.Set(key, data, ttl)
			return &Result{
				Data: data,
				Source: Source{
					Provider:    provider,
					TTL:         ttl,
					RetrievedAt: c.now(),
				},
			}, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !IsRetryable(err) {
			return nil, err
		}
		if attempt == attempts-1 {
			break
		}

		delay := c.backoffDelay(err, attempt)
		logging.Warn(c.logger, "fetch retry",
			slog.String(logging.FieldProvider, provider),
			slog.Int(logging.FieldAttempt, attempt+1),
			slog.Int64(logging.FieldDurationMS, delay.Milliseconds()),
			"error", err,
		)
		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return nil, sleepErr
		}
	}

	return nil, fmt.Errorf("%s: all %d attempts failed: %w", provider, attempts, lastErr)
}

// backoffDelay computes the sleep before the next attempt. 429s follow the
// rate-limit schedule without jitter; other retryable failures use
// exponential backoff with jitter to avoid synchronized retry storms.
func (c *Client) backoffDelay(err error, attempt int) time.Duration {
	if IsRateLimited(err) {
		delay := rateBaseDelay << uint(attempt)
		if delay > rateMaxDelay {
			delay = rateMaxDelay
		}
		return delay
	}
	return retryBaseDelay<<uint(attempt) + c.jitter(retryMaxJitter)
}

// attempt issues exactly one transport call and classifies the outcome.
func (c *Client) attempt(ctx context.Context, cfg config.ProviderConfig, endpoint string, params url.Values, opts Options) ([]byte, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPLimit
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := c.buildRequest(attemptCtx, cfg, endpoint, params, opts)
	if err != nil {
		return nil, err
	}

	start := c.now()
	resp, err := c.transport.Do(req)
	c.metrics.RecordProviderAttempt(cfg.Name, c.now().Sub(start), err)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() == context.DeadlineExceeded {
			return nil, &TimeoutError{Provider: cfg.Name, Endpoint: endpoint, Err: err}
		}
		return nil, &TransportError{Provider: cfg.Name, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.recordRateHeaders(cfg.Name, resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &HTTPError{
			Provider: cfg.Name,
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, &TransportError{Provider: cfg.Name, Endpoint: endpoint, Err: err}
	}
	return data, nil
}

func (c *Client) buildRequest(ctx context.Context, cfg config.ProviderConfig, endpoint string, params url.Values, opts Options) (*http.Request, error) {
	target := cfg.BaseURL + "/" + strings.TrimPrefix(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range cfg.Headers {
		req.Header.Set(key, value)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

// recordRateHeaders feeds the tracker from X-RateLimit-* / Retry-After
// headers. Responses without them leave prior state untouched.
func (c *Client) recordRateHeaders(provider string, resp *http.Response) {
	limit, hasLimit := headerInt(resp, "X-RateLimit-Limit")
	remaining, hasRemaining := headerInt(resp, "X-RateLimit-Remaining")
	resetAt, hasReset := headerReset(resp, c.now())

	if resp.StatusCode == http.StatusTooManyRequests && !hasReset {
		if retryAfter, ok := headerInt(resp, "Retry-After"); ok {
			resetAt = c.now().Add(time.Duration(retryAfter) * time.Second)
			hasReset = true
			if !hasRemaining {
				remaining, hasRemaining = 0, true
			}
		}
	}

	if !hasRemaining && !hasReset {
		return
	}
	if !hasLimit {
		if prior, ok := c.limits.Snapshot(provider); ok {
			limit = prior.Limit
		}
	}
	if !hasReset {
		if prior, ok := c.limits.Snapshot(provider); ok {
			resetAt = prior.ResetAt
		}
	}
	c.limits.Record(provider, limit, remaining, resetAt)
}

func headerInt(resp *http.Response, name string) (int, bool) {
	raw := resp.Header.Get(name)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}

// headerReset parses X-RateLimit-Reset as either a unix timestamp or a
// delta in seconds, the two conventions seen across upstream vendors.
func headerReset(resp *http.Response, now time.Time) (time.Time, bool) {
	raw := resp.Header.Get("X-RateLimit-Reset")
	if raw == "" {
		return time.Time{}, false
	}
	val, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || val < 0 {
		return time.Time{}, false
	}
	if val > 1_000_000_000 {
		return time.Unix(val, 0), true
	}
	return now.Add(time.Duration(val) * time.Second), true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
