package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ahump20/blaze-data-gateway/internal/logging"
)

const redisOpTimeout = 500 * time.Millisecond

// Layered reads through a local memory tier into an optional shared Redis
// tier. Redis failures never propagate: the gateway degrades to memory-only
// and keeps serving, matching the original deployment's behavior when the
// shared cache was unreachable.
type Layered struct {
	memory *Memory
	client *redis.Client
	logger *slog.Logger
}

// NewLayered wires the memory tier to a Redis client. A nil client yields a
// memory-only cache. The connection is probed once; an unreachable Redis is
// logged and the tier disabled for the process lifetime.
func NewLayered(memory *Memory, client *redis.Client, logger *slog.Logger) *Layered {
	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			logging.Warn(logger, "redis unreachable, running memory-only cache", "error", err)
			client = nil
		}
	}
	return &Layered{memory: memory, client: client, logger: logger}
}

func (l *Layered) Get(key string) ([]byte, bool) {
	if value, ok := l.memory.Get(key); ok {
		return value, true
	}
	if l.client == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	value, err := l.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logging.Debug(l.logger, "redis get failed", logging.FieldCacheKey, key, "error", err)
		}
		return nil, false
	}

	// Promote into the memory tier using the remaining shared TTL.
	if ttl, err := l.client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		l.memory.Set(key, value, ttl)
	}
	return value, true
}

func (l *Layered) Set(key string, value []byte, ttl time.Duration) {
	l.memory.Set(key, value, ttl)
	if l.client == nil || ttl <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := l.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logging.Debug(l.logger, "redis set failed", logging.FieldCacheKey, key, "error", err)
	}
}

func (l *Layered) Clear(prefix string) int {
	removed := l.memory.Clear(prefix)
	if l.client == nil {
		return removed
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	pattern := prefix + "*"
	iter := l.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			logging.Debug(l.logger, "redis del failed", logging.FieldCacheKey, iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		logging.Debug(l.logger, "redis scan failed", "error", err)
	}
	return removed
}

// Stats reports the memory tier only; the shared tier has no cheap way to
// group keys by provider without a full scan.
func (l *Layered) Stats() Stats {
	return l.memory.Stats()
}
