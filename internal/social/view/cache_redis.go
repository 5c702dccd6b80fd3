// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/taibuivan/vidora/internal/platform/constants"
)

// anonymousSegment replaces the empty viewer id in cache keys.
const anonymousSegment = "anon"

// CacheConfig tunes the Redis seen-cache and its circuit breaker.
type CacheConfig struct {
	// TTL is how long a recorded view is remembered.
	TTL time.Duration

	// OpTimeout bounds each Redis round trip.
	OpTimeout time.Duration

	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration

	// MinRequests and FailureRatio decide when the breaker opens.
	MinRequests  uint32
	FailureRatio float64
}

// DefaultCacheConfig returns production defaults for a given TTL.
func DefaultCacheConfig(ttl time.Duration) CacheConfig {
	if ttl <= 0 {
		ttl = constants.DefaultViewSeenTTL
	}
	return CacheConfig{
		TTL:            ttl,
		OpTimeout:      constants.ViewCacheTimeout,
		BreakerTimeout: 10 * time.Second,
		MinRequests:    5,
		FailureRatio:   0.5,
	}
}

// RedisSeenCache implements [SeenCache] on Redis behind a circuit breaker.
//
// While the breaker is open every call fails fast with [gobreaker.ErrOpenState]
// and the caller falls back to the ledger.
type RedisSeenCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[bool]
	config  CacheConfig
}

// NewRedisSeenCache constructs a seen-cache on an existing client.
func NewRedisSeenCache(client *redis.Client, config CacheConfig, logger *slog.Logger) *RedisSeenCache {
	settings := gobreaker.Settings{
		Name:        "view-seen-cache",
		MaxRequests: 1,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= config.MinRequests && failureRatio >= config.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("view_cache_breaker_state",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		// A caller abandoning its request says nothing about Redis health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &RedisSeenCache{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[bool](settings),
		config:  config,
	}
}

// Seen reports whether key was recorded within the TTL.
func (cache *RedisSeenCache) Seen(ctx context.Context, key Key) (bool, error) {
	return cache.breaker.Execute(func() (bool, error) {
		opCtx, cancel := context.WithTimeout(ctx, cache.config.OpTimeout)
		defer cancel()

		n, err := cache.client.Exists(opCtx, cacheKey(key)).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	})
}

// Remember marks key as recorded for the configured TTL.
func (cache *RedisSeenCache) Remember(ctx context.Context, key Key) error {
	_, err := cache.breaker.Execute(func() (bool, error) {
		opCtx, cancel := context.WithTimeout(ctx, cache.config.OpTimeout)
		defer cancel()

		return true, cache.client.Set(opCtx, cacheKey(key), 1, cache.config.TTL).Err()
	})
	return err
}

// State exposes the breaker state for health reporting.
func (cache *RedisSeenCache) State() gobreaker.State {
	return cache.breaker.State()
}

// cacheKey builds view:seen:<video>:<viewer|anon>:<session>.
func cacheKey(key Key) string {
	viewer := key.ViewerID
	if viewer == "" {
		viewer = anonymousSegment
	}
	return constants.RedisPrefixViewSeen + key.VideoID + ":" + viewer + ":" + key.SessionID
}
