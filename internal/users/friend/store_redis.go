// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

// Redis implementation of the recommendation cache.
//
// # Volatility
//
// Entries carry a short TTL and are additionally dropped whenever a
// friendship forms, so discovery never shows an existing friend for long.
// Every failure path degrades to a cache miss; the primary store is always
// authoritative.

package friend

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phamduchieu/talkio/internal/platform/constants"
	"github.com/phamduchieu/talkio/internal/platform/ctxutil"
)

// RedisRecommendationCache implements RecommendationCache on go-redis.
type RedisRecommendationCache struct {
	client *redis.Client
}

// NewRecommendationCache creates a Redis-backed recommendation cache.
func NewRecommendationCache(client *redis.Client) *RedisRecommendationCache {
	return &RedisRecommendationCache{client: client}
}

// Get retrieves the cached recommendation list for a user.
func (cache *RedisRecommendationCache) Get(ctx context.Context, userID string) ([]Profile, bool) {
	payload, err := cache.client.Get(ctx, recommendationKey(userID)).Bytes()
	if err != nil {
		// redis.Nil is an ordinary miss; anything else degrades to one.
		if err != redis.Nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "recommendation_cache_get_failed",
				slog.Any("error", err))
		}
		return nil, false
	}

	var profiles []Profile
	if err := json.Unmarshal(payload, &profiles); err != nil {
		// Corrupt entry: drop it and fall through to the store.
		cache.Invalidate(ctx, userID)
		return nil, false
	}

	return profiles, true
}

// Set stores a recommendation list for a limited duration.
func (cache *RedisRecommendationCache) Set(ctx context.Context, userID string, profiles []Profile, ttl time.Duration) {
	payload, err := json.Marshal(profiles)
	if err != nil {
		return
	}

	if err := cache.client.Set(ctx, recommendationKey(userID), payload, ttl).Err(); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "recommendation_cache_set_failed",
			slog.Any("error", err))
	}
}

// Invalidate drops the cached lists for the given users.
func (cache *RedisRecommendationCache) Invalidate(ctx context.Context, userIDs ...string) {
	if len(userIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, recommendationKey(id))
	}

	if err := cache.client.Del(ctx, keys...).Err(); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "recommendation_cache_invalidate_failed",
			slog.Any("error", err))
	}
}

// recommendationKey builds the namespaced cache key for a user.
func recommendationKey(userID string) string {
	return constants.RedisPrefixRecommended + userID
}
