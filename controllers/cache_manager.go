package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"purchase-service/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	OverviewCachePrefix = "analytics:overview:v:"
	CacheVersionPrefix  = "analytics:version:"
)

// AnalyticsCache caches computed overviews in Redis. Invalidation bumps a
// per-user version key instead of deleting entries, so stale overviews simply
// stop being addressable. A nil Redis client disables caching entirely.
type AnalyticsCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewAnalyticsCache(rdb *redis.Client) *AnalyticsCache {
	return &AnalyticsCache{
		redis: rdb,
		ttl:   DefaultCacheTTL,
	}
}

// GetOverview retrieves a cached overview for the user and raw range params.
func (ac *AnalyticsCache) GetOverview(ctx context.Context, userID, from, to string) (*models.AnalyticsOverview, bool) {
	if ac.redis == nil {
		return nil, false
	}

	version, err := ac.getVersion(ctx, userID)
	if err != nil {
		return nil, false
	}

	cached, err := ac.redis.Get(ctx, ac.overviewKey(userID, version, from, to)).Result()
	if err != nil {
		return nil, false
	}

	var overview models.AnalyticsOverview
	if err := json.Unmarshal([]byte(cached), &overview); err != nil {
		zap.L().Warn("Failed to unmarshal cached overview", zap.Error(err))
		return nil, false
	}
	return &overview, true
}

// SetOverviewAsync caches an overview without blocking the response.
func (ac *AnalyticsCache) SetOverviewAsync(userID, from, to string, overview *models.AnalyticsOverview) {
	if ac.redis == nil {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := ac.getVersion(bgCtx, userID)
		if err != nil {
			return
		}

		payload, err := json.Marshal(overview)
		if err != nil {
			zap.L().Warn("Failed to marshal overview for cache", zap.Error(err))
			return
		}

		if err := ac.redis.Set(bgCtx, ac.overviewKey(userID, version, from, to), payload, ac.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache overview", zap.Error(err))
		}
	}()
}

// InvalidateUser drops every cached overview for one user by bumping the
// version.
func (ac *AnalyticsCache) InvalidateUser(ctx context.Context, userID string) {
	if ac.redis == nil {
		return
	}

	if err := ac.redis.Incr(ctx, CacheVersionPrefix+userID).Err(); err != nil {
		zap.L().Warn("Failed to invalidate overview cache", zap.String("user_id", userID), zap.Error(err))
	}
}

func (ac *AnalyticsCache) getVersion(ctx context.Context, userID string) (int64, error) {
	key := CacheVersionPrefix + userID
	version, err := ac.redis.Get(ctx, key).Int64()
	if err == redis.Nil {
		if err := ac.redis.Set(ctx, key, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return version, err
}

func (ac *AnalyticsCache) overviewKey(userID string, version int64, from, to string) string {
	return fmt.Sprintf("%s%d:u:%s:f:%s:t:%s", OverviewCachePrefix, version, userID, from, to)
}
