package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rlejr135/band-archive/logger"
	"github.com/rlejr135/band-archive/model"
)

const (
	statsKey = "band_archive:dashboard:stats"
	statsTTL = 30 * time.Second
)

// GetDashboardStats returns the cached dashboard stats, or nil on a miss.
// Cache failures are logged and treated as misses.
func GetDashboardStats(ctx context.Context) *model.DashboardStats {
	if RedisClient == nil {
		return nil
	}

	raw, err := RedisClient.Get(ctx, statsKey).Bytes()
	if err != nil {
		return nil
	}

	var stats model.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		logger.Warn("Failed to decode cached dashboard stats", logger.ErrorField(err))
		return nil
	}
	return &stats
}

// SetDashboardStats stores dashboard stats with a short TTL.
func SetDashboardStats(ctx context.Context, stats *model.DashboardStats) {
	if RedisClient == nil || stats == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		logger.Warn("Failed to encode dashboard stats for cache", logger.ErrorField(err))
		return
	}

	if err := RedisClient.Set(ctx, statsKey, raw, statsTTL).Err(); err != nil {
		logger.Warn("Failed to cache dashboard stats", logger.ErrorField(err))
	}
}

// InvalidateDashboardStats drops the cached stats after a song or practice
// log mutation.
func InvalidateDashboardStats(ctx context.Context) {
	if RedisClient == nil {
		return
	}

	if err := RedisClient.Del(ctx, statsKey).Err(); err != nil {
		logger.Warn("Failed to invalidate dashboard stats cache", logger.ErrorField(err))
	}
}
