// Package cache holds the Redis cache for dashboard aggregates. The
// identity path is deliberately uncached; only the counting queries behind
// the dashboard endpoint go through here.
package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/dashon1/creatorflow-studio/internal/config"
)

// StatsCache caches marshalled dashboard payloads for a short TTL. A nil
// Redis client turns every Get into a miss and every Set into a no-op, so
// the service works unchanged without Redis.
type StatsCache struct {
	cfg config.StatsCacheConfig
	rdb *redis.Client
}

func NewStatsCache(cfg config.StatsCacheConfig, rdb *redis.Client) *StatsCache {
	return &StatsCache{cfg: cfg, rdb: rdb}
}

func (s *StatsCache) enabled() bool {
	return s != nil && s.cfg.Enabled && s.cfg.TTL > 0 && s.rdb != nil
}

// Get unmarshals a cached payload into dst and reports whether it was
// found. Corrupt entries are dropped and reported as misses.
func (s *StatsCache) Get(ctx context.Context, key string, dst interface{}) bool {
	if !s.enabled() {
		return false
	}
	raw, err := s.rdb.Get(ctx, s.cfg.Prefix+":"+key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.rdb.Del(ctx, s.cfg.Prefix+":"+key)
		return false
	}
	return true
}

// Set stores v under key for the configured TTL. Failures are ignored:
// the cache is best effort.
func (s *StatsCache) Set(ctx context.Context, key string, v interface{}) {
	if !s.enabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, s.cfg.Prefix+":"+key, raw, s.cfg.TTL).Err()
}

// CountEvent bumps a per-event-type counter. Best effort, used by the
// analytics track endpoint for cheap live tallies alongside the durable
// rows in MySQL.
func (s *StatsCache) CountEvent(ctx context.Context, eventType string) {
	if !s.enabled() {
		return
	}
	_ = s.rdb.Incr(ctx, s.cfg.Prefix+":events:"+eventType).Err()
}
