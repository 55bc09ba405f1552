package cache

import (
	"context"
	"errors"
	"fmt"

	"floodguard/internal/domain/entity"
	"floodguard/internal/domain/model"
	"floodguard/pkg/redis"
)

// CacheName groups assessment keys and selects their TTL from the client
// configuration
const CacheName = "risk-assessments"

// redisAssessmentCache is the redis-backed AssessmentCache
type redisAssessmentCache struct {
	client *redis.Client
	cache  *redis.Cache
}

// NewRedisAssessmentCache creates an assessment cache on top of a Redis client
func NewRedisAssessmentCache(client *redis.Client) AssessmentCache {
	opts := redis.NewCacheOptions().WithCacheName(CacheName)
	return &redisAssessmentCache{
		client: client,
		cache:  redis.NewCache(client, opts),
	}
}

// Get returns the cached assessment for a location name
func (c *redisAssessmentCache) Get(ctx context.Context, location string) (*entity.RiskAssessment, bool, error) {
	var assessment entity.RiskAssessment
	err := c.cache.Get(ctx, location, &assessment)
	if err != nil {
		if errors.Is(err, redis.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached assessment for %s: %w", location, err)
	}
	return &assessment, true, nil
}

// Put stores a fresh assessment under the location name
func (c *redisAssessmentCache) Put(ctx context.Context, location string, assessment *entity.RiskAssessment) error {
	if err := c.cache.Set(ctx, location, assessment); err != nil {
		return fmt.Errorf("failed to cache assessment for %s: %w", location, err)
	}
	return nil
}

// Health reports the cache component health
func (c *redisAssessmentCache) Health(ctx context.Context) model.ComponentHealthStatus {
	details := map[string]string{"type": "redis", "cacheName": CacheName}

	if err := redis.HealthCheck(ctx, c.client); err != nil {
		details["error"] = err.Error()
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}
