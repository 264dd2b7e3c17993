package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

const planTTL = 24 * time.Hour

// RecommendationCache stores crop-planning results keyed by an input
// digest. Key format: agroplan:<digest>
type RecommendationCache struct {
	client *redis.Client
}

// NewRecommendationCache creates a RecommendationCache wrapping the given
// Redis client.
func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{client: client}
}

// Get returns the cached plan, or (nil, nil) on a miss.
func (c *RecommendationCache) Get(ctx context.Context, key string) (*ports.RecommendationPlan, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var plan ports.RecommendationPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &plan, nil
}

// Set stores the plan (expires after planTTL).
func (c *RecommendationCache) Set(ctx context.Context, key string, plan *ports.RecommendationPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(key), data, planTTL).Err()
}

func (c *RecommendationCache) key(digest string) string {
	return "agroplan:" + digest
}

var _ ports.RecommendationCache = (*RecommendationCache)(nil)
