// Package cache stores computed scores and recent scoring sessions in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/resuflux/internal/ingestion"
	"github.com/jonathan/resuflux/internal/metrics"
	"github.com/jonathan/resuflux/internal/types"
)

const (
	// DefaultTTL is how long a cached score stays valid
	DefaultTTL = 24 * time.Hour

	scoreKeyPrefix = "score:"
)

// NewClient parses a redis:// URL and verifies the connection
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// ScoreCache memoizes ScoreResults keyed by the résumé and JD texts.
// A nil *ScoreCache is valid and never hits.
type ScoreCache struct {
	client  redis.Cmdable
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewScoreCache creates a cache over an existing client. A zero ttl means DefaultTTL.
func NewScoreCache(client redis.Cmdable, ttl time.Duration, m *metrics.Metrics) *ScoreCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ScoreCache{client: client, ttl: ttl, metrics: m}
}

// Key returns the cache key for a résumé/JD pair
func Key(resumeText, jdText string) string {
	return scoreKeyPrefix + ingestion.HashText(resumeText+"\x00"+jdText)
}

// Get returns the cached result, or nil on a miss
func (c *ScoreCache) Get(ctx context.Context, resumeText, jdText string) (*types.ScoreResult, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, Key(resumeText, jdText)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.ObserveCache(false)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached score: %w", err)
	}

	var result types.ScoreResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.metrics.ObserveCache(false)
		return nil, fmt.Errorf("failed to decode cached score: %w", err)
	}
	c.metrics.ObserveCache(true)
	return &result, nil
}

// Set stores a result for the pair
func (c *ScoreCache) Set(ctx context.Context, resumeText, jdText string, result *types.ScoreResult) error {
	if c == nil || c.client == nil || result == nil {
		return nil
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}
	if err := c.client.Set(ctx, Key(resumeText, jdText), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache score: %w", err)
	}
	return nil
}
