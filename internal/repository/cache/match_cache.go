package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"preset-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	resultPrefix  = "match:result:"
	versionPrefix = "match:version:"
)

type matchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchCache returns a Redis-backed MatchCache. A nil client yields a cache
// that always misses, so matching works without Redis.
func NewMatchCache(client *redis.Client, ttl time.Duration) domain.MatchCache {
	if client == nil {
		return noopCache{}
	}
	return &matchCache{client: client, ttl: ttl}
}

func (c *matchCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, resultPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *matchCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resultPrefix+key, raw, c.ttl).Err()
}

// Version returns the current generation of a candidate set. Unset counts as 0.
func (c *matchCache) Version(ctx context.Context, set string) (int64, error) {
	v, err := c.client.Get(ctx, versionPrefix+set).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *matchCache) Bump(ctx context.Context, set string) error {
	return c.client.Incr(ctx, versionPrefix+set).Err()
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) (bool, error)  { return false, nil }
func (noopCache) Set(context.Context, string, any) error          { return nil }
func (noopCache) Version(context.Context, string) (int64, error) { return 0, nil }
func (noopCache) Bump(context.Context, string) error              { return nil }
