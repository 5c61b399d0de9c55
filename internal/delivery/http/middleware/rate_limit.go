package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"preset-backend/internal/delivery/http/response"
	"preset-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	// KeyFunc defaults to the client IP.
	KeyFunc func(*gin.Context) string
	// FailClosed rejects requests when Redis errors instead of falling back to memory.
	FailClosed bool
}

// INCR with the TTL set on the first hit of a window. Returns {count, ttl}.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

// MatchRateLimitConfig limits the matching endpoints, which score a whole candidate set per call.
func MatchRateLimitConfig(perMinute int) RateLimitConfig {
	return RateLimitConfig{
		Limit:     perMinute,
		Window:    time.Minute,
		KeyPrefix: "rl:match:",
	}
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

type memoryLimiter struct {
	mu        sync.Mutex
	counters  map[string]*windowCounter
	lastSweep time.Time
}

func (m *memoryLimiter) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) > window {
		for k, wc := range m.counters {
			if now.After(wc.resetAt) {
				delete(m.counters, k)
			}
		}
		m.lastSweep = now
	}

	wc, ok := m.counters[key]
	if !ok || now.After(wc.resetAt) {
		wc = &windowCounter{resetAt: now.Add(window)}
		m.counters[key] = wc
	}
	wc.count++
	return wc.count, wc.resetAt
}

// RateLimitMiddleware enforces a fixed-window limit, in Redis when client is
// non-nil and in process memory otherwise.
func RateLimitMiddleware(client *goredis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	local := &memoryLimiter{counters: map[string]*windowCounter{}}

	return func(c *gin.Context) {
		if cfg.Limit <= 0 {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + cfg.KeyFunc(c)
		now := time.Now()

		var count int
		var resetAt time.Time
		var err error
		if client != nil {
			count, resetAt, err = hitRedis(c.Request.Context(), client, key, cfg.Window)
		}
		if client == nil || err != nil {
			if err != nil {
				logger.Log.Warnw("Rate limit store unavailable", "key_prefix", cfg.KeyPrefix, "error", err)
				if cfg.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
			}
			count, resetAt = local.hit(key, cfg.Window, now)
		}

		remaining := cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > cfg.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logger.Log.Infow("Rate limit triggered", "client_ip", c.ClientIP(), "path", c.FullPath())
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func hitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	result, err := rateLimitScript.Run(ctx, client, []string{key}, int(window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit script failed: %w", err)
	}
	if len(result) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	return int(result[0]), time.Now().Add(time.Duration(result[1]) * time.Second), nil
}
