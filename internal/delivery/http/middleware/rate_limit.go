package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/pkg/logger"
	"portfolio-contact-api/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:ip:")
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
	// Redis overrides the shared client; nil uses redis.Client()
	Redis *goredis.Client
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// ContactRateLimitConfig limits contact submissions per client IP.
func ContactRateLimitConfig(perMinute int) RateLimitConfig {
	if perMinute <= 0 {
		perMinute = 5
	}
	return RateLimitConfig{
		Limit:      perMinute,
		Window:     1 * time.Minute,
		KeyPrefix:  "rl:contact:",
		FailClosed: false, // Fail open so a Redis outage does not take the form down
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// limiterEntry is the in-memory fallback state for one key
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	every   rate.Limit
	burst   int
	ttl     time.Duration
}

func newMemoryStore(config RateLimitConfig) *memoryStore {
	return &memoryStore{
		entries: make(map[string]*limiterEntry),
		every:   rate.Every(config.Window / time.Duration(config.Limit)),
		burst:   config.Limit,
		ttl:     config.Window * 2,
	}
}

// allow reports whether key may proceed, the tokens left, and when one more
// request will be admitted.
func (s *memoryStore) allow(key string, now time.Time) (bool, int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// opportunistic sweep keeps the map bounded without a background goroutine
	for k, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, k)
		}
	}

	entry, ok := s.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.every, s.burst)}
		s.entries[key] = entry
	}
	entry.lastSeen = now

	allowed := entry.limiter.AllowN(now, 1)
	tokens := entry.limiter.TokensAt(now)
	remaining := int(math.Max(0, math.Floor(tokens)))

	resetAt := now
	if tokens < 1 {
		resetAt = now.Add(time.Duration((1 - tokens) / float64(s.every) * float64(time.Second)))
	}
	return allowed, remaining, resetAt
}

// RateLimitMiddleware creates a rate limiting middleware with the given config
// Uses Redis when available, falls back to in-memory when not
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.Limit <= 0 {
		config.Limit = 1
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rl:ip:"
	}
	fallback := newMemoryStore(config)

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var (
			allowed   bool
			remaining int
			resetAt   time.Time
		)

		redisClient := config.Redis
		if redisClient == nil {
			redisClient = redis.Client()
		}

		handled := false
		if redisClient != nil {
			count, reset, err := checkRateLimitRedis(c.Request.Context(), redisClient, fullKey, config)
			if err == nil {
				allowed = count <= config.Limit
				remaining = max(config.Limit-count, 0)
				resetAt = reset
				handled = true
			} else {
				logger.Log.WarnContext(c.Request.Context(), "Rate limit store unavailable",
					"error", err,
					"fail_closed", config.FailClosed,
				)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
			}
		}
		if !handled {
			allowed, remaining, resetAt = fallback.allow(fullKey, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if !allowed {
			retryAfter := int(math.Ceil(time.Until(resetAt).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.InfoContext(c.Request.Context(), "Rate limit triggered",
				"request_id", c.GetString(response.RequestIDKey),
				"path", c.FullPath(),
				"ip", c.ClientIP(),
			)

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [count, ttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	resetAt := time.Now().Add(time.Duration(ttl) * time.Second)

	return int(count), resetAt, nil
}
