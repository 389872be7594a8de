package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go-triagem-backend/internal/delivery/http/response"
	"go-triagem-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
}

// Lua script for atomic increment with TTL on first set.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per client IP in a fixed window. With a nil
// redis client it degrades to a per-process in-memory store, which is fine
// for a single instance but not shared across replicas.
type RateLimiter struct {
	client *goredis.Client
	cfg    RateLimitConfig
	store  sync.Map
}

func NewRateLimiter(client *goredis.Client, cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{client: client, cfg: cfg}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		now := time.Now()
		rl.store.Range(func(key, value interface{}) bool {
			entry := value.(*rateLimitEntry)
			entry.mu.Lock()
			if now.After(entry.resetAt) {
				rl.store.Delete(key)
			}
			entry.mu.Unlock()
			return true
		})
	}
}

// allow returns whether the request may proceed and the seconds until the
// window resets.
func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, int) {
	if rl.client != nil {
		res, err := rl.client.Eval(ctx, rateLimitLuaScript,
			[]string{rl.cfg.KeyPrefix + key},
			int(rl.cfg.Window.Seconds()),
		).Int64Slice()
		if err == nil && len(res) == 2 {
			return res[0] <= int64(rl.cfg.Limit), int(res[1])
		}
		// Redis down: fail open into the in-memory store.
		logger.Log.Warn("rate limiter falling back to in-memory store", "error", err)
	}

	entryAny, _ := rl.store.LoadOrStore(key, &rateLimitEntry{resetAt: time.Now().Add(rl.cfg.Window)})
	entry := entryAny.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(rl.cfg.Window)
	}
	entry.count++
	return entry.count <= rl.cfg.Limit, int(time.Until(entry.resetAt).Seconds())
}

// Middleware applies the limit per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := rl.allow(c.Request.Context(), c.ClientIP())
		if !ok {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, 429, "Too many requests. Try again later.", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
