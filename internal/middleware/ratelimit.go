package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cuattro/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Limiter decides whether key may make another request in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type entry struct {
	count    int
	windowAt time.Time
}

// RateLimiter is a fixed-window in-memory limiter for a single process.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
	}
}

func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	e, ok := rl.entries[key]
	if !ok || now.After(e.windowAt) {
		rl.entries[key] = &entry{count: 1, windowAt: now.Add(rl.window)}
		return true
	}
	e.count++
	return e.count <= rl.limit
}

// Cleanup removes expired entries.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, e := range rl.entries {
		if now.After(e.windowAt) {
			delete(rl.entries, key)
		}
	}
}

// RedisRateLimiter shares a fixed-window counter across API replicas.
// Redis failures let the request through.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: window, logger: logger}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, key string) bool {
	slot := time.Now().UnixNano() / int64(r.window)
	redisKey := fmt.Sprintf("cuattro:ratelimit:%s:%d", key, slot)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
		return true
	}
	return incr.Val() <= int64(r.limit)
}

// RateLimit rejects requests whose key is over the limiter's budget. The key
// is the authenticated user when present, the client IP otherwise.
func RateLimit(limiter Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(auth.ContextUserID)
		if key == "" {
			key = c.ClientIP()
		}
		if !limiter.Allow(c.Request.Context(), scope+":"+key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "RateLimited",
				"message": "Muitas solicitações. Aguarde um momento e tente novamente.",
			})
			return
		}
		c.Next()
	}
}
