package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/cedarpath/practice-api/internal/config"
)

// CounterStore backs the fixed-window rate limiter. Keys expire with their
// window; the count returned includes the current hit.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// ===============================
// In-process store
// ===============================

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

// Expired windows are pruned on access so the map does not grow with
// every client IP ever seen.
const sweepInterval = time.Minute

type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]*memoryEntry
	nextSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.After(s.nextSweep) {
		for k, e := range s.entries {
			if now.After(e.resetAt) {
				delete(s.entries, k)
			}
		}
		s.nextSweep = now.Add(sweepInterval)
	}

	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &memoryEntry{resetAt: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, nil
}

// ===============================
// Redis store
// ===============================

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		s.client.Expire(ctx, key, window)
	}
	return count, nil
}

// ===============================
// Middleware
// ===============================

// RateLimit applies a fixed-window quota keyed by client IP.
func RateLimit(store CounterStore, name string, rl config.RateLimit) gin.HandlerFunc {
	return rateLimit(store, name, rl.Window, rl.Message,
		func(c *gin.Context) string { return c.ClientIP() },
		func(c *gin.Context) int { return rl.Max },
	)
}

// TieredRateLimit keys by authenticated user id when upstream auth attached
// one (falling back to IP), and raises the ceiling for authenticated
// clients. Must run after OptionalAuth.
func TieredRateLimit(store CounterStore, name string, rl config.RateLimit) gin.HandlerFunc {
	return rateLimit(store, name, rl.Window, rl.Message,
		func(c *gin.Context) string {
			if userID := c.GetString(ContextUserID); userID != "" {
				return userID
			}
			return c.ClientIP()
		},
		func(c *gin.Context) int {
			if c.GetBool(ContextAuthenticated) {
				return config.AIMaxAuthenticated
			}
			return config.AIMaxAnonymous
		},
	)
}

func rateLimit(
	store CounterStore,
	name string,
	window time.Duration,
	message string,
	keyFn func(*gin.Context) string,
	maxFn func(*gin.Context) int,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + name + ":" + keyFn(c)

		count, err := store.Incr(c.Request.Context(), key, window)
		if err != nil {
			// Counter store down: let the request through rather than
			// turning an infra outage into a client-facing failure.
			c.Next()
			return
		}

		if count > int64(maxFn(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}

		c.Next()
	}
}
