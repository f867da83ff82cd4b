package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for counter keys
	KeyPrefix string
}

// RateLimitStatus is the state of one fixed window.
type RateLimitStatus struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
	Window    string    `json:"window"`
}

// counterStore holds per-window counters.
type counterStore interface {
	incr(ctx context.Context, key string, n int, ttl time.Duration) (int, error)
	get(ctx context.Context, key string) (int, error)
}

// RateLimiter is a fixed-window limiter. Counters live in redis when a client
// is supplied and in process memory otherwise.
type RateLimiter struct {
	store  counterStore
	config RateLimitConfig
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance. A nil redisClient
// selects the in-memory store, which only limits within one process.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{config: config, now: time.Now}
	if redisClient != nil {
		rl.store = &redisStore{client: redisClient}
	} else {
		rl.store = newMemoryStore(func() time.Time { return rl.now() })
	}
	return rl
}

// NewRecipeCreationRateLimiter limits recipe creation per owner per hour.
func NewRecipeCreationRateLimiter(redisClient *redis.Client, perHour int) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     perHour,
		KeyPrefix: "rate_limit:recipe_creation",
	})
}

// NewRecipeModificationRateLimiter limits updates and deletes per owner per
// recipe per hour.
func NewRecipeModificationRateLimiter(redisClient *redis.Client, perHour int) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     perHour,
		KeyPrefix: "rate_limit:recipe_modification",
	})
}

func (rl *RateLimiter) windowKey(subject string) (string, time.Time) {
	windowStart := rl.now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, subject, windowStart.Unix())
	return key, windowStart.Add(rl.config.Window)
}

// IsAllowed counts one request for subject and reports whether it fits in
// the current window.
func (rl *RateLimiter) IsAllowed(ctx context.Context, subject string) (bool, RateLimitStatus, error) {
	return rl.AllowN(ctx, subject, 1)
}

// AllowN counts n units for subject. A request that cannot fit in what is
// left of the window is rejected without consuming anything.
func (rl *RateLimiter) AllowN(ctx context.Context, subject string, n int) (bool, RateLimitStatus, error) {
	key, resetAt := rl.windowKey(subject)
	if n > 1 {
		current, err := rl.store.get(ctx, key)
		if err != nil {
			return false, RateLimitStatus{}, err
		}
		if current+n > rl.config.Limit {
			return false, rl.status(current, resetAt), nil
		}
	}

	count, err := rl.store.incr(ctx, key, n, rl.config.Window)
	if err != nil {
		return false, RateLimitStatus{}, err
	}
	return count <= rl.config.Limit, rl.status(count, resetAt), nil
}

// Status reports the current window without counting a request.
func (rl *RateLimiter) Status(ctx context.Context, subject string) (RateLimitStatus, error) {
	key, resetAt := rl.windowKey(subject)
	count, err := rl.store.get(ctx, key)
	if err != nil {
		return RateLimitStatus{}, err
	}
	return rl.status(count, resetAt), nil
}

func (rl *RateLimiter) status(count int, resetAt time.Time) RateLimitStatus {
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitStatus{
		Limit:     rl.config.Limit,
		Remaining: remaining,
		ResetAt:   resetAt,
		Window:    rl.config.Window.String(),
	}
}

// RateLimitMiddleware limits requests per owner.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context, ownerID string) string { return ownerID })
}

// PerRecipeRateLimitMiddleware limits requests per owner and recipe id.
func (rl *RateLimiter) PerRecipeRateLimitMiddleware() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context, ownerID string) string {
		return ownerID + ":" + c.Param("id")
	})
}

func (rl *RateLimiter) middleware(subject func(*gin.Context, string) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := OwnerID(c)
		if !ok {
			AbortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "user not authenticated")
			return
		}

		if rl.Charge(c, subject(c, ownerID), 1) {
			c.Next()
		}
	}
}

// Charge counts n units for subject, sets the rate limit headers and reports
// whether the request may proceed. On false the response has been written.
func (rl *RateLimiter) Charge(c *gin.Context, subject string, n int) bool {
	allowed, st, err := rl.AllowN(c.Request.Context(), subject, n)
	if err != nil {
		// A limiter outage must not block writes
		LoggerFrom(c).Warn().Err(err).Msg("rate limit check failed")
		c.Header("X-RateLimit-Error", "rate limit check failed")
		return true
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(st.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(st.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(st.ResetAt.Unix(), 10))

	if !allowed {
		retryAfter := int(st.ResetAt.Sub(rl.now()).Seconds())
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		AbortWithError(c, http.StatusTooManyRequests, CodeTooManyRequests,
			fmt.Sprintf("rate limit of %d requests per %v exceeded", rl.config.Limit, rl.config.Window))
		return false
	}
	return true
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) incr(ctx context.Context, key string, n int, ttl time.Duration) (int, error) {
	pipe := s.client.Pipeline()
	incrCmd := pipe.IncrBy(ctx, key, int64(n))
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incrCmd.Val()), nil
}

func (s *redisStore) get(ctx context.Context, key string) (int, error) {
	count, err := s.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return count, err
}

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{entries: make(map[string]*memoryEntry), now: now}
}

func (s *memoryStore) incr(_ context.Context, key string, n int, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	e, ok := s.entries[key]
	if !ok {
		e = &memoryEntry{expiresAt: now.Add(ttl)}
		s.entries[key] = e
	}
	e.count += n
	return e.count, nil
}

func (s *memoryStore) get(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && s.now().Before(e.expiresAt) {
		return e.count, nil
	}
	return 0, nil
}

// sweep drops expired windows. Callers hold mu.
func (s *memoryStore) sweep(now time.Time) {
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}
