package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/yshengliao/pathway/router"
)

// RateLimiter is the store interface for rate limiting.
type RateLimiter interface {
	// Allow checks if a request is allowed under the given key.
	Allow(key string) bool

	// Reset drops the limiter state for a key.
	Reset(key string)
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	// Rate is the number of requests per second.
	Rate int

	// Burst is the maximum burst size.
	Burst int

	// KeyFunc extracts the limiter key from the request. The default keys
	// by the matched route's fingerprint, so structurally identical routes
	// share one budget, combined with the client IP.
	KeyFunc func(c echo.Context) string

	// ErrorHandler handles rejected requests.
	ErrorHandler func(c echo.Context) error

	// SkipFunc determines if rate limiting should be skipped.
	SkipFunc func(c echo.Context) bool

	// Store is the rate limiter implementation. Defaults to an in-memory
	// token bucket store.
	Store RateLimiter
}

// DefaultRateLimitConfig returns a default rate limit configuration.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Rate:    10,
		Burst:   20,
		KeyFunc: FingerprintKey,
		ErrorHandler: func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	}
}

// FingerprintKey keys the limiter by the matched route's fingerprint and the
// client IP. Requests hitting structurally identical routes land in the same
// partition regardless of parameter naming.
func FingerprintKey(c echo.Context) string {
	if route, ok := router.MatchedRoute(c); ok {
		return route.Fingerprint() + "|" + c.RealIP()
	}
	return c.RealIP()
}

// limiterEntry holds a rate limiter and its last access time.
type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// MemoryStore is an in-memory rate limiter store with TTL-based cleanup of
// idle keys.
type MemoryStore struct {
	rate     int
	burst    int
	limiters map[string]*limiterEntry
	mu       sync.RWMutex
	cleanup  *time.Ticker
	ttl      time.Duration
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a new in-memory rate limiter store.
func NewMemoryStore(r, b int) *MemoryStore {
	store := &MemoryStore{
		rate:     r,
		burst:    b,
		limiters: make(map[string]*limiterEntry),
		cleanup:  time.NewTicker(time.Minute),
		ttl:      10 * time.Minute,
		stopped:  make(chan struct{}),
	}
	go store.cleanupRoutine()
	return store
}

// Allow checks if a request is allowed under key.
func (s *MemoryStore) Allow(key string) bool {
	now := time.Now()

	s.mu.Lock()
	entry, exists := s.limiters[key]
	if !exists {
		entry = &limiterEntry{
			limiter:    rate.NewLimiter(rate.Limit(s.rate), s.burst),
			lastAccess: now,
		}
		s.limiters[key] = entry
	} else {
		entry.lastAccess = now
	}
	s.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// Reset drops the limiter state for a key.
func (s *MemoryStore) Reset(key string) {
	s.mu.Lock()
	delete(s.limiters, key)
	s.mu.Unlock()
}

// Size returns the current number of limiters in the store.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Stop stops the cleanup routine.
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() {
		s.cleanup.Stop()
		close(s.stopped)
	})
}

func (s *MemoryStore) cleanupRoutine() {
	for {
		select {
		case <-s.cleanup.C:
			s.performCleanup()
		case <-s.stopped:
			return
		}
	}
}

func (s *MemoryStore) performCleanup() {
	now := time.Now()

	s.mu.Lock()
	for key, entry := range s.limiters {
		if now.Sub(entry.lastAccess) > s.ttl {
			delete(s.limiters, key)
		}
	}
	s.mu.Unlock()
}

// RateLimit creates a rate limiting middleware. As route middleware it runs
// after dispatch, so the default key function sees the matched route.
func RateLimit(config *RateLimitConfig) echo.MiddlewareFunc {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	if config.KeyFunc == nil {
		config.KeyFunc = FingerprintKey
	}
	if config.ErrorHandler == nil {
		config.ErrorHandler = DefaultRateLimitConfig().ErrorHandler
	}
	if config.Store == nil {
		config.Store = NewMemoryStore(config.Rate, config.Burst)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.SkipFunc != nil && config.SkipFunc(c) {
				return next(c)
			}
			if !config.Store.Allow(config.KeyFunc(c)) {
				return config.ErrorHandler(c)
			}
			return next(c)
		}
	}
}
