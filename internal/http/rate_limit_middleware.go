package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/allisson/shepatra/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = time.Hour
)

// clientLimiters keeps one token bucket per client IP.
type clientLimiters struct {
	limiters sync.Map // client IP -> *clientLimiter
	rps      float64
	burst    int
}

type clientLimiter struct {
	limiter    *rate.Limiter
	mu         sync.Mutex
	lastAccess time.Time
}

// RateLimitMiddleware limits hashing requests per client IP with a token bucket of rps
// tokens per second and the given burst. Rejected requests get 429 with a Retry-After
// header. Idle buckets are evicted until ctx is cancelled.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &clientLimiters{rps: rps, burst: burst}
	go store.evictIdle(ctx, limiterCleanupInterval, limiterIdleTTL)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.get(clientIP, time.Now())

		if limiter.Allow() {
			c.Next()
			return
		}

		retryAfter := retryAfterSeconds(limiter)
		logger.Debug("hash rate limit exceeded",
			slog.String("client_ip", clientIP),
			slog.Int("retry_after", retryAfter))

		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
			Error:   "rate_limit_exceeded",
			Message: "Too many hash requests from this client, retry later",
		})
	}
}

// retryAfterSeconds is the wait until the next token, rounded up to whole seconds.
func retryAfterSeconds(limiter *rate.Limiter) int {
	reservation := limiter.Reserve()
	delay := reservation.Delay()
	reservation.Cancel()

	return max(1, int(math.Ceil(delay.Seconds())))
}

func (s *clientLimiters) get(ip string, now time.Time) *rate.Limiter {
	if value, ok := s.limiters.Load(ip); ok {
		entry := value.(*clientLimiter)
		entry.touch(now)
		return entry.limiter
	}

	entry := &clientLimiter{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	value, loaded := s.limiters.LoadOrStore(ip, entry)
	if loaded {
		entry = value.(*clientLimiter)
		entry.touch(now)
	}
	return entry.limiter
}

func (e *clientLimiter) touch(now time.Time) {
	e.mu.Lock()
	e.lastAccess = now
	e.mu.Unlock()
}

func (e *clientLimiter) idleSince(threshold time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastAccess.Before(threshold)
}

// evictIdle periodically drops buckets unused for longer than ttl.
func (s *clientLimiters) evictIdle(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.evictBefore(now.Add(-ttl))
		}
	}
}

func (s *clientLimiters) evictBefore(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		if value.(*clientLimiter).idleSince(threshold) {
			s.limiters.Delete(key)
		}
		return true
	})
}
