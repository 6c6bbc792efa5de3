// Package ratelimit throttles request bursts per authenticated user.
package ratelimit

import (
	"sync"
	"time"

	"talk-to-legends-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

// New allows perMinute requests per key with the given burst.
func New(perMinute, burst int) *Limiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.evict(now)
	return v.limiter.AllowN(now, 1)
}

// evict drops buckets that have been idle long enough to be full again.
func (l *Limiter) evict(now time.Time) {
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.visitors, k)
		}
	}
}

// Middleware limits by the authenticated user id, falling back to the client IP.
func (l *Limiter) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		key, _ := ctx.Locals("user_id").(string)
		if key == "" {
			key = "ip:" + ctx.IP()
		}
		if !l.Allow(key) {
			return apperror.TooManyRequests("Too many requests, please slow down")
		}
		return ctx.Next()
	}
}
