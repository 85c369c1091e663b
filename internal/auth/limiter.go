package auth

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"pomofocus/internal/errors"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles login attempts per client key. Each key may spend
// limit attempts at once and regains one every window/limit.
type LoginLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	every     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastPrune time.Time
}

// NewLoginLimiter allows limit attempts per window. A non-positive limit
// disables throttling.
func NewLoginLimiter(limit int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		visitors: make(map[string]*visitor),
		burst:    limit,
		idle:     window,
		now:      time.Now,
	}
	if limit > 0 && window > 0 {
		l.every = rate.Every(window / time.Duration(limit))
	} else {
		l.every = rate.Inf
	}
	return l
}

// Allow records an attempt for key and reports whether it may proceed
func (l *LoginLimiter) Allow(key string) bool {
	if l.every == rate.Inf {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// prune drops keys that have been quiet for two windows. Must be called with
// l.mu held.
func (l *LoginLimiter) prune(now time.Time) {
	if now.Sub(l.lastPrune) < l.idle {
		return
	}
	l.lastPrune = now
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > 2*l.idle {
			delete(l.visitors, key)
		}
	}
}

// Middleware rejects throttled clients with 429
func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			abort(c, errors.NewRateLimitedError("login"))
			return
		}
		c.Next()
	}
}
