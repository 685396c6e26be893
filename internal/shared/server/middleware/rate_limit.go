package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"pixweight-backend/internal/shared/server/respond"
)

// Rate limit groups.
const (
	RateGroupLLM    = "LLM"
	RateGroupUpload = "UPLOAD"
)

// RateLimitRule allows PerMinute requests with the given burst.
type RateLimitRule struct {
	PerMinute int
	Burst     int
}

func (r RateLimitRule) limit() rate.Limit {
	return rate.Limit(float64(r.PerMinute) / 60.0)
}

// RateLimitConfig maps route groups to rules. Requests whose group has no
// rule are not limited.
type RateLimitConfig struct {
	Rules    map[string]RateLimitRule
	GroupFor func(*gin.Context) string
	Limiter  *RateLimiter
}

// RateLimiter keeps one token bucket per principal and group.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	now      func() time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		now:      now,
	}
}

// Allow takes a token for key, or reports how long until one is available.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.PerMinute <= 0 {
		return true, 0
	}
	burst := rule.Burst
	if burst <= 0 {
		burst = 1
	}

	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rule.limit(), burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	now := l.now()
	res := lim.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Minute
	}
	delay := res.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	res.CancelAt(now)
	return false, delay
}

// RateLimit rejects requests over their group's rule with 429.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	return func(c *gin.Context) {
		if cfg.GroupFor == nil {
			c.Next()
			return
		}
		group := strings.TrimSpace(cfg.GroupFor(c))
		rule, ok := cfg.Rules[group]
		if group == "" || !ok {
			c.Next()
			return
		}
		principal := strings.TrimSpace(UserIDFromContext(c))
		if principal == "" {
			principal = strings.TrimSpace(c.ClientIP())
		}
		allowed, retryAfter := cfg.Limiter.Allow(principal+"|"+group, rule)
		if allowed {
			c.Next()
			return
		}
		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(float64(retryAfterMs)/1000.0))))
		respond.Error(c, http.StatusTooManyRequests, respond.CodeRateLimited, "Too many requests", gin.H{
			"retry_after_ms": retryAfterMs,
		})
	}
}

// RouteGroups assigns the inference-backed and upload routes to their groups.
func RouteGroups(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	switch c.FullPath() {
	case "/api/v1/sessions/from-image", "/api/v1/sessions/:id/answers":
		return RateGroupLLM
	case "/api/v1/images":
		return RateGroupUpload
	}
	return ""
}
