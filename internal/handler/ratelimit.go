package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/tapcard/internal/config"
	"github.com/tapcard/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	rateLimitNotice  = "Too many downloads, please try again in a moment."
	limiterIdleAfter = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters hands out one token bucket per client address.
type clientLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	clients  map[string]*clientLimiter
	lastScan time.Time
	now      func() time.Time
}

func newClientLimiters(cfg config.RateLimitConfig) *clientLimiters {
	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}
	return &clientLimiters{
		limit:   rate.Every(perRequest),
		burst:   cfg.Requests,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

func (l *clientLimiters) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastScan) > limiterIdleAfter {
		for k, entry := range l.clients {
			if now.Sub(entry.lastSeen) > limiterIdleAfter {
				delete(l.clients, k)
			}
		}
		l.lastScan = now
	}

	entry, ok := l.clients[key]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// VCardRateLimiter throttles vCard downloads per client. Browsers that hit
// the limit are sent back to the card with a flash notice; other clients get
// a 429.
func (a *API) VCardRateLimiter(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limiters := newClientLimiters(cfg)

	return func(c *gin.Context) {
		if limiters.allow(c.ClientIP()) {
			c.Next()
			return
		}

		metrics.ObserveVCardDownload("rate_limited")
		if !strings.Contains(c.GetHeader("Accept"), gin.MIMEHTML) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "vcard rate limit exceeded"})
			return
		}

		session := sessions.Default(c)
		session.AddFlash(rateLimitNotice)
		if err := session.Save(); err != nil {
			c.Error(err)
		}
		redirectSeeOther(c, a.cardPath(c.Param("profileID")))
		c.Abort()
	}
}
