package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipRateLimiter keeps one token bucket per client IP
type ipRateLimiter struct {
	mu                sync.Mutex
	limiters          map[string]*limiterInfo
	requestsPerMinute int
	burst             int
	cleanupInterval   time.Duration
}

type limiterInfo struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
}

func newIPRateLimiter(requestsPerMinute, burst int) *ipRateLimiter {
	l := &ipRateLimiter{
		limiters:          make(map[string]*limiterInfo),
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
		cleanupInterval:   5 * time.Minute,
	}
	go l.cleanupStaleEntries()
	return l
}

func (l *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, exists := l.limiters[ip]
	if !exists {
		info = &limiterInfo{
			limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.requestsPerMinute)), l.burst),
			lastAccessed: time.Now(),
		}
		l.limiters[ip] = info
	} else {
		info.lastAccessed = time.Now()
	}
	return info.limiter
}

func (l *ipRateLimiter) cleanupStaleEntries() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-l.cleanupInterval)
		l.mu.Lock()
		for ip, info := range l.limiters {
			if info.lastAccessed.Before(cutoff) {
				delete(l.limiters, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit limits requests per client IP on the public JSON endpoints
func RateLimit(requestsPerMinute, burst int) gin.HandlerFunc {
	limiter := newIPRateLimiter(requestsPerMinute, burst)
	return func(c *gin.Context) {
		if !limiter.getLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
