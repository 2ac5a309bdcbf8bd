package router

import (
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

const (
	defaultRatePerMinute = 30
	defaultRateBurst     = 10
)

type ipBucket struct {
	tokens float64
	last   time.Time
}

// tokenBuckets refills each remote IP at a fixed rate up to burst.
type tokenBuckets struct {
	mu            sync.Mutex
	ratePerSecond float64
	burst         float64
	buckets       map[string]ipBucket
}

func newTokenBuckets(limitPerMinute, burst int) *tokenBuckets {
	if limitPerMinute <= 0 {
		limitPerMinute = defaultRatePerMinute
	}
	if burst <= 0 {
		burst = defaultRateBurst
	}
	return &tokenBuckets{
		ratePerSecond: float64(limitPerMinute) / 60.0,
		burst:         float64(burst),
		buckets:       make(map[string]ipBucket),
	}
}

func (t *tokenBuckets) allow(ip string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	bucket := t.buckets[ip]
	if bucket.last.IsZero() {
		bucket = ipBucket{tokens: t.burst, last: now}
	}

	if elapsed := now.Sub(bucket.last).Seconds(); elapsed > 0 {
		bucket.tokens = min(bucket.tokens+elapsed*t.ratePerSecond, t.burst)
		bucket.last = now
	}

	if bucket.tokens < 1 {
		t.buckets[ip] = bucket
		return false
	}

	bucket.tokens--
	t.buckets[ip] = bucket
	return true
}

// RateLimitMiddleware enforces per-IP connection limits using a token bucket.
func RateLimitMiddleware(limitPerMinute, burst int, logger *log.Logger) wish.Middleware {
	if logger == nil {
		logger = log.Default()
	}
	buckets := newTokenBuckets(limitPerMinute, burst)

	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			now := time.Now().UTC()
			ip := remoteIP(s)
			if !buckets.allow(ip, now) {
				logger.Warn("connection throttled", "event", "rate_limit_throttled", "observer", observerHash(ip))
				_, _ = s.Write([]byte("rate limit exceeded\n"))
				return
			}
			next(s)
		}
	}
}

func remoteIP(s ssh.Session) string {
	remote := s.RemoteAddr()
	if remote == nil {
		return "unknown"
	}

	host, _, err := net.SplitHostPort(remote.String())
	if err != nil {
		return remote.String()
	}

	if host == "" {
		return "unknown"
	}
	return host
}
