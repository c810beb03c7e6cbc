// Package ratelimit provides per-client rate limiting for the builder API on
// top of golang.org/x/time/rate token buckets. Routes are grouped into named
// tiers, and a client shares one bucket across all routes of a tier.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleBucketTTL is how long a bucket may go unused before cleanup drops it.
const idleBucketTTL = time.Hour

// TokenBucket is one client's bucket for one tier.
type TokenBucket struct {
	capacity   int     // burst capacity
	refillRate float64 // tokens per second
	limiter    *rate.Limiter
}

// newTokenBucket creates a full bucket.
func newTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		limiter:    rate.NewLimiter(rate.Limit(refillRate), capacity),
	}
}

func (tb *TokenBucket) allow() bool {
	return tb.limiter.AllowN(time.Now(), 1)
}

// getStatus reports remaining tokens and when the bucket will be full again.
func (tb *TokenBucket) getStatus() (remaining int, resetTime time.Time) {
	now := time.Now()
	tokens := tb.limiter.TokensAt(now)
	remaining = max(0, int(tokens))
	resetTime = now
	if tokens < float64(tb.capacity) && tb.refillRate > 0 {
		missing := float64(tb.capacity) - tokens
		resetTime = now.Add(time.Duration(missing / tb.refillRate * float64(time.Second)))
	}
	return remaining, resetTime
}

// retryAfter is how long until the next token is available.
func (tb *TokenBucket) retryAfter() time.Duration {
	tokens := tb.limiter.TokensAt(time.Now())
	if tokens >= 1 || tb.refillRate <= 0 {
		return 0
	}
	return time.Duration((1 - tokens) / tb.refillRate * float64(time.Second))
}

// Info describes the outcome of one Allow call.
type Info struct {
	Allowed    bool
	Tier       string // empty for the default limit
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucketEntry struct {
	bucket   *TokenBucket
	lastSeen time.Time
}

// Limiter hands out token buckets per client and tier.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	buckets map[string]*bucketEntry

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a limiter. A nil config enables the default tiers and
// routes with a default limit of 1000 requests per minute.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Tiers:           DefaultTiers(),
			Routes:          DefaultRoutes(),
		}
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucketEntry),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}
	return l
}

// Allow reports whether clientID may make a method request to path, consuming
// a token when it may.
func (l *Limiter) Allow(clientID, method, path string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	tier := l.config.Match(method, path)
	key := clientID + " " + method + " " + path
	if tier != nil {
		key = clientID + " tier:" + tier.Name
	} else {
		tier = &Tier{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
	}
	if tier.Limit <= 0 {
		return true, Info{Allowed: true, Tier: tier.Name}
	}

	bucket := l.getBucket(key, *tier)
	allowed := bucket.allow()
	remaining, resetTime := bucket.getStatus()

	info := Info{
		Allowed:   allowed,
		Tier:      tier.Name,
		Limit:     tier.Limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		info.RetryAfter = bucket.retryAfter()
	}
	return allowed, info
}

// getBucket returns the bucket for key, creating it from tier on first use.
func (l *Limiter) getBucket(key string, tier Tier) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if e, ok := l.buckets[key]; ok {
		e.lastSeen = now
		return e.bucket
	}

	capacity := tier.Burst
	if capacity <= 0 {
		capacity = tier.Limit
	}
	b := newTokenBucket(capacity, float64(tier.Limit)/tier.Window.Seconds())
	l.buckets[key] = &bucketEntry{bucket: b, lastSeen: now}
	return b
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupBuckets(time.Now().Add(-idleBucketTTL))
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets drops buckets not used since cutoff.
func (l *Limiter) cleanupBuckets(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.buckets {
		if e.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// bucketCount is the number of live buckets.
func (l *Limiter) bucketCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
