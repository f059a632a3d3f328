package ratelimit

import (
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	ClassGeneral = "general"
	ClassPublish = "publish"

	defaultMaxKeys = 100000
)

// Config describes one limiter class.
type Config struct {
	Class   string
	Window  time.Duration
	Max     int // requests per window per subject; <= 0 disables the limiter
	// MaxKeys bounds tracked subjects. At the bound the least recently seen
	// subject is dropped even if its window is live, which resets its count;
	// size it above the subjects expected within one window. Evicted reports it.
	MaxKeys int
}

// Result is the outcome of a single Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Headers returns the X-RateLimit-* headers describing r.
func (r Result) Headers() map[string]string {
	return map[string]string{
		"X-RateLimit-Limit":     strconv.Itoa(r.Limit),
		"X-RateLimit-Remaining": strconv.Itoa(r.Remaining),
		"X-RateLimit-Reset":     strconv.FormatInt(r.ResetAt.Unix(), 10),
	}
}

type bucket struct {
	count       int
	windowStart time.Time
}

// Limiter is a fixed-window counter keyed by subject.
type Limiter struct {
	mu      sync.Mutex
	buckets *expirable.LRU[string, *bucket]
	class   string
	window  time.Duration
	max     int
	maxKeys int
	evicted int64
	now     func() time.Time
}

// Option customises a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New creates a Limiter. Buckets expire from memory one window after they start.
func New(cfg Config, opts ...Option) *Limiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = defaultMaxKeys
	}
	l := &Limiter{
		buckets: expirable.NewLRU[string, *bucket](cfg.MaxKeys, nil, cfg.Window),
		class:   cfg.Class,
		window:  cfg.Window,
		max:     cfg.Max,
		maxKeys: cfg.MaxKeys,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Class returns the limiter class name.
func (l *Limiter) Class() string { return l.class }

// Allow counts one request for key. The read-increment-compare runs under the limiter lock.
func (l *Limiter) Allow(key string) Result {
	now := l.now()
	if l.max <= 0 {
		return Result{Allowed: true, Limit: 0, Remaining: 0, ResetAt: now}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets.Get(key)
	if !ok && l.buckets.Len() >= l.maxKeys {
		if _, oldest, found := l.buckets.GetOldest(); found && now.Before(oldest.windowStart.Add(l.window)) {
			l.evicted++
		}
	}
	if !ok || !now.Before(b.windowStart.Add(l.window)) {
		b = &bucket{count: 1, windowStart: now}
		l.buckets.Add(key, b)
		return Result{
			Allowed:   true,
			Limit:     l.max,
			Remaining: l.max - 1,
			ResetAt:   now.Add(l.window),
		}
	}

	b.count++
	remaining := l.max - b.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   b.count <= l.max,
		Limit:     l.max,
		Remaining: remaining,
		ResetAt:   b.windowStart.Add(l.window),
	}
}

// Evicted returns how many subjects were dropped while their window was still live.
func (l *Limiter) Evicted() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.evicted
}

// Clear drops every bucket.
func (l *Limiter) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buckets.Purge()
}
