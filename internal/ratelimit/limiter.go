// Package ratelimit implements per-client admission control: each key gets
// a budget of points per window, and exhausting it blocks the key for a
// fixed duration.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Config holds the admission budget.
type Config struct {
	Points int
	Window time.Duration
	Block  time.Duration
}

// DefaultConfig allows 3 requests per second and blocks for a minute after that.
var DefaultConfig = Config{
	Points: 3,
	Window: time.Second,
	Block:  60 * time.Second,
}

// Decision is the outcome of a single admission check.
type Decision struct {
	Allowed bool
	// Remaining is the number of points left in the current window.
	Remaining int
	// RetryAfter is set on rejection to the time left until the key is admitted again.
	RetryAfter time.Duration
}

type entry struct {
	remaining    int
	windowStart  time.Time
	blockedUntil time.Time
}

// Limiter is safe for concurrent use.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a Limiter. Non-positive fields in cfg take their DefaultConfig value.
func New(cfg Config, opts ...Option) *Limiter {
	if cfg.Points <= 0 {
		cfg.Points = DefaultConfig.Points
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig.Window
	}
	if cfg.Block <= 0 {
		cfg.Block = DefaultConfig.Block
	}

	l := &Limiter{
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Config returns the limiter's effective budget.
func (l *Limiter) Config() Config {
	return l.cfg
}

// Admit consumes one point for key and reports whether the request may proceed.
func (l *Limiter) Admit(key string) bool {
	return l.Check(key).Allowed
}

// Check consumes one point for key and returns the full decision.
func (l *Limiter) Check(key string) Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{remaining: l.cfg.Points, windowStart: now}
		l.entries[key] = e
	}

	if now.Before(e.blockedUntil) {
		return Decision{RetryAfter: e.blockedUntil.Sub(now)}
	}

	// window elapsed or block just expired
	if !e.blockedUntil.IsZero() || !now.Before(e.windowStart.Add(l.cfg.Window)) {
		e.remaining = l.cfg.Points
		e.windowStart = now
		e.blockedUntil = time.Time{}
	}

	if e.remaining > 0 {
		e.remaining--
		return Decision{Allowed: true, Remaining: e.remaining}
	}

	e.blockedUntil = now.Add(l.cfg.Block)
	return Decision{RetryAfter: l.cfg.Block}
}

// Sweep drops entries whose window and block have both elapsed and returns
// how many were removed.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, e := range l.entries {
		if now.Before(e.blockedUntil) || now.Before(e.windowStart.Add(l.cfg.Window)) {
			continue
		}
		delete(l.entries, key)
		removed++
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Run sweeps stale entries every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
