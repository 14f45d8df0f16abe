package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// RateLimitConfig holds fixed-window rate limiting settings.
type RateLimitConfig struct {
	Enabled bool   `toml:"enabled"`
	Limit   int    `toml:"limit"`
	Window  string `toml:"window"`
}

// RateLimitEnv maps rate limit config fields to environment variable names.
type RateLimitEnv struct {
	Enabled string
	Limit   string
	Window  string
}

// WindowDuration returns Window as a time.Duration.
func (c *RateLimitConfig) WindowDuration() time.Duration {
	d, _ := time.ParseDuration(c.Window)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RateLimitConfig) Finalize(env *RateLimitEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies; numeric and
// string fields only apply when non-zero.
func (c *RateLimitConfig) Merge(overlay *RateLimitConfig) {
	c.Enabled = overlay.Enabled
	if overlay.Limit != 0 {
		c.Limit = overlay.Limit
	}
	if overlay.Window != "" {
		c.Window = overlay.Window
	}
}

func (c *RateLimitConfig) loadDefaults() {
	if c.Limit == 0 {
		c.Limit = 10
	}
	if c.Window == "" {
		c.Window = "15m"
	}
}

func (c *RateLimitConfig) loadEnv(env *RateLimitEnv) {
	envBool(env.Enabled, &c.Enabled)
	envInt(env.Limit, &c.Limit)
	envString(env.Window, &c.Window)
}

func (c *RateLimitConfig) validate() error {
	if c.Limit < 1 {
		return fmt.Errorf("limit must be positive")
	}
	if _, err := time.ParseDuration(c.Window); err != nil {
		return fmt.Errorf("invalid window: %w", err)
	}
	return nil
}

type rateWindow struct {
	start time.Time
	count int
}

// RateLimiter tracks request counts per key over fixed windows.
// State is in-process; limits apply per service instance.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	entries   map[string]*rateWindow
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimiter creates a RateLimiter from the given config.
func NewRateLimiter(cfg *RateLimitConfig) *RateLimiter {
	now := time.Now
	return &RateLimiter{
		limit:     cfg.Limit,
		window:    cfg.WindowDuration(),
		entries:   make(map[string]*rateWindow),
		now:       now,
		lastSweep: now(),
	}
}

// Allow reports whether the key may proceed, consuming one unit of its quota.
// A window begins on the first request and resets when it elapses.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.entries[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.entries[key] = &rateWindow{start: now, count: 1}
		return true
	}

	if w.count >= l.limit {
		return false
	}

	w.count++
	return true
}

// sweep drops lapsed windows so one-shot keys do not accumulate. Runs at
// most once per window length; callers hold the mutex.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}

	for key, w := range l.entries {
		if now.Sub(w.start) >= l.window {
			delete(l.entries, key)
		}
	}
	l.lastSweep = now
}

// RateLimit returns middleware that rejects requests over the configured
// fixed-window quota with 429. keyFn extracts the limit key from a request;
// empty keys fall back to the remote address. Disabled configs pass through.
func RateLimit(cfg *RateLimitConfig, keyFn func(*http.Request) string) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			key := keyFn(r)
			if key == "" {
				key = r.RemoteAddr
			}

			if !limiter.Allow(key) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(
					w,
					`{"error":"rate limit exceeded: %d requests per %s"}`,
					cfg.Limit, cfg.Window,
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
