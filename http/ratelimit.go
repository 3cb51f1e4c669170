package http

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter manages per-domain request rate limiting using a token bucket.
// It exists as politeness toward YouTube, not as an adaptive backoff
// mechanism: rates are fixed for the life of the process.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	config   RateLimiterConfig
}

// RateLimiterConfig defines per-domain request rates.
type RateLimiterConfig struct {
	// TimedtextRPS is requests per second against youtube.com (default: 2.5)
	TimedtextRPS float64
	// DataAPIRPS is requests per second against googleapis.com (default: 1.0)
	DataAPIRPS float64
	// CustomRates maps domains to RPS values; 0 disables limiting for that
	// domain. Used by tests to exercise httptest servers without throttling.
	CustomRates map[string]float64
}

// DefaultRateLimiterConfig returns conservative defaults aligned with
// YouTube's observed tolerances.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		TimedtextRPS: 2.5,
		DataAPIRPS:   1.0,
		CustomRates:  make(map[string]float64),
	}
}

// NewRateLimiter creates a new rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.TimedtextRPS == 0 {
		cfg.TimedtextRPS = DefaultRateLimiterConfig().TimedtextRPS
	}
	if cfg.DataAPIRPS == 0 {
		cfg.DataAPIRPS = DefaultRateLimiterConfig().DataAPIRPS
	}
	if cfg.CustomRates == nil {
		cfg.CustomRates = make(map[string]float64)
	}

	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   cfg,
	}
}

// Wait blocks until the rate limit allows a request for the given URL.
// Returns an error only if the context is canceled or its deadline passes.
func (rl *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	if rl == nil {
		return nil
	}

	limiter := rl.getLimiter(urlStr)
	if limiter == nil {
		return nil
	}

	return limiter.Wait(ctx)
}

// getLimiter returns the rate limiter for a URL, creating one if necessary.
func (rl *RateLimiter) getLimiter(urlStr string) *rate.Limiter {
	domain := extractDomain(urlStr)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limiters[domain]; ok {
		return limiter
	}

	rps := rl.rpsFor(domain)
	if rps == 0 {
		return nil
	}

	// Burst of 1: requests are strictly spaced, never bunched.
	limiter := rate.NewLimiter(rate.Limit(rps), 1)
	rl.limiters[domain] = limiter
	return limiter
}

// rpsFor returns the configured requests per second for a domain.
func (rl *RateLimiter) rpsFor(domain string) float64 {
	if rps, ok := rl.config.CustomRates[domain]; ok {
		return rps
	}

	switch domain {
	case "www.youtube.com", "youtube.com":
		return rl.config.TimedtextRPS
	case "www.googleapis.com", "googleapis.com":
		return rl.config.DataAPIRPS
	default:
		return rl.config.TimedtextRPS
	}
}

// SetCustomRate sets a custom rate limit for a specific domain.
func (rl *RateLimiter) SetCustomRate(domain string, rps float64) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.config.CustomRates[domain] = rps

	// Clear existing limiter to force recreation with the new rate.
	delete(rl.limiters, domain)
}

// extractDomain extracts the host from a URL string, without the port.
func extractDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	if hostname := u.Hostname(); hostname != "" {
		return hostname
	}
	return u.Host
}
