package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitConfig sizes the per-client token buckets.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	// ExpiresIn drops buckets of clients idle for this long.
	ExpiresIn time.Duration
}

// DefaultRateLimitConfig suits the credential lookup, which scripts call
// once per run.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 5,
		BurstSize:         20,
		ExpiresIn:         3 * time.Minute,
	}
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	def := DefaultRateLimitConfig()
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = def.RequestsPerSecond
	}
	if c.BurstSize <= 0 {
		c.BurstSize = def.BurstSize
	}
	if c.ExpiresIn <= 0 {
		c.ExpiresIn = def.ExpiresIn
	}
	return c
}

// retryAfter is the whole number of seconds until one token refills.
func (c RateLimitConfig) retryAfter() int {
	return int(math.Max(1, math.Ceil(1/c.RequestsPerSecond)))
}

// RateLimit throttles each client IP independently. Rejected requests get
// 429 with a Retry-After header. Non-positive settings fall back to
// DefaultRateLimitConfig.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	cfg = cfg.withDefaults()
	limit := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', -1, 64)
	retry := strconv.Itoa(cfg.retryAfter())

	limiter := echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RequestsPerSecond),
			Burst:     cfg.BurstSize,
			ExpiresIn: cfg.ExpiresIn,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			h := c.Response().Header()
			h.Set("Retry-After", retry)
			h.Set("X-RateLimit-Remaining", "0")
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		limited := limiter(next)
		return func(c echo.Context) error {
			c.Response().Header().Set("X-RateLimit-Limit", limit)
			return limited(c)
		}
	}
}
