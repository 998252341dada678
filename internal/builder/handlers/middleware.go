package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitConfig indicates how many requests are allowed within a given
// interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// RateLimiter throttles a route with a shared token bucket. Applied to the
// public job list, which candidates may poll.
func RateLimiter(cfg RateLimitConfig) echo.MiddlewareFunc {
	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	limiter := rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return Error(c, http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
