package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cinepass/ticketing/internal/config"
)

// RateLimit returns a fixed-window limiter backed by Redis.  Each client
// gets cfg.Max requests per cfg.Window; the counter key combines the
// client identity and the matched route so one noisy endpoint cannot
// starve the rest.  When Redis is unavailable the limiter fails open so
// an infrastructure outage never blocks bookings.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			window := time.Now().Unix() / int64(cfg.Window.Seconds())
			key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, clientID(c), c.Path(), window)

			pipe := rdb.Pipeline()
			incr := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, cfg.Window)
			if _, err := pipe.Exec(ctx); err != nil {
				return next(c)
			}
			if incr.Val() > int64(cfg.Max) {
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(cfg.Window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}

// clientID identifies the caller for rate limiting: the JWT subject when
// authenticated, otherwise the remote IP.
func clientID(c echo.Context) string {
	if v := c.Get("user"); v != nil {
		if tok, ok := v.(*jwt.Token); ok {
			if cl, ok := tok.Claims.(jwt.MapClaims); ok {
				if sub, ok := cl["sub"].(string); ok && sub != "" {
					return "u:" + sub
				}
				if sub, ok := cl["sub"].(float64); ok {
					return fmt.Sprintf("u:%.0f", sub)
				}
			}
		}
	}
	if v, ok := c.Get("user_id").(float64); ok {
		return fmt.Sprintf("u:%.0f", v)
	}
	return "ip:" + c.RealIP()
}
