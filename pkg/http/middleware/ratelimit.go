package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AllowFunc reports whether a request identified by key may proceed.
type AllowFunc func(key string) bool

// RateLimit rejects requests with 429 when allow returns false. Requests are keyed by client IP.
func RateLimit(allow AllowFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if allow != nil && !allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error":   "too-many-requests",
					"message": "rate limit exceeded, retry later",
				})
			}
			return next(c)
		}
	}
}
