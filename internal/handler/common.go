// Package handler wires HTTP requests to repositories and the booking
// service. Handlers stay thin: bind, validate, call, translate errors.
package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user's ID from the context.
// JWTAuth stores the raw "sub" claim, which the JWT library decodes as a
// float64 for numeric values; some clients send it as a string.
func currentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case string:
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			return id, true
		}
	case uint64:
		return v, true
	}
	return 0, false
}

// currentRole returns the role claim set by JWTAuth.
func currentRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
