// Package middleware contains reusable HTTP middleware: JWT
// authentication, role enforcement, Redis rate limiting and response
// caching.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/auth"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUserName = "user_name"
	CtxRole     = "role"
)

// JWTAuth returns a middleware that validates a Bearer access token
// and injects the bearer's id, name and role into the request
// context.  The secret must match the one used when issuing tokens.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			id, err := auth.Verify(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(CtxUserID, id.UserID)
			c.Set(CtxUserName, id.Name)
			c.Set(CtxRole, id.Role)
			return next(c)
		}
	}
}
