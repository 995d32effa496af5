package middleware

// identity.go provides the identity lookup used by the rate-limit key
// builder. It reads the username stored by JWTAuth; requests without a
// token are keyed as "anon".

import (
	"github.com/labstack/echo/v4"
)

// currentUsername extracts the authenticated username from context. It
// returns "anon" when no user is authenticated.
func currentUsername(c echo.Context) string {
	if v := c.Get("username"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
