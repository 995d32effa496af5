package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject (the username) into the request context.
// The provided secret must match the one used when issuing tokens. This
// middleware should wrap protected routes so that handlers can read the
// authenticated identity via `c.Get("username")`.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret; reject other signing methods.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid claims"})
			}
			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid claims"})
			}

			// Handlers resolve the user row from this username; a stale
			// token for a deleted user yields 404 there, not here.
			c.Set("username", sub)
			return next(c)
		}
	}
}
