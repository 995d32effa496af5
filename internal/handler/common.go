package handler // handler defines http handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// usernameFromContext extracts the authenticated username stored by the
// JWT middleware. It returns an error when the value is missing, which
// means the route was registered without the auth middleware.
func usernameFromContext(c echo.Context) (string, error) {
	v := c.Get("username")
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("missing username in context")
}
