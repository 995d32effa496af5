package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home serves the static landing payload at GET /api/home. The body is
// fixed and kept for compatibility with the existing frontend.
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Hi, what's up?!",
		"people":  []string{"kevin", "kaize", "wu"},
	})
}

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
