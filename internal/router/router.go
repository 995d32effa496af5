package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/kevinwu/room-reservation/internal/handler"
	"github.com/kevinwu/room-reservation/internal/middleware"
)

// RegisterRoutes wires every endpoint onto the provided Echo instance. The
// /api paths are kept exactly as the existing frontend expects them,
// including the unauthenticated /api/reservations_withoutAuth overview.
// The cache middleware is applied only to the public read-mostly routes.
// The rate limiter is attached per group rather than globally: on the
// protected group it runs after JWTAuth, so user-based key strategies see
// the authenticated username; open routes are keyed as "anon"/IP. The
// liveness probe is never rate limited.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, rooms *handler.RoomHandler, reservations *handler.ReservationHandler, jwtSecret string, cache, limiter echo.MiddlewareFunc) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")

	// Open routes: no session required.
	open := api.Group("", limiter)
	open.GET("/home", handler.Home)
	open.GET("/rooms", rooms.GetRooms, cache)
	open.POST("/signup", a.Signup)
	open.POST("/login", a.Login)
	open.GET("/reservations_withoutAuth", reservations.ListAll, cache)

	// Protected routes: a valid bearer token is required. JWTAuth stores
	// the token's username in the context before the limiter builds its key.
	auth := api.Group("", middleware.JWTAuth(jwtSecret), limiter)
	auth.GET("/protected", a.Protected)
	auth.GET("/reservations", reservations.ListMine)
	auth.POST("/reserve", reservations.Reserve)
	auth.PUT("/reservations/:id", reservations.Update)
	auth.DELETE("/reservations/:id", reservations.Delete)
}
