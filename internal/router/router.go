package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring probe this endpoint.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Register, login, refresh and logout issue or exchange tokens and
	// therefore do not require an existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("MANAGER", "HOST"))
	auth.GET("/me", a.Me)
}

// RegisterReservations wires the reservation resource.  Reads are open
// so front-of-house screens can poll without a session; writes require
// a staff token.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	read := e.Group("/v1/reservations")
	read.Use(extra...)
	read.GET("", h.List)
	read.GET("/:id", h.Get)

	write := e.Group("/v1/reservations")
	write.Use(middleware.JWTAuth(jwtSecret))
	write.Use(middleware.RequireRole("MANAGER", "HOST"))
	write.POST("", h.Create)
	write.PUT("/:id/status", h.UpdateStatus)
	write.PUT("/:id/cancel", h.Cancel)
}

// RegisterTables wires the dining-table resource with the same split:
// the floor plan is publicly readable, seat and release need staff
// auth.
func RegisterTables(e *echo.Echo, h *handler.TableHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	read := e.Group("/v1/tables")
	read.Use(extra...)
	read.GET("", h.List)

	write := e.Group("/v1/tables")
	write.Use(middleware.JWTAuth(jwtSecret))
	write.Use(middleware.RequireRole("MANAGER", "HOST"))
	write.POST("", h.Create)
	write.PUT("/:id/seat", h.Seat)
	write.DELETE("/:id/seat", h.Release)
}
