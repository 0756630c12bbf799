package router // package router defines how HTTP routes are registered for the application

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/avelks/donorboard/internal/handler"    // import the handlers that implement business logic
	"github.com/avelks/donorboard/internal/middleware" // import middleware for session authentication
	"github.com/avelks/donorboard/internal/repository" // session store consumed by the auth middleware
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the root redirect.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems probe this endpoint.
	e.GET("/healthz", handler.Health)
	// The root path has no content of its own; it forwards to login.
	e.GET("/", handler.Home)
}

// RegisterAuth registers the credential endpoints and the protected
// application routes.  Unauthenticated operations (forms, register, login)
// take the optional rate-limit middleware; everything that touches user
// state sits behind SessionAuth, which resolves the opaque session token
// to a user id before any handler runs.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, d *handler.DashboardHandler, don *handler.DonationHandler, sessions repository.SessionStore, limit echo.MiddlewareFunc) {
	// Credential endpoints are the brute-force surface; the limiter wraps
	// only these.
	e.GET("/login", a.ShowLogin)
	e.POST("/login", a.Login, limit)
	e.GET("/register", a.ShowRegister)
	e.POST("/register", a.Register, limit)

	// Protected group: every route below requires an active session.
	auth := e.Group("")
	auth.Use(middleware.SessionAuth(sessions))
	auth.GET("/dashboard", d.Dashboard)
	auth.POST("/donate", don.Donate)
	auth.GET("/thankyou", d.ThankYou)
	// Logout accepts both methods so a plain link works alongside a form.
	auth.GET("/logout", a.Logout)
	auth.POST("/logout", a.Logout)
}
