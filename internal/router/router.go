package router // package router defines how HTTP routes are registered

import (
	"github.com/labstack/echo/v4"

	"github.com/camdenmotors/dealerweb/internal/handler"
)

// RegisterRoutes registers the site-wide routes that belong to no feature
// area: the home page, the health check and the deliberate error route.
func RegisterRoutes(e *echo.Echo, b *handler.BaseHandler) {
	e.GET("/", b.Home)
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
	// Fails on purpose so the error page stays reachable in testing.
	e.GET("/trigger-error", b.TriggerError)
}
