package route

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/http/middleware"
	"github.com/benedict-erwin/weather-insight/http/registry"
	"github.com/benedict-erwin/weather-insight/http/v1/handler"
	"github.com/benedict-erwin/weather-insight/internal/app"
)

// init registers v1 health check routes with the registry
func init() {
	registry.Register("v1", func(g *echo.Group, c *app.Container) {
		h := handler.NewHealthHandler(c.Health)

		// public
		g.GET("/health/live", h.Live)   // Liveness probe
		g.GET("/health/ready", h.Ready) // Readiness probe

		// JWT protected
		g.GET("/health", h.Detailed, middleware.JWTAuth(c.Tokens))
	})
}
