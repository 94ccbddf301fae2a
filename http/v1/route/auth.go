package route

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/http/middleware"
	"github.com/benedict-erwin/weather-insight/http/registry"
	"github.com/benedict-erwin/weather-insight/http/v1/handler"
	"github.com/benedict-erwin/weather-insight/internal/app"
)

func init() {
	registry.Register("v1", func(g *echo.Group, c *app.Container) {
		h := handler.NewAuthHandler(c.Auth)

		a := g.Group("/auth")
		a.POST("/login", h.Login)
		a.GET("/profile", h.Profile, middleware.JWTAuth(c.Tokens))
	})
}
