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
		h := handler.NewWeatherHandler(c.Weather)

		w := g.Group("/weather")
		// collectors push readings without a token
		w.POST("/logs", h.CreateLog)

		protected := w.Group("", middleware.JWTAuth(c.Tokens))
		protected.GET("/logs", h.ListLogs)
		protected.GET("/insights", h.Insights)
	})
}
