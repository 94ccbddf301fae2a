package middleware

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	"github.com/benedict-erwin/weather-insight/pkg/utils"
)

// Logger middleware logs HTTP requests with timing and generates request IDs
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		// Get Request ID from header or generate it
		reqId := constants.GetRequestIDFromHeaders(c)
		if reqId == "" {
			reqId = generateRequestID()
		}
		c.Set(constants.RequestIDKey, reqId)
		c.Response().Header().Set(constants.HeaderRequestID, reqId)

		err := next(c)

		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}

		event := logger.WithScope("accessLog").Info()
		if userID := constants.GetUserID(c); userID != "" {
			event = event.Str("user-id", userID)
		}
		event.
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", status).
			Int64("latency", time.Since(start).Microseconds()).
			Str("request-id", reqId).
			Msg("HTTP Request")

		return err
	}
}

// generateRequestID creates unique request identifier with timestamp and random component
func generateRequestID() string {
	return fmt.Sprintf("req-%d-%08x", utils.Now().Unix(), rand.Uint32())
}
