package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/benedict-erwin/weather-insight/http/middleware"
	"github.com/benedict-erwin/weather-insight/http/registry"
	"github.com/benedict-erwin/weather-insight/internal/app"
	"github.com/benedict-erwin/weather-insight/internal/constants"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	"github.com/benedict-erwin/weather-insight/pkg/response"
)

// New builds the echo instance with middleware, error handling and every
// registered route.
func New(c *app.Container) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = errorHandler

	e.Use(echoMiddleware.Recover())
	e.Use(middleware.Logger)
	e.Use(middleware.Metrics(c.Metrics))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: c.Config.HTTP.CORSOrigins,
	}))
	if c.Config.HTTP.RateLimit > 0 {
		e.Use(echoMiddleware.RateLimiterWithConfig(echoMiddleware.RateLimiterConfig{
			Store: echoMiddleware.NewRateLimiterMemoryStoreWithConfig(echoMiddleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(c.Config.HTTP.RateLimit),
				Burst:     c.Config.HTTP.RateBurst,
				ExpiresIn: 3 * time.Minute,
			}),
			DenyHandler: func(ctx echo.Context, _ string, _ error) error {
				return response.FailWithCode(ctx, constants.CodeRateLimit)
			},
		}))
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))
	registry.SetupAllRoutes(e, c)
	return e
}

// Start serves on port (or on listener when one is handed over) until
// SIGINT/SIGTERM, then shuts down gracefully.
func Start(c *app.Container, port int, listener net.Listener) error {
	e := New(c)
	log := logger.WithScope("startServer")

	if listener != nil {
		e.Listener = listener
	}

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", port)
		log.Info().Str("addr", addr).Int("routes", len(e.Routes())).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		log.Error().Err(err).Msg("Server failed to start")
		return err
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}

// errorHandler answers echo errors (404, 405, bind failures) with the envelope
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		_ = response.FailWithError(c, err)
		return
	}

	code := codeForStatus(he.Code)
	message := constants.GetErrorMessage(code)
	if he.Message != nil {
		message = fmt.Sprintf("%v", he.Message)
	}
	_ = response.Fail(c, he.Code, code, message)
}

func codeForStatus(status int) int {
	switch status {
	case http.StatusBadRequest:
		return constants.CodeBadRequest
	case http.StatusUnauthorized:
		return constants.CodeUnauthorized
	case http.StatusForbidden:
		return constants.CodeForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return constants.CodeNotFound
	case http.StatusConflict:
		return constants.CodeConflict
	case http.StatusUnprocessableEntity:
		return constants.CodeUnprocessable
	case http.StatusTooManyRequests:
		return constants.CodeRateLimit
	case http.StatusBadGateway:
		return constants.CodeBadGateway
	case http.StatusServiceUnavailable:
		return constants.CodeServiceUnavailable
	case http.StatusGatewayTimeout:
		return constants.CodeGatewayTimeout
	default:
		return constants.CodeInternalError
	}
}

// jsonSerializer binds and renders JSON with goccy/go-json
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i any) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body").SetInternal(err)
	}
	return nil
}
