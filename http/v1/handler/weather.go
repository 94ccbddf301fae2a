package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	weatherEntity "github.com/benedict-erwin/weather-insight/internal/entities/weather"
	"github.com/benedict-erwin/weather-insight/internal/services/weather"
	"github.com/benedict-erwin/weather-insight/pkg/response"
)

type WeatherHandler struct {
	svc *weather.Service
}

func NewWeatherHandler(svc *weather.Service) *WeatherHandler {
	return &WeatherHandler{svc: svc}
}

// CreateLog stores a reading pushed by a collector
func (h *WeatherHandler) CreateLog(c echo.Context) error {
	var req weatherEntity.CreateLogRequest

	if err := c.Bind(&req); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeInvalidJSON, "Invalid JSON body")
	}
	if err := c.Validate(&req); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeValidationFailed, err.Error())
	}

	ctx := weather.WithSource(c.Request().Context(), weather.SourceAPI)
	l, err := h.svc.CreateLog(ctx, &req)
	if err != nil {
		return response.FailWithError(c, err)
	}
	return response.Created(c, l.ToResponse())
}

// ListLogs returns every log, newest first
func (h *WeatherHandler) ListLogs(c echo.Context) error {
	logs, err := h.svc.GetAllLogs(c.Request().Context())
	if err != nil {
		return response.FailWithError(c, err)
	}
	return response.Success(c, weatherEntity.ToResponses(logs))
}

func (h *WeatherHandler) Insights(c echo.Context) error {
	insight, err := h.svc.GetInsights(c.Request().Context())
	if err != nil {
		return response.FailWithError(c, err)
	}
	return response.Success(c, insight)
}
