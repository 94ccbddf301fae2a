package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	"github.com/benedict-erwin/weather-insight/internal/services/health"
	"github.com/benedict-erwin/weather-insight/pkg/response"
)

type HealthHandler struct {
	svc *health.Service
}

func NewHealthHandler(svc *health.Service) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Detailed returns comprehensive health check information
func (h *HealthHandler) Detailed(c echo.Context) error {
	status := h.svc.Detailed(c.Request().Context())

	httpStatus := http.StatusOK
	if status.Status == health.StatusUnhealthy {
		httpStatus = http.StatusServiceUnavailable
	}
	return response.General(c, httpStatus, constants.CodeSuccess, map[string]any{"health": status}, "Health check completed")
}

// Live returns basic liveness check
func (h *HealthHandler) Live(c echo.Context) error {
	return response.Success(c, h.svc.Live())
}

// Ready returns readiness of the backing services
func (h *HealthHandler) Ready(c echo.Context) error {
	status := h.svc.Ready(c.Request().Context())

	if status.Status != health.StatusReady {
		return response.General(c, http.StatusServiceUnavailable, constants.CodeServiceUnavailable,
			map[string]any{"readiness": status}, "Service not ready")
	}
	return response.General(c, http.StatusOK, constants.CodeSuccess, map[string]any{"readiness": status}, "Readiness check completed")
}
