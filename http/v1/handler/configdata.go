package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	configEntity "github.com/benedict-erwin/weather-insight/internal/entities/configdata"
	"github.com/benedict-erwin/weather-insight/internal/services/configdata"
	"github.com/benedict-erwin/weather-insight/pkg/response"
)

type ConfigHandler struct {
	svc *configdata.Service
}

func NewConfigHandler(svc *configdata.Service) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

// Get returns the monitored location
func (h *ConfigHandler) Get(c echo.Context) error {
	doc, err := h.svc.GetConfig(c.Request().Context())
	if err != nil {
		return response.FailWithError(c, err)
	}
	return response.Success(c, doc.ToResponse())
}

// Update stores a new monitored location and notifies subscribers
func (h *ConfigHandler) Update(c echo.Context) error {
	var req configEntity.UpdateRequest

	if err := c.Bind(&req); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeInvalidJSON, "Invalid JSON body")
	}
	if err := c.Validate(&req); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeValidationFailed, err.Error())
	}

	doc, err := h.svc.UpdateConfig(c.Request().Context(), &req)
	if err != nil {
		return response.FailWithError(c, err)
	}
	return response.Success(c, doc.ToResponse())
}
