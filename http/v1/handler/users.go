package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	userEntity "github.com/benedict-erwin/weather-insight/internal/entities/users"
	"github.com/benedict-erwin/weather-insight/internal/services/users"
	"github.com/benedict-erwin/weather-insight/pkg/response"
)

type UserHandler struct {
	svc *users.Service
}

func NewUserHandler(svc *users.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create registers a new user
func (h *UserHandler) Create(c echo.Context) error {
	var req userEntity.CreateUserRequest

	if err := c.Bind(&req); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeInvalidJSON, "Invalid JSON body")
	}
	if err := c.Validate(&req); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeValidationFailed, err.Error())
	}

	u, err := h.svc.Create(c.Request().Context(), &req)
	if err != nil {
		return response.FailWithError(c, err)
	}
	return response.Created(c, u.ToResponse())
}

// List returns every user without password hashes
func (h *UserHandler) List(c echo.Context) error {
	all, err := h.svc.FindAll(c.Request().Context())
	if err != nil {
		return response.FailWithError(c, err)
	}
	return response.Success(c, userEntity.ToResponses(all))
}
