package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	authEntity "github.com/benedict-erwin/weather-insight/internal/entities/auth"
	authService "github.com/benedict-erwin/weather-insight/internal/services/auth"
	"github.com/benedict-erwin/weather-insight/pkg/auth"
	"github.com/benedict-erwin/weather-insight/pkg/response"
)

type AuthHandler struct {
	svc *authService.Service
}

func NewAuthHandler(svc *authService.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login exchanges credentials for an access token
func (h *AuthHandler) Login(c echo.Context) error {
	var req authEntity.LoginRequest

	if err := c.Bind(&req); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeInvalidJSON, "Invalid JSON body")
	}
	if err := c.Validate(&req); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeValidationFailed, err.Error())
	}

	res, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.FailWithError(c, err)
	}
	return response.Success(c, res)
}

// Profile returns the caller identified by the bearer token
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, ok := c.Get(constants.ClaimsKey).(*auth.Claims)
	if !ok {
		return response.FailWithCode(c, constants.CodeMissingAuth)
	}
	return response.Success(c, authService.PrincipalFrom(claims))
}
