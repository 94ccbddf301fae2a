package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	"github.com/benedict-erwin/weather-insight/pkg/auth"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	"github.com/benedict-erwin/weather-insight/pkg/response"
)

// JWTAuth rejects requests without a valid bearer token and stores the
// caller's ID and verified claims on the echo context.
func JWTAuth(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.WithScope("JWTAuthMiddleware")

			// Extract Bearer token from Authorization header
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn().
					Str("path", c.Request().URL.Path).
					Str("method", c.Request().Method).
					Msg("Missing Authorization header")
				return response.FailWithCode(c, constants.CodeMissingAuth)
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn().
					Str("path", c.Request().URL.Path).
					Str("method", c.Request().Method).
					Msg("Invalid Authorization header format")
				return response.FailWithCode(c, constants.CodeInvalidToken)
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if tokenString == "" {
				log.Warn().
					Str("path", c.Request().URL.Path).
					Str("method", c.Request().Method).
					Msg("Empty bearer token")
				return response.FailWithCode(c, constants.CodeInvalidToken)
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				log.Warn().
					Err(err).
					Str("path", c.Request().URL.Path).
					Str("method", c.Request().Method).
					Msg("JWT verification failed")
				if errors.Is(err, auth.ErrExpiredToken) {
					return response.FailWithCode(c, constants.CodeExpiredToken)
				}
				return response.FailWithCode(c, constants.CodeInvalidToken)
			}

			c.Set(constants.UserIDKey, claims.Subject)
			c.Set(constants.ClaimsKey, claims)

			log.Debug().
				Str("user_id", claims.Subject).
				Str("path", c.Request().URL.Path).
				Msg("Authentication successful")

			return next(c)
		}
	}
}
