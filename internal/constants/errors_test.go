package constants

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{CodeSuccess, http.StatusOK},
		{CodeValidationFailed, http.StatusBadRequest},
		{CodeDuplicateResource, http.StatusBadRequest},
		{CodeMissingAuth, http.StatusUnauthorized},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeUnprocessable, http.StatusUnprocessableEntity},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeForbidden, http.StatusForbidden},
		{CodeResourceNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeDatabaseError, http.StatusInternalServerError},
		{CodeExternalAPIError, http.StatusBadGateway},
		{CodeServiceUnavailable, http.StatusServiceUnavailable},
		{CodeGatewayTimeout, http.StatusGatewayTimeout},
		{12345, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatusFromCode(tt.code), "code %d", tt.code)
	}
}

func TestGetCodeFromHTTPStatus_RoundTripsFamily(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 409, 422, 429, 500, 502, 503, 504} {
		assert.Equal(t, status, GetHTTPStatusFromCode(GetCodeFromHTTPStatus(status)), "status %d", status)
	}
	assert.Equal(t, CodeInternalError, GetCodeFromHTTPStatus(418))
}

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, "Invalid credentials", GetErrorMessage(CodeInvalidCredentials))
	assert.Equal(t, "Unknown error", GetErrorMessage(99999))
}
