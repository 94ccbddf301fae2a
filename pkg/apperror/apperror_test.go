package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/benedict-erwin/weather-insight/internal/constants"
)

func TestKinds_MapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"authentication", Authentication(""), http.StatusUnauthorized},
		{"authorization", Authorization(""), http.StatusForbidden},
		{"not found", NotFound("User"), http.StatusNotFound},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "User not found", NotFound("User").Message)
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "Authentication failed", Authentication("").Message)
	assert.Equal(t, "Access denied", Authorization("").Message)
	assert.Equal(t, "Internal server error", Internal(errors.New("db down")).Message)
}

func TestAs_UnwrapsThroughWrapping(t *testing.T) {
	base := Conflict("User already exists").WithCode(constants.CodeDuplicateResource)
	wrapped := fmt.Errorf("create user: %w", base)

	got := As(wrapped)
	assert.Same(t, base, got)
	assert.Equal(t, http.StatusBadRequest, got.HTTPStatus())
}

func TestAs_PlainErrorBecomesInternal(t *testing.T) {
	cause := errors.New("disk full")
	got := As(cause)

	assert.Equal(t, KindInternal, got.Kind)
	assert.ErrorIs(t, got, cause)
}

func TestError_String(t *testing.T) {
	assert.Equal(t, "VALIDATION_ERROR: bad", Validation("bad").Error())
	assert.Equal(t, "INTERNAL_ERROR: Internal server error: boom", Internal(errors.New("boom")).Error())
}
