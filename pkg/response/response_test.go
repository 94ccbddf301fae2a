package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	"github.com/benedict-erwin/weather-insight/pkg/apperror"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(constants.RequestIDKey, "req-1")
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Success(c, map[string]string{"city": "Recife"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSONCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Equal(t, map[string]any{"city": "Recife"}, body.Data)
}

func TestCreated(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Created(c, "x"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decode(t, rec).Success)
}

func TestFailWithCode(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, FailWithCode(c, constants.CodeMissingAuth))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, constants.CodeMissingAuth, body.Code)
	assert.Equal(t, constants.GetErrorMessage(constants.CodeMissingAuth), body.Message)
	assert.Nil(t, body.Data)
}

func TestFailWithError_Classified(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, FailWithError(c, apperror.NotFound("User")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decode(t, rec).Message)
}

func TestFailWithError_HidesInternalCause(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, FailWithError(c, errors.New("sqlite: disk I/O error")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, constants.CodeInternalError, body.Code)
	assert.NotContains(t, body.Message, "sqlite")
}
