package response

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	"github.com/benedict-erwin/weather-insight/pkg/apperror"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// Buffers larger than this are dropped instead of pooled
const maxPooledBuffer = 64 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

// Response is the envelope every endpoint answers with
type Response struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Data      any    `json:"data"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func write(c echo.Context, status int, body Response) error {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		if buf.Cap() < maxPooledBuffer {
			bufferPool.Put(buf)
		}
	}()

	body.RequestID = constants.GetRequestID(c)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	c.Response().WriteHeader(status)
	_, err := c.Response().Write(buf.Bytes())
	return err
}

// Success answers 200 with data
func Success(c echo.Context, data any) error {
	return write(c, http.StatusOK, Response{Success: true, Code: constants.CodeSuccess, Data: data, Message: "Successful"})
}

// Created answers 201 with the created resource
func Created(c echo.Context, data any) error {
	return write(c, http.StatusCreated, Response{Success: true, Code: constants.CodeSuccess, Data: data, Message: "Created"})
}

// General answers with a caller-chosen status, code and message
func General(c echo.Context, httpStatus int, code int, data any, message string) error {
	return write(c, httpStatus, Response{Success: httpStatus < 400, Code: code, Data: data, Message: message})
}

// Fail answers an error with an explicit status
func Fail(c echo.Context, httpStatus int, code int, message string) error {
	return write(c, httpStatus, Response{Code: code, Message: message})
}

// FailWithCode answers an error using the code's default status and message
func FailWithCode(c echo.Context, code int) error {
	return Fail(c, constants.GetHTTPStatusFromCode(code), code, constants.GetErrorMessage(code))
}

// FailWithCodeAndMessage answers an error using the code's default status
func FailWithCodeAndMessage(c echo.Context, code int, message string) error {
	return Fail(c, constants.GetHTTPStatusFromCode(code), code, message)
}

// FailWithError answers a service error. Unclassified errors become a 500
// whose cause is logged but not returned.
func FailWithError(c echo.Context, err error) error {
	appErr := apperror.As(err)
	if appErr.Kind == apperror.KindInternal {
		logger.WithScope("response").Error().
			Err(appErr.Err).
			Str("path", c.Request().URL.Path).
			Str("request_id", constants.GetRequestID(c)).
			Msg("Request failed")
	}
	return Fail(c, appErr.HTTPStatus(), appErr.Code, appErr.Message)
}
