package constants

import "github.com/labstack/echo/v4"

// Echo context keys
const (
	RequestIDKey = "x-req-id"
	UserIDKey    = "x-user-id"
	ClaimsKey    = "x-claims"
)

// Request ID headers, in order of preference
var requestIDHeaders = []string{
	"X-Request-ID",
	"X-Correlation-ID",
	"Request-ID",
}

// HeaderRequestID is echoed back on every response
const HeaderRequestID = "X-Request-ID"

// GetRequestIDFromHeaders returns the first request ID supplied by the caller
func GetRequestIDFromHeaders(c echo.Context) string {
	for _, h := range requestIDHeaders {
		if v := c.Request().Header.Get(h); v != "" {
			return v
		}
	}
	return ""
}

// GetRequestID returns the request ID stored by the logger middleware
func GetRequestID(c echo.Context) string {
	return getString(c, RequestIDKey)
}

// GetUserID returns the authenticated user's ID, empty on public routes
func GetUserID(c echo.Context) string {
	return getString(c, UserIDKey)
}

func getString(c echo.Context, key string) string {
	v, _ := c.Get(key).(string)
	return v
}
