package constants

import "net/http"

// Error Code Categories
// Format: XYZZZ where:
// XY  = HTTP status family (40 = 400, 41 = 401, ...)
// ZZZ = specific error

const (
	CodeSuccess = 0

	// 400 Bad Request (40xxx)
	CodeBadRequest        = 40000
	CodeInvalidJSON       = 40001
	CodeValidationFailed  = 40002
	CodeMissingParameter  = 40003
	CodeInvalidParameter  = 40004
	CodeDuplicateResource = 40005 // duplicate e-mail answers 400 like the public API always has

	// 401 Unauthorized (41xxx)
	CodeUnauthorized       = 41000
	CodeMissingAuth        = 41001
	CodeInvalidToken       = 41002
	CodeExpiredToken       = 41003
	CodeInvalidCredentials = 41004

	// 403 Forbidden (43xxx)
	CodeForbidden = 43000

	// 404 Not Found (44xxx)
	CodeNotFound         = 44000
	CodeResourceNotFound = 44001

	// 409 Conflict (49xxx)
	CodeConflict = 49000

	// 422 Unprocessable Entity (42xxx)
	CodeUnprocessable = 42000

	// 429 Too Many Requests
	CodeRateLimit = 42900

	// 500 Internal Server Error (50xxx)
	CodeInternalError      = 50000
	CodeDatabaseError      = 50001
	CodeInfluxDBError      = 50002
	CodeRedisError         = 50003
	CodeJobDispatchError   = 50004
	CodeConfigurationError = 50005

	// 502 Bad Gateway (52xxx)
	CodeBadGateway       = 52000
	CodeExternalAPIError = 52001

	// 503 Service Unavailable (53xxx)
	CodeServiceUnavailable = 53000

	// 504 Gateway Timeout (54xxx)
	CodeGatewayTimeout = 54000
)

// ErrorMessages holds the default message per code
var ErrorMessages = map[int]string{
	CodeSuccess: "Success",

	CodeBadRequest:        "Bad request",
	CodeInvalidJSON:       "Invalid JSON payload",
	CodeValidationFailed:  "Validation failed",
	CodeMissingParameter:  "Required parameter missing",
	CodeInvalidParameter:  "Invalid parameter value",
	CodeDuplicateResource: "Resource already exists",

	CodeUnauthorized:       "Unauthorized",
	CodeMissingAuth:        "Authentication required: provide a Bearer token",
	CodeInvalidToken:       "Invalid token",
	CodeExpiredToken:       "Token has expired",
	CodeInvalidCredentials: "Invalid credentials",

	CodeForbidden: "Forbidden",

	CodeNotFound:         "Not found",
	CodeResourceNotFound: "Resource not found",

	CodeConflict: "Conflict",

	CodeUnprocessable: "Unprocessable entity",
	CodeRateLimit:     "Rate limit exceeded",

	CodeInternalError:      "Internal server error",
	CodeDatabaseError:      "Database error",
	CodeInfluxDBError:      "InfluxDB error",
	CodeRedisError:         "Redis error",
	CodeJobDispatchError:   "Failed to dispatch job",
	CodeConfigurationError: "Configuration error",

	CodeBadGateway:       "Bad gateway",
	CodeExternalAPIError: "External API error",

	CodeServiceUnavailable: "Service unavailable",
	CodeGatewayTimeout:     "Gateway timeout",
}

// GetErrorMessage returns the standard message for an error code
func GetErrorMessage(code int) string {
	if msg, exists := ErrorMessages[code]; exists {
		return msg
	}
	return "Unknown error"
}

// GetHTTPStatusFromCode returns the HTTP status for an error code
func GetHTTPStatusFromCode(code int) int {
	switch {
	case code == CodeSuccess:
		return http.StatusOK
	case code >= 40000 && code < 41000:
		return http.StatusBadRequest
	case code >= 41000 && code < 42000:
		return http.StatusUnauthorized
	case code >= 42900 && code < 43000:
		return http.StatusTooManyRequests
	case code >= 42000 && code < 42900:
		return http.StatusUnprocessableEntity
	case code >= 43000 && code < 44000:
		return http.StatusForbidden
	case code >= 44000 && code < 45000:
		return http.StatusNotFound
	case code >= 49000 && code < 50000:
		return http.StatusConflict
	case code >= 52000 && code < 53000:
		return http.StatusBadGateway
	case code >= 53000 && code < 54000:
		return http.StatusServiceUnavailable
	case code >= 54000 && code < 55000:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GetCodeFromHTTPStatus maps an HTTP status to its generic error code
func GetCodeFromHTTPStatus(status int) int {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusUnprocessableEntity:
		return CodeUnprocessable
	case http.StatusTooManyRequests:
		return CodeRateLimit
	case http.StatusBadGateway:
		return CodeBadGateway
	case http.StatusServiceUnavailable:
		return CodeServiceUnavailable
	case http.StatusGatewayTimeout:
		return CodeGatewayTimeout
	default:
		return CodeInternalError
	}
}
