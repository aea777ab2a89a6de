package response

import (
	"net/http"

	deliverycontext "todo/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// ErrorResponse defines the structure for error responses.
// Detail repeats the message for clients that read a flat error string.
type ErrorResponse struct {
	Detail string     `json:"detail"`
	Error  *ErrorInfo `json:"error"`
	Meta   *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// Success writes payload as the whole response body.
func Success(c echo.Context, statusCode int, payload any) error {
	return c.JSON(statusCode, payload)
}

// NoContent writes an empty response.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Detail: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// Unauthorized returns a 401 error with the Bearer challenge.
func Unauthorized(c echo.Context, errorCode string, message string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")

	return Error(c, http.StatusUnauthorized, errorCode, message, nil)
}
