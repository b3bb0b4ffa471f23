package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

var (
	// ErrUnauthenticated is returned when no valid session accompanies the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the session's role does not permit the operation.
	ErrForbidden = errors.New("access denied")
	// ErrDuplicate is returned when a unique field (username, email) already exists.
	ErrDuplicate = errors.New("username or email already exists")
	// ErrValidation is returned when required fields are missing or malformed.
	ErrValidation = errors.New("invalid or missing fields")
	// ErrNotFoundOrNotOwned is returned when a record is absent or owned by
	// another account. The two cases are intentionally indistinguishable.
	ErrNotFoundOrNotOwned = errors.New("record not found")
	// ErrStoreUnavailable is returned when the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic 500 so internal detail never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrDuplicate):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, ErrNotFoundOrNotOwned):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusInternalServerError, "service temporarily unavailable", "STORE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// HTTPErrorHandler renders any error escaping a handler or middleware as the
// standard JSON error body. Echo's own HTTP errors keep their status; domain
// errors go through MapErrorToHTTP.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	httpErr := MapErrorToHTTP(err)
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		httpErr = NewHTTPError(echoErr.Code, fmt.Sprintf("%v", echoErr.Message), statusCode(echoErr.Code))
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.StatusCode)
		return
	}
	_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func statusCode(code int) string {
	return strings.ReplaceAll(strings.ToUpper(http.StatusText(code)), " ", "_")
}
