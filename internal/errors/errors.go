package errors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when an account is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrBlocked is returned when a blocked account tries to log in.
	ErrBlocked = errors.New("your account is blocked, contact an administrator")
	// ErrInvalidAction is returned for an unknown bulk action.
	ErrInvalidAction = errors.New("invalid action")
	// ErrInvalidToken is returned for an undecodable verification token.
	ErrInvalidToken = errors.New("invalid verification token")
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

// MapErrorToHTTP maps domain and store errors to HTTP errors at the
// boundary. Unexpected errors collapse to a generic 500; the detail stays in
// the logs.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken), errors.Is(err, gorm.ErrDuplicatedKey):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrBlocked):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_BLOCKED")
	case errors.Is(err, ErrInvalidAction):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ACTION")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
