package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid username or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid or expired token"}

	// Checkout validation errors, raised locally before any network call.
	ErrEmptyCart        = &AppError{Code: http.StatusBadRequest, Message: "Cart is empty"}
	ErrNoBranchSelected = &AppError{Code: http.StatusBadRequest, Message: "No branch selected"}
	ErrCheckoutInFlight = &AppError{Code: http.StatusConflict, Message: "A checkout is already being processed"}
	ErrCatalogEmpty     = &AppError{Code: http.StatusConflict, Message: "No products loaded"}

	// ErrUpstreamUnavailable covers transport failures: no HTTP response,
	// timeout, or an unreadable body.
	ErrUpstreamUnavailable = &AppError{Code: http.StatusBadGateway, Message: "Network error processing sale"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewInsufficientStockError wraps the upstream "Insufficient stock"
// message so callers can tell a stock rejection apart from a generic
// failure.
func NewInsufficientStockError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewNoInventoryRecordError wraps the upstream "No inventory record"
// message for products the branch has never stocked.
func NewNoInventoryRecordError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
