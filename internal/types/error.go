package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// CustomError carries the HTTP status, a user-facing message and a short
// machine type through the Fiber error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Error types for the platform failure taxonomy.
const (
	TypeUnauthenticated     = "unauthenticated"
	TypeNotFound            = "notFound"
	TypeStoreUnavailable    = "storeUnavailable"
	TypeRemoteServiceFailed = "remoteServiceFailure"
)

// Unauthenticated builds the error for actions that require a session.
func Unauthenticated(message string) *CustomError {
	return &CustomError{
		Code:    fiber.StatusUnauthorized,
		Message: message,
		Type:    TypeUnauthenticated,
	}
}

// NotFound builds the error for a missing referenced record.
func NotFound(message string) *CustomError {
	return &CustomError{
		Code:    fiber.StatusNotFound,
		Message: message,
		Type:    TypeNotFound,
	}
}

// StoreUnavailable wraps a transient persistence failure.
func StoreUnavailable(err error) *CustomError {
	return &CustomError{
		Code:    fiber.StatusServiceUnavailable,
		Message: fmt.Sprintf("store unavailable: %v", err),
		Type:    TypeStoreUnavailable,
	}
}

// RemoteServiceFailure wraps a failed call to an external service.
func RemoteServiceFailure(service string, err error) *CustomError {
	return &CustomError{
		Code:    fiber.StatusBadGateway,
		Message: fmt.Sprintf("%s call failed: %v", service, err),
		Type:    TypeRemoteServiceFailed,
	}
}

// IsType reports whether err is a CustomError of the given type.
func IsType(err error, errorType string) bool {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Type == errorType
	}
	return false
}
