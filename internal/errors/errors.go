package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrProfileNotFound is returned when no profile row matches an identity.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileIncomplete is returned when a profile could not be synthesized
	// and the user must complete it manually.
	ErrProfileIncomplete = errors.New("profile incomplete")
	// ErrSchemaMissing is returned when a required table does not exist.
	ErrSchemaMissing = errors.New("database schema is not set up")
	// ErrTruckNotFound is returned when a truck is not found.
	ErrTruckNotFound = errors.New("truck not found")
	// ErrBookingNotFound is returned when a booking is not found.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrJobNotFound is returned when a job is not found.
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidTransition is returned when a job status change is not allowed.
	ErrInvalidTransition = errors.New("invalid job status transition")
	// ErrInvalidDates is returned when a booking's end date precedes its start date.
	ErrInvalidDates = errors.New("end date must not be before start date")
	// ErrNotOwner is returned when a driver operates on a resource they do not own.
	ErrNotOwner = errors.New("resource belongs to another user")
	// ErrDriverRequired is returned when a passenger calls a driver-only operation.
	ErrDriverRequired = errors.New("driver role required")
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROFILE_NOT_FOUND")
	case errors.Is(err, ErrProfileIncomplete):
		return NewHTTPError(http.StatusConflict, err.Error(), "PROFILE_INCOMPLETE")
	case errors.Is(err, ErrSchemaMissing):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "CONFIG_SCHEMA_MISSING")
	case errors.Is(err, ErrTruckNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TRUCK_NOT_FOUND")
	case errors.Is(err, ErrBookingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOKING_NOT_FOUND")
	case errors.Is(err, ErrJobNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "JOB_NOT_FOUND")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrInvalidDates):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATES")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_OWNER")
	case errors.Is(err, ErrDriverRequired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "DRIVER_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
