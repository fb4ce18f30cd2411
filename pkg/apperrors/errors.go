package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error codes returned to API clients and matched on by callers.
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeInvalidDates           = "INVALID_DATES"
	CodeNotFound               = "NOT_FOUND"
	CodeCarNotAvailable        = "CAR_NOT_AVAILABLE"
	CodeAccessDenied           = "ACCESS_DENIED"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeConflict               = "CONFLICT"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeInternal               = "INTERNAL_ERROR"
)

// DomainError is a typed application error carrying a stable code, an
// HTTP status for the transport layer, and structured details.
type DomainError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status the error maps to.
func (e *DomainError) StatusCode() int {
	return e.HTTPStatus
}

// WithDetails attaches structured details and returns the error.
func (e *DomainError) WithDetails(details map[string]any) *DomainError {
	e.Details = details
	return e
}

// NewValidationError reports malformed input.
func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidDatesError reports a booking interval that violates date policy.
func NewInvalidDatesError(message string) *DomainError {
	return &DomainError{
		Code:       CodeInvalidDates,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError reports a missing entity, e.g. NewNotFoundError("Car", 42).
func NewNotFoundError(resource string, id uint) *DomainError {
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

// NewCarNotAvailableError reports an overlap conflict on a car's schedule.
func NewCarNotAvailableError(carID uint, start, end time.Time) *DomainError {
	return &DomainError{
		Code:       CodeCarNotAvailable,
		Message:    fmt.Sprintf("car %d is not available from %s to %s", carID, start.Format(time.RFC3339), end.Format(time.RFC3339)),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"car_id":     carID,
			"start_date": start,
			"end_date":   end,
		},
	}
}

// NewAccessDeniedError reports a caller without the renter/owner relationship.
func NewAccessDeniedError(message string) *DomainError {
	return &DomainError{
		Code:       CodeAccessDenied,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewInvalidStateTransitionError reports an illegal booking state change.
func NewInvalidStateTransitionError(bookingID uint, from, to string) *DomainError {
	return &DomainError{
		Code:       CodeInvalidStateTransition,
		Message:    fmt.Sprintf("booking %d cannot transition from %s to %s", bookingID, from, to),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"booking_id":      bookingID,
			"current_state":   from,
			"requested_state": to,
		},
	}
}

// NewConflictError reports a write conflict.
func NewConflictError(message string) *DomainError {
	return &DomainError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewUnauthorizedError reports a missing or invalid identity.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// AsDomainError extracts a *DomainError from err's chain, or nil.
func AsDomainError(err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code string) bool {
	de := AsDomainError(err)
	return de != nil && de.Code == code
}
