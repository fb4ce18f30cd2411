package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

func TestErrorStatusMapping(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(24 * time.Hour)

	tests := []struct {
		name       string
		err        *apperrors.DomainError
		wantCode   string
		wantStatus int
	}{
		{"validation", apperrors.NewValidationError("bad input"), apperrors.CodeValidation, http.StatusBadRequest},
		{"invalid dates", apperrors.NewInvalidDatesError("End date must be after start date"), apperrors.CodeInvalidDates, http.StatusBadRequest},
		{"not found", apperrors.NewNotFoundError("Booking", 7), apperrors.CodeNotFound, http.StatusNotFound},
		{"car not available", apperrors.NewCarNotAvailableError(1, start, end), apperrors.CodeCarNotAvailable, http.StatusConflict},
		{"access denied", apperrors.NewAccessDeniedError("nope"), apperrors.CodeAccessDenied, http.StatusForbidden},
		{"invalid transition", apperrors.NewInvalidStateTransitionError(7, "pending", "returned"), apperrors.CodeInvalidStateTransition, http.StatusConflict},
		{"conflict", apperrors.NewConflictError("write conflict"), apperrors.CodeConflict, http.StatusConflict},
		{"unauthorized", apperrors.NewUnauthorizedError("no token"), apperrors.CodeUnauthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode())
			assert.True(t, apperrors.IsCode(tt.err, tt.wantCode))
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewConflictError("write conflict")
	err.Err = cause

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAsDomainError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		de := apperrors.AsDomainError(apperrors.NewNotFoundError("Car", 3))
		require.NotNil(t, de)
		assert.Equal(t, apperrors.CodeNotFound, de.Code)
		assert.Equal(t, uint(3), de.Details["id"])
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("loading booking: %w", apperrors.NewNotFoundError("Booking", 3))
		de := apperrors.AsDomainError(wrapped)
		require.NotNil(t, de)
		assert.Equal(t, apperrors.CodeNotFound, de.Code)
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Nil(t, apperrors.AsDomainError(errors.New("boom")))
		assert.False(t, apperrors.IsCode(errors.New("boom"), apperrors.CodeNotFound))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, apperrors.AsDomainError(nil))
	})
}

func TestWithDetails(t *testing.T) {
	err := apperrors.NewValidationError("bad input").WithDetails(map[string]any{"field": "start_date"})
	assert.Equal(t, "start_date", err.Details["field"])
}
