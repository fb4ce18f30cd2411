package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WheelShare-Rentals/service-rental/internal/domain/booking"
	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

func TestNewBooking(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)
	end := now.Add(48 * time.Hour)

	t.Run("creates pending booking", func(t *testing.T) {
		b, err := booking.NewBooking(1, 2, start, end, now)
		require.NoError(t, err)

		assert.Equal(t, uint(0), b.ID(), "id is assigned by storage")
		assert.Equal(t, uint(1), b.CarID())
		assert.Equal(t, uint(2), b.RenterID())
		assert.Equal(t, booking.StatePending, b.State())
		assert.Equal(t, start, b.StartDate())
		assert.Equal(t, end, b.EndDate())
	})

	t.Run("requires car id", func(t *testing.T) {
		_, err := booking.NewBooking(0, 2, start, end, now)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	})

	t.Run("requires renter id", func(t *testing.T) {
		_, err := booking.NewBooking(1, 0, start, end, now)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	})

	t.Run("rejects invalid dates", func(t *testing.T) {
		_, err := booking.NewBooking(1, 2, end, start, now)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidDates))
	})
}

func TestBookingSnapshots(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)
	end := now.Add(48 * time.Hour)
	original := booking.Reconstruct(7, 1, 2, booking.StatePending, start, end, now, now)

	t.Run("WithState leaves original untouched", func(t *testing.T) {
		confirmed := original.WithState(booking.StateConfirmed)

		assert.Equal(t, booking.StateConfirmed, confirmed.State())
		assert.Equal(t, booking.StatePending, original.State())
		assert.Equal(t, original.ID(), confirmed.ID())
		assert.Equal(t, original.Period(), confirmed.Period())
	})

	t.Run("WithSchedule leaves original untouched", func(t *testing.T) {
		newStart := start.Add(72 * time.Hour)
		newEnd := end.Add(72 * time.Hour)
		moved := original.WithSchedule(newStart, newEnd)

		assert.Equal(t, newStart, moved.StartDate())
		assert.Equal(t, newEnd, moved.EndDate())
		assert.Equal(t, start, original.StartDate())
		assert.Equal(t, end, original.EndDate())
		assert.Equal(t, original.State(), moved.State())
	})
}
