package booking

import (
	"context"
	"time"

	"github.com/WheelShare-Rentals/service-rental/internal/domain/car"
	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

// AvailabilityChecker decides whether a car is free for a candidate
// interval. Overlap is evaluated with the half-open test, so adjacent
// bookings are allowed.
type AvailabilityChecker struct {
	bookings BookingRepository
	cars     car.Repository
}

// NewAvailabilityChecker creates an AvailabilityChecker.
func NewAvailabilityChecker(bookings BookingRepository, cars car.Repository) *AvailabilityChecker {
	return &AvailabilityChecker{bookings: bookings, cars: cars}
}

// EnsureAvailable fails with a CarNotFoundError-kind error when the car
// does not exist (existence is checked before the overlap query), and
// with a CarNotAvailableError-kind error when any non-canceled booking
// overlaps [start, end). excludeBookingID, when non-zero, removes that
// booking from consideration so an update does not collide with itself.
func (c *AvailabilityChecker) EnsureAvailable(ctx context.Context, carID uint, start, end time.Time, excludeBookingID uint) error {
	if _, err := c.cars.FindByID(ctx, carID); err != nil {
		return err
	}

	overlapping, err := c.bookings.FindOverlapping(ctx, carID, start, end, excludeBookingID)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return apperrors.NewCarNotAvailableError(carID, start, end)
	}
	return nil
}
