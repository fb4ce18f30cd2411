package booking

import (
	"context"
	"time"
)

// BookingRepository defines the persistence contract for bookings.
// Implementations must honor an ambient transaction started through a
// Transactor.
type BookingRepository interface {
	// Save persists a new booking and returns it with its assigned id.
	Save(ctx context.Context, booking *Booking) (*Booking, error)

	// FindByID retrieves a booking by id. Returns a
	// BookingNotFoundError-kind domain error when absent.
	FindByID(ctx context.Context, id uint) (*Booking, error)

	// FindAll retrieves every booking, unfiltered.
	FindAll(ctx context.Context) ([]*Booking, error)

	// FindByRenterID retrieves a renter's bookings with pagination.
	FindByRenterID(ctx context.Context, renterID uint, page, limit int) ([]*Booking, int64, error)

	// FindByCarAndState retrieves a car's bookings in a given state.
	FindByCarAndState(ctx context.Context, carID uint, state State) ([]*Booking, error)

	// FindOverlapping retrieves non-canceled bookings for the car whose
	// half-open interval intersects [start, end). A non-zero excludeID
	// is left out of the result, used when revalidating a booking's own
	// new dates.
	FindOverlapping(ctx context.Context, carID uint, start, end time.Time, excludeID uint) ([]*Booking, error)

	// Update persists a booking snapshot. Returns a
	// BookingNotFoundError-kind domain error if the row is gone.
	Update(ctx context.Context, booking *Booking) (*Booking, error)

	// CountByState returns booking counts grouped by state.
	CountByState(ctx context.Context) (map[string]int64, error)
}

// Transactor runs a function inside a single database transaction. Any
// error returned by fn rolls the transaction back and is propagated
// unchanged; no partial writes survive a failed step.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
