package booking

import (
	"time"

	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

// Booking is the aggregate root for a car reservation. Instances are
// immutable snapshots: every change produces a new instance, the old
// one stays valid.
type Booking struct {
	id        uint
	carID     uint
	renterID  uint
	state     State
	startDate time.Time
	endDate   time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a booking in the pending state. Any state the
// caller wanted to supply is deliberately not accepted here: pending is
// the only legal initial state. The id is zero until the booking is
// persisted.
func NewBooking(carID, renterID uint, startDate, endDate, now time.Time) (*Booking, error) {
	if carID == 0 {
		return nil, apperrors.NewValidationError("car ID is required")
	}
	if renterID == 0 {
		return nil, apperrors.NewValidationError("renter ID is required")
	}
	if err := ValidateDates(startDate, endDate, now); err != nil {
		return nil, err
	}

	created := now.UTC()
	return &Booking{
		carID:     carID,
		renterID:  renterID,
		state:     StatePending,
		startDate: startDate,
		endDate:   endDate,
		createdAt: created,
		updatedAt: created,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(id, carID, renterID uint, state State, startDate, endDate, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:        id,
		carID:     carID,
		renterID:  renterID,
		state:     state,
		startDate: startDate,
		endDate:   endDate,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (b *Booking) ID() uint             { return b.id }
func (b *Booking) CarID() uint          { return b.carID }
func (b *Booking) RenterID() uint       { return b.renterID }
func (b *Booking) State() State         { return b.state }
func (b *Booking) StartDate() time.Time { return b.startDate }
func (b *Booking) EndDate() time.Time   { return b.endDate }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Period returns the booked interval as a half-open period.
func (b *Booking) Period() Period {
	return Period{Start: b.startDate, End: b.endDate}
}

// IsRentedBy checks whether the booking belongs to the given renter.
func (b *Booking) IsRentedBy(userID uint) bool {
	return b.renterID == userID
}

// --- Snapshot construction ---

// WithState returns a copy of the booking in the given state. Transition
// legality is the engine's concern, not the snapshot's.
func (b *Booking) WithState(state State) *Booking {
	clone := *b
	clone.state = state
	clone.updatedAt = time.Now().UTC()
	return &clone
}

// WithSchedule returns a copy of the booking with a new interval.
func (b *Booking) WithSchedule(startDate, endDate time.Time) *Booking {
	clone := *b
	clone.startDate = startDate
	clone.endDate = endDate
	clone.updatedAt = time.Now().UTC()
	return &clone
}
