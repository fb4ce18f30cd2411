package events

import "time"

// Kafka topics this service publishes to and consumes from.
const (
	TopicBookingEvents = "booking.events"
	TopicCarEvents     = "car.events"
)

// Event types.
const (
	BookingCreated      = "booking.created"
	BookingStateChanged = "booking.state_changed"
	BookingRescheduled  = "booking.rescheduled"
	CarDelisted         = "car.delisted"
)

// BookingCreatedEvent is published when a new booking enters the system.
type BookingCreatedEvent struct {
	BookingID  uint      `json:"booking_id"`
	CarID      uint      `json:"car_id"`
	RenterID   uint      `json:"renter_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingStateChangedEvent is published on every lifecycle transition.
type BookingStateChangedEvent struct {
	BookingID     uint      `json:"booking_id"`
	CarID         uint      `json:"car_id"`
	RenterID      uint      `json:"renter_id"`
	PreviousState string    `json:"previous_state"`
	NewState      string    `json:"new_state"`
	ChangedBy     uint      `json:"changed_by,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingRescheduledEvent is published when a booking's dates change.
type BookingRescheduledEvent struct {
	BookingID  uint      `json:"booking_id"`
	CarID      uint      `json:"car_id"`
	RenterID   uint      `json:"renter_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CarDelistedEvent announces that a car left the rentable fleet. The
// booking engine reacts by canceling the car's pending bookings.
type CarDelistedEvent struct {
	CarID      uint      `json:"car_id"`
	OwnerID    uint      `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
