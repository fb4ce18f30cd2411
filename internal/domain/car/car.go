package car

import (
	"time"

	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

// Status represents the lifecycle state of a car listing.
type Status string

const (
	StatusActive   Status = "active"
	StatusDelisted Status = "delisted"
)

// Car is the aggregate root for a listed vehicle. Each car has exactly
// one owner; bookings reference cars by id.
type Car struct {
	id           uint
	ownerID      uint
	brand        string
	model        string
	year         int
	licensePlate string
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

// NewCar creates an active car listing with validated fields. The id is
// zero until the listing is persisted.
func NewCar(ownerID uint, brand, model string, year int, licensePlate string) (*Car, error) {
	if ownerID == 0 {
		return nil, apperrors.NewValidationError("owner ID is required")
	}
	if brand == "" {
		return nil, apperrors.NewValidationError("car brand is required")
	}
	if model == "" {
		return nil, apperrors.NewValidationError("car model is required")
	}
	if licensePlate == "" {
		return nil, apperrors.NewValidationError("license plate is required")
	}

	now := time.Now().UTC()
	return &Car{
		ownerID:      ownerID,
		brand:        brand,
		model:        model,
		year:         year,
		licensePlate: licensePlate,
		status:       StatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Car from persistence data (no validation).
func Reconstruct(id, ownerID uint, brand, model string, year int, licensePlate string, status Status, createdAt, updatedAt time.Time) *Car {
	return &Car{
		id:           id,
		ownerID:      ownerID,
		brand:        brand,
		model:        model,
		year:         year,
		licensePlate: licensePlate,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (c *Car) ID() uint             { return c.id }
func (c *Car) OwnerID() uint        { return c.ownerID }
func (c *Car) Brand() string        { return c.brand }
func (c *Car) Model() string        { return c.model }
func (c *Car) Year() int            { return c.year }
func (c *Car) LicensePlate() string { return c.licensePlate }
func (c *Car) Status() Status       { return c.status }
func (c *Car) CreatedAt() time.Time { return c.createdAt }
func (c *Car) UpdatedAt() time.Time { return c.updatedAt }

// --- Behavior ---

// IsOwnedBy checks whether the car belongs to the given user.
func (c *Car) IsOwnedBy(userID uint) bool {
	return c.ownerID == userID
}

// IsActive returns true if the listing has not been delisted.
func (c *Car) IsActive() bool {
	return c.status == StatusActive
}

// Update applies partial updates to the listing. Empty fields keep
// their current values.
func (c *Car) Update(brand, model string, year int, licensePlate string) {
	if brand != "" {
		c.brand = brand
	}
	if model != "" {
		c.model = model
	}
	if year > 0 {
		c.year = year
	}
	if licensePlate != "" {
		c.licensePlate = licensePlate
	}
	c.updatedAt = time.Now().UTC()
}

// Delist removes the car from the rentable fleet.
func (c *Car) Delist() {
	c.status = StatusDelisted
	c.updatedAt = time.Now().UTC()
}
