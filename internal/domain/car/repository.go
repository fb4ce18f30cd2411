package car

import "context"

// Repository defines the persistence contract for car listings.
type Repository interface {
	// FindByID retrieves a car by id. Returns a CarNotFoundError-kind
	// domain error when the car does not exist.
	FindByID(ctx context.Context, id uint) (*Car, error)

	// FindByOwnerID retrieves all cars listed by a specific owner.
	FindByOwnerID(ctx context.Context, ownerID uint) ([]*Car, error)

	// Save persists a new car and returns it with its assigned id.
	Save(ctx context.Context, car *Car) (*Car, error)

	// Update persists changes to an existing car.
	Update(ctx context.Context, car *Car) (*Car, error)
}
