package booking

import "github.com/WheelShare-Rentals/service-rental/internal/domain/car"

// Role is the caller's relationship to a booking.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleRenter Role = "renter"
	RoleNone   Role = "none"
)

// RoleOf determines the caller's role for a booking. Owning the car
// wins over being the renter when the user is both.
func RoleOf(c *car.Car, b *Booking, userID uint) Role {
	switch {
	case c.IsOwnedBy(userID):
		return RoleOwner
	case b.IsRentedBy(userID):
		return RoleRenter
	default:
		return RoleNone
	}
}
