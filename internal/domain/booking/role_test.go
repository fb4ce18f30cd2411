package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/WheelShare-Rentals/service-rental/internal/domain/booking"
	"github.com/WheelShare-Rentals/service-rental/internal/domain/car"
)

func TestRoleOf(t *testing.T) {
	now := time.Now().UTC()
	testCar := car.Reconstruct(1, 10, "Toyota", "Corolla", 2021, "B1234XYZ", car.StatusActive, now, now)
	b := booking.Reconstruct(5, 1, 20, booking.StatePending, now.Add(24*time.Hour), now.Add(48*time.Hour), now, now)

	assert.Equal(t, booking.RoleOwner, booking.RoleOf(testCar, b, 10))
	assert.Equal(t, booking.RoleRenter, booking.RoleOf(testCar, b, 20))
	assert.Equal(t, booking.RoleNone, booking.RoleOf(testCar, b, 30))
}

func TestRoleOfOwnerWinsOverRenter(t *testing.T) {
	now := time.Now().UTC()
	testCar := car.Reconstruct(1, 10, "Toyota", "Corolla", 2021, "B1234XYZ", car.StatusActive, now, now)
	// A user renting their own car is treated as the owner.
	b := booking.Reconstruct(5, 1, 10, booking.StatePending, now.Add(24*time.Hour), now.Add(48*time.Hour), now, now)

	assert.Equal(t, booking.RoleOwner, booking.RoleOf(testCar, b, 10))
}
