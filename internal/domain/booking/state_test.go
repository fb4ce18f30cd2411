package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WheelShare-Rentals/service-rental/internal/domain/booking"
	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    booking.State
		to      booking.State
		role    booking.Role
		wantErr bool
	}{
		// Legal edges with the right role.
		{"owner confirms pending", booking.StatePending, booking.StateConfirmed, booking.RoleOwner, false},
		{"owner cancels pending", booking.StatePending, booking.StateCanceled, booking.RoleOwner, false},
		{"renter picks up confirmed", booking.StateConfirmed, booking.StatePickedUp, booking.RoleRenter, false},
		{"renter returns picked up", booking.StatePickedUp, booking.StateReturned, booking.RoleRenter, false},

		// Legal edges with the wrong role.
		{"renter cannot confirm", booking.StatePending, booking.StateConfirmed, booking.RoleRenter, true},
		{"renter cannot cancel", booking.StatePending, booking.StateCanceled, booking.RoleRenter, true},
		{"owner cannot pick up", booking.StateConfirmed, booking.StatePickedUp, booking.RoleOwner, true},
		{"owner cannot return", booking.StatePickedUp, booking.StateReturned, booking.RoleOwner, true},

		// Edges outside the state machine.
		{"pending cannot skip to picked up", booking.StatePending, booking.StatePickedUp, booking.RoleRenter, true},
		{"confirmed cannot be canceled", booking.StateConfirmed, booking.StateCanceled, booking.RoleOwner, true},
		{"returned is terminal", booking.StateReturned, booking.StatePending, booking.RoleOwner, true},
		{"canceled is terminal", booking.StateCanceled, booking.StateConfirmed, booking.RoleOwner, true},
		{"no backwards edge", booking.StateConfirmed, booking.StatePending, booking.RoleOwner, true},

		// Identity transitions succeed for any role, even terminal states.
		{"identity pending as renter", booking.StatePending, booking.StatePending, booking.RoleRenter, false},
		{"identity confirmed as owner", booking.StateConfirmed, booking.StateConfirmed, booking.RoleOwner, false},
		{"identity canceled with no role", booking.StateCanceled, booking.StateCanceled, booking.RoleNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking.ValidateTransition(42, tt.from, tt.to, tt.role)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidStateTransition))
		})
	}
}

func TestStateIsTerminal(t *testing.T) {
	assert.False(t, booking.StatePending.IsTerminal())
	assert.False(t, booking.StateConfirmed.IsTerminal())
	assert.False(t, booking.StatePickedUp.IsTerminal())
	assert.True(t, booking.StateReturned.IsTerminal())
	assert.True(t, booking.StateCanceled.IsTerminal())
}

func TestParseState(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "picked_up", "returned", "canceled"} {
		state, err := booking.ParseState(s)
		require.NoError(t, err)
		assert.Equal(t, s, state.String())
	}

	for _, s := range []string{"", "Pending", "PICKED_UP", "cancelled", "done"} {
		_, err := booking.ParseState(s)
		assert.Error(t, err, "state %q should not parse", s)
	}
}
