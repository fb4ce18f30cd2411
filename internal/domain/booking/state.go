package booking

import (
	"fmt"

	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

// State represents the current position of a booking in its lifecycle.
type State string

const (
	StatePending   State = "pending"
	StateConfirmed State = "confirmed"
	StatePickedUp  State = "picked_up"
	StateReturned  State = "returned"
	StateCanceled  State = "canceled"
)

type transition struct {
	from State
	to   State
}

// legalTransitions is the booking state machine: each legal edge maps to
// the role that is allowed to take it. Pending is the only initial
// state; returned and canceled are terminal.
var legalTransitions = map[transition]Role{
	{StatePending, StateConfirmed}:  RoleOwner,
	{StatePending, StateCanceled}:   RoleOwner,
	{StateConfirmed, StatePickedUp}: RoleRenter,
	{StatePickedUp, StateReturned}:  RoleRenter,
}

var validStates = map[State]struct{}{
	StatePending:   {},
	StateConfirmed: {},
	StatePickedUp:  {},
	StateReturned:  {},
	StateCanceled:  {},
}

// IsValid returns true if the state is a recognized booking state.
func (s State) IsValid() bool {
	_, ok := validStates[s]
	return ok
}

// IsTerminal returns true if no further transitions are possible.
func (s State) IsTerminal() bool {
	for edge := range legalTransitions {
		if edge.from == s {
			return false
		}
	}
	return true
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// ParseState converts a string to a State, returning an error if invalid.
func ParseState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid booking state: %s", s)
	}
	return state, nil
}

// ValidateTransition checks that moving the booking from its current
// state to the requested one is legal for the caller's role. Identity
// transitions always succeed and bypass both the table and the role
// check, so a client may resubmit the current state without knowing its
// role.
func ValidateTransition(bookingID uint, from, to State, role Role) error {
	if from == to {
		return nil
	}
	required, ok := legalTransitions[transition{from, to}]
	if !ok || required != role {
		return apperrors.NewInvalidStateTransitionError(bookingID, string(from), string(to))
	}
	return nil
}
