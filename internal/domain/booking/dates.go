package booking

import (
	"time"

	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

// ValidateDates enforces the booking date policy: the interval must be
// non-empty and must start strictly in the future. Called before any
// persistence side effect; never mutates anything.
func ValidateDates(start, end, now time.Time) error {
	if !start.Before(end) {
		return apperrors.NewInvalidDatesError("End date must be after start date")
	}
	if !start.After(now) {
		return apperrors.NewInvalidDatesError("Start date must be in the future")
	}
	return nil
}

// Period is a half-open time interval [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not count: a booking ending exactly when another starts
// is allowed.
func (p Period) Overlaps(other Period) bool {
	return p.Start.Before(other.End) && other.Start.Before(p.End)
}
