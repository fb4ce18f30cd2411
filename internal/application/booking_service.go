package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/WheelShare-Rentals/service-rental/internal/domain/booking"
	carDomain "github.com/WheelShare-Rentals/service-rental/internal/domain/car"
	"github.com/WheelShare-Rentals/service-rental/internal/events"
	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
	"github.com/WheelShare-Rentals/service-rental/pkg/kafka"
	"github.com/WheelShare-Rentals/service-rental/pkg/response"
)

const eventSource = "service-rental"

// EventPublisher publishes CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a booking. A
// "state" field in the payload is accepted and discarded: every booking
// starts pending, regardless of what the caller supplies.
type CreateBookingRequest struct {
	CarID     uint      `json:"car_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	State     string    `json:"state"`
}

// UpdateBookingRequest carries a partial booking update. Nil fields
// keep their current values.
type UpdateBookingRequest struct {
	State     *string    `json:"state"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        uint      `json:"id"`
	CarID     uint      `json:"car_id"`
	RenterID  uint      `json:"renter_id"`
	State     string    `json:"state"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByState       map[string]int64 `json:"by_state"`
}

// BookingService orchestrates the booking lifecycle: date validation,
// availability checking, role-aware state transitions, and the
// transactional boundaries that keep a car's schedule consistent under
// concurrent requests. The service holds no mutable state of its own;
// mutual exclusion is delegated entirely to the store's transactions.
type BookingService struct {
	bookings bookingDomain.BookingRepository
	cars     carDomain.Repository
	checker  *bookingDomain.AvailabilityChecker
	tx       bookingDomain.Transactor
	producer EventPublisher
	logger   *zap.Logger
}

// NewBookingService creates a BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	cars carDomain.Repository,
	tx bookingDomain.Transactor,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		cars:     cars,
		checker:  bookingDomain.NewAvailabilityChecker(bookings, cars),
		tx:       tx,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking reserves a car for the renter. Dates are validated
// before anything touches the store; car existence, the availability
// check, and the insert run inside one transaction so a failure at any
// step persists nothing.
func (s *BookingService) CreateBooking(ctx context.Context, renterID uint, req CreateBookingRequest) (*BookingDTO, error) {
	if err := bookingDomain.ValidateDates(req.StartDate, req.EndDate, time.Now().UTC()); err != nil {
		return nil, err
	}

	var created *bookingDomain.Booking
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checker.EnsureAvailable(ctx, req.CarID, req.StartDate, req.EndDate, 0); err != nil {
			return err
		}

		bk, err := bookingDomain.NewBooking(req.CarID, renterID, req.StartDate, req.EndDate, time.Now().UTC())
		if err != nil {
			return err
		}

		created, err = s.bookings.Save(ctx, bk)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Uint("booking_id", created.ID()),
		zap.Uint("car_id", created.CarID()),
		zap.Uint("renter_id", created.RenterID()),
	)
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:  created.ID(),
		CarID:      created.CarID(),
		RenterID:   created.RenterID(),
		StartDate:  created.StartDate(),
		EndDate:    created.EndDate(),
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(created)
	return &result, nil
}

// GetBooking retrieves a booking for a caller who is either its renter
// or the owner of the booked car. Both lookups share one transaction
// for a consistent snapshot.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, userID uint) (*BookingDTO, error) {
	var bk *bookingDomain.Booking
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		found, err := s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		c, err := s.cars.FindByID(ctx, found.CarID())
		if err != nil {
			return err
		}

		if bookingDomain.RoleOf(c, found, userID) == bookingDomain.RoleNone {
			return apperrors.NewAccessDeniedError("caller is neither the renter nor the car owner")
		}

		bk = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ListBookings returns every booking, unfiltered by caller identity.
// Scoping this listing is the caller's concern; the admin surface is
// the only route exposing it.
func (s *BookingService) ListBookings(ctx context.Context) ([]BookingDTO, error) {
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, nil
}

// GetRenterBookings retrieves paginated bookings made by a renter.
func (s *BookingService) GetRenterBookings(ctx context.Context, renterID uint, page, limit int) (*response.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByRenterID(ctx, renterID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := response.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// UpdateBooking applies a partial update to a booking: a state change,
// new dates, or both. The caller must be the renter or the car owner.
// State transitions are validated against the lifecycle table for the
// caller's role; date changes re-run date validation and the
// availability check excluding the booking itself. Updating only the
// state never touches date validation. The whole read-validate-write
// sequence is one transaction.
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID, userID uint, req UpdateBookingRequest) (*BookingDTO, error) {
	var (
		updated       *bookingDomain.Booking
		previousState bookingDomain.State
		rescheduled   bool
	)

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		bk, err := s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		c, err := s.cars.FindByID(ctx, bk.CarID())
		if err != nil {
			return err
		}

		role := bookingDomain.RoleOf(c, bk, userID)
		if role == bookingDomain.RoleNone {
			return apperrors.NewAccessDeniedError("caller is neither the renter nor the car owner")
		}

		previousState = bk.State()
		merged := bk

		if req.State != nil {
			target, err := bookingDomain.ParseState(*req.State)
			if err != nil {
				return apperrors.NewValidationError(err.Error())
			}
			if err := bookingDomain.ValidateTransition(bk.ID(), bk.State(), target, role); err != nil {
				return err
			}
			merged = merged.WithState(target)
		}

		if req.StartDate != nil || req.EndDate != nil {
			newStart := bk.StartDate()
			newEnd := bk.EndDate()
			if req.StartDate != nil {
				newStart = *req.StartDate
			}
			if req.EndDate != nil {
				newEnd = *req.EndDate
			}

			if err := bookingDomain.ValidateDates(newStart, newEnd, time.Now().UTC()); err != nil {
				return err
			}
			if err := s.checker.EnsureAvailable(ctx, bk.CarID(), newStart, newEnd, bk.ID()); err != nil {
				return err
			}

			merged = merged.WithSchedule(newStart, newEnd)
			rescheduled = true
		}

		updated, err = s.bookings.Update(ctx, merged)
		return err
	})
	if err != nil {
		return nil, err
	}

	if updated.State() != previousState {
		s.publishEvent(ctx, events.TopicBookingEvents, events.BookingStateChanged, events.BookingStateChangedEvent{
			BookingID:     updated.ID(),
			CarID:         updated.CarID(),
			RenterID:      updated.RenterID(),
			PreviousState: string(previousState),
			NewState:      string(updated.State()),
			ChangedBy:     userID,
			OccurredAt:    time.Now().UTC(),
		})
	}
	if rescheduled {
		s.publishEvent(ctx, events.TopicBookingEvents, events.BookingRescheduled, events.BookingRescheduledEvent{
			BookingID:  updated.ID(),
			CarID:      updated.CarID(),
			RenterID:   updated.RenterID(),
			StartDate:  updated.StartDate(),
			EndDate:    updated.EndDate(),
			OccurredAt: time.Now().UTC(),
		})
	}

	result := toBookingDTO(updated)
	return &result, nil
}

// CancelPendingForCar cancels every pending booking on a car. Invoked
// by the car-events consumer when a car is delisted; confirmed and
// in-progress rentals are left alone. Returns the number of bookings
// canceled.
func (s *BookingService) CancelPendingForCar(ctx context.Context, carID uint) (int, error) {
	var canceled []*bookingDomain.Booking

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		pending, err := s.bookings.FindByCarAndState(ctx, carID, bookingDomain.StatePending)
		if err != nil {
			return err
		}

		for _, bk := range pending {
			updated, err := s.bookings.Update(ctx, bk.WithState(bookingDomain.StateCanceled))
			if err != nil {
				return err
			}
			canceled = append(canceled, updated)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, bk := range canceled {
		s.publishEvent(ctx, events.TopicBookingEvents, events.BookingStateChanged, events.BookingStateChangedEvent{
			BookingID:     bk.ID(),
			CarID:         bk.CarID(),
			RenterID:      bk.RenterID(),
			PreviousState: string(bookingDomain.StatePending),
			NewState:      string(bookingDomain.StateCanceled),
			OccurredAt:    time.Now().UTC(),
		})
	}

	if len(canceled) > 0 {
		s.logger.Info("pending bookings canceled for delisted car",
			zap.Uint("car_id", carID),
			zap.Int("count", len(canceled)),
		)
	}
	return len(canceled), nil
}

// GetBookingStats returns aggregate booking counts (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByState(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByState: counts}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		CarID:     bk.CarID(),
		RenterID:  bk.RenterID(),
		State:     string(bk.State()),
		StartDate: bk.StartDate(),
		EndDate:   bk.EndDate(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
