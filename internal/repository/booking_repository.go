package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	bookingDomain "github.com/WheelShare-Rentals/service-rental/internal/domain/booking"
	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

// pgExclusionViolation is raised by the bookings_no_overlap exclusion
// constraint, the storage backstop against concurrent double-booking.
const pgExclusionViolation = "23P01"

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uint      `gorm:"primaryKey"`
	CarID     uint      `gorm:"index;not null"`
	RenterID  uint      `gorm:"index;not null"`
	State     string    `gorm:"not null;size:20;index"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking and returns it with its assigned id.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(bk)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isExclusionViolation(err) {
			return nil, apperrors.NewCarNotAvailableError(bk.CarID(), bk.StartDate(), bk.EndDate())
		}
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	return toDomainBooking(model)
}

// FindByID retrieves a booking by its identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uint) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("Booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindAll retrieves every booking.
func (r *GormBookingRepository) FindAll(ctx context.Context) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := dbFrom(ctx, r.db).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toDomainBookings(models)
}

// FindByRenterID retrieves a renter's bookings with pagination.
func (r *GormBookingRepository) FindByRenterID(ctx context.Context, renterID uint, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	db := dbFrom(ctx, r.db)

	var total int64
	if err := db.Model(&BookingModel{}).Where("renter_id = ?", renterID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count renter bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := db.
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find renter bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// FindByCarAndState retrieves a car's bookings in a given state.
func (r *GormBookingRepository) FindByCarAndState(ctx context.Context, carID uint, state bookingDomain.State) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := dbFrom(ctx, r.db).
		Where("car_id = ? AND state = ?", carID, string(state)).
		Order("start_date").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by car and state: %w", err)
	}
	return toDomainBookings(models)
}

// FindOverlapping retrieves non-canceled bookings for the car whose
// half-open interval intersects [start, end). Adjacent bookings where
// one ends exactly when the candidate starts do not match.
func (r *GormBookingRepository) FindOverlapping(ctx context.Context, carID uint, start, end time.Time, excludeID uint) ([]*bookingDomain.Booking, error) {
	query := dbFrom(ctx, r.db).
		Where("car_id = ? AND state <> ?", carID, string(bookingDomain.StateCanceled)).
		Where("start_date < ? AND end_date > ?", end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var models []BookingModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	return toDomainBookings(models)
}

// Update persists a booking snapshot. Fails with a not-found error if
// the row vanished between the read and the write.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(bk)
	result := dbFrom(ctx, r.db).
		Model(&BookingModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"state":      model.State,
			"start_date": model.StartDate,
			"end_date":   model.EndDate,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		if isExclusionViolation(result.Error) {
			return nil, apperrors.NewCarNotAvailableError(bk.CarID(), bk.StartDate(), bk.EndDate())
		}
		return nil, fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NewNotFoundError("Booking", bk.ID())
	}
	return toDomainBooking(model)
}

// CountByState returns booking counts grouped by state.
func (r *GormBookingRepository) CountByState(ctx context.Context) (map[string]int64, error) {
	type stateCount struct {
		State string
		Count int64
	}
	var results []stateCount
	if err := dbFrom(ctx, r.db).Model(&BookingModel{}).
		Select("state, count(*) as count").
		Group("state").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by state: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.State] = sc.Count
	}
	return counts, nil
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
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

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	state, err := bookingDomain.ParseState(m.State)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.CarID,
		m.RenterID,
		state,
		m.StartDate,
		m.EndDate,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}
