package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	carDomain "github.com/WheelShare-Rentals/service-rental/internal/domain/car"
	"github.com/WheelShare-Rentals/service-rental/internal/events"
	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
	"github.com/WheelShare-Rentals/service-rental/pkg/kafka"
)

// CreateCarRequest is the request DTO for listing a car.
type CreateCarRequest struct {
	Brand        string `json:"brand" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate" binding:"required"`
}

// UpdateCarRequest is the request DTO for updating a listing. Empty
// fields keep their current values.
type UpdateCarRequest struct {
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate"`
}

// CarDTO is the API response representation of a car listing.
type CarDTO struct {
	ID           uint      `json:"id"`
	OwnerID      uint      `json:"owner_id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year,omitempty"`
	LicensePlate string    `json:"license_plate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CarService implements use cases for car listing management.
type CarService struct {
	repo     carDomain.Repository
	producer EventPublisher
	logger   *zap.Logger
}

// NewCarService creates a CarService.
func NewCarService(repo carDomain.Repository, producer EventPublisher, logger *zap.Logger) *CarService {
	return &CarService{repo: repo, producer: producer, logger: logger}
}

// CreateCar lists a new car for the given owner.
func (s *CarService) CreateCar(ctx context.Context, ownerID uint, req CreateCarRequest) (*CarDTO, error) {
	c, err := carDomain.NewCar(ownerID, req.Brand, req.Model, req.Year, req.LicensePlate)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, c)
	if err != nil {
		s.logger.Error("failed to create car", zap.Error(err))
		return nil, err
	}

	s.logger.Info("car listed",
		zap.Uint("car_id", saved.ID()),
		zap.Uint("owner_id", ownerID),
	)
	result := toCarDTO(saved)
	return &result, nil
}

// GetCar returns a single car listing by id. Listings are public.
func (s *CarService) GetCar(ctx context.Context, carID uint) (*CarDTO, error) {
	c, err := s.repo.FindByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	result := toCarDTO(c)
	return &result, nil
}

// GetMyCars returns all cars listed by the given owner.
func (s *CarService) GetMyCars(ctx context.Context, ownerID uint) ([]CarDTO, error) {
	cars, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	dtos := make([]CarDTO, len(cars))
	for i, c := range cars {
		dtos[i] = toCarDTO(c)
	}
	return dtos, nil
}

// UpdateCar updates a listing, verifying ownership.
func (s *CarService) UpdateCar(ctx context.Context, ownerID, carID uint, req UpdateCarRequest) (*CarDTO, error) {
	c, err := s.repo.FindByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(ownerID) {
		return nil, apperrors.NewAccessDeniedError("you do not own this car")
	}

	c.Update(req.Brand, req.Model, req.Year, req.LicensePlate)

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		s.logger.Error("failed to update car", zap.Error(err))
		return nil, err
	}

	result := toCarDTO(updated)
	return &result, nil
}

// DelistCar removes a car from the rentable fleet, verifying ownership,
// and announces it on car.events so pending bookings get canceled.
func (s *CarService) DelistCar(ctx context.Context, ownerID, carID uint) error {
	c, err := s.repo.FindByID(ctx, carID)
	if err != nil {
		return err
	}
	if !c.IsOwnedBy(ownerID) {
		return apperrors.NewAccessDeniedError("you do not own this car")
	}

	c.Delist()
	if _, err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("failed to delist car", zap.Error(err))
		return err
	}

	evt := events.CarDelistedEvent{
		CarID:      carID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}
	cloudEvent, err := kafka.NewCloudEvent(eventSource, events.CarDelisted, evt)
	if err != nil {
		s.logger.Error("failed to create car.delisted event", zap.Error(err))
		return nil
	}
	if err := s.producer.PublishEvent(ctx, events.TopicCarEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish car.delisted event",
			zap.Uint("car_id", carID),
			zap.Error(err),
		)
	}

	s.logger.Info("car delisted", zap.Uint("car_id", carID))
	return nil
}

func toCarDTO(c *carDomain.Car) CarDTO {
	return CarDTO{
		ID:           c.ID(),
		OwnerID:      c.OwnerID(),
		Brand:        c.Brand(),
		Model:        c.Model(),
		Year:         c.Year(),
		LicensePlate: c.LicensePlate(),
		Status:       string(c.Status()),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}
