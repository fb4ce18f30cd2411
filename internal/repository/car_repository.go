package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	carDomain "github.com/WheelShare-Rentals/service-rental/internal/domain/car"
	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

// CarModel is the GORM model for the cars table.
type CarModel struct {
	ID           uint      `gorm:"primaryKey"`
	OwnerID      uint      `gorm:"index;not null"`
	Brand        string    `gorm:"not null;size:100"`
	Model        string    `gorm:"not null;size:100"`
	Year         int       `gorm:""`
	LicensePlate string    `gorm:"not null;size:20;uniqueIndex"`
	Status       string    `gorm:"not null;size:20;default:'active'"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CarModel) TableName() string {
	return "cars"
}

// GormCarRepository is the GORM-based implementation of car.Repository.
type GormCarRepository struct {
	db *gorm.DB
}

// NewGormCarRepository creates a GormCarRepository.
func NewGormCarRepository(db *gorm.DB) *GormCarRepository {
	return &GormCarRepository{db: db}
}

// FindByID retrieves a car by its identifier.
func (r *GormCarRepository) FindByID(ctx context.Context, id uint) (*carDomain.Car, error) {
	var model CarModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("Car", id)
		}
		return nil, fmt.Errorf("failed to find car by ID: %w", err)
	}
	return toDomainCar(&model), nil
}

// FindByOwnerID retrieves all cars listed by an owner.
func (r *GormCarRepository) FindByOwnerID(ctx context.Context, ownerID uint) ([]*carDomain.Car, error) {
	var models []CarModel
	if err := dbFrom(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find cars by owner: %w", err)
	}

	cars := make([]*carDomain.Car, len(models))
	for i, m := range models {
		cars[i] = toDomainCar(&m)
	}
	return cars, nil
}

// Save persists a new car and returns it with its assigned id.
func (r *GormCarRepository) Save(ctx context.Context, c *carDomain.Car) (*carDomain.Car, error) {
	model := toCarModel(c)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save car: %w", err)
	}
	return toDomainCar(model), nil
}

// Update persists changes to an existing car.
func (r *GormCarRepository) Update(ctx context.Context, c *carDomain.Car) (*carDomain.Car, error) {
	model := toCarModel(c)
	result := dbFrom(ctx, r.db).
		Model(&CarModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"brand":         model.Brand,
			"model":         model.Model,
			"year":          model.Year,
			"license_plate": model.LicensePlate,
			"status":        model.Status,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update car: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NewNotFoundError("Car", c.ID())
	}
	return toDomainCar(model), nil
}

// --- Conversion helpers ---

func toCarModel(c *carDomain.Car) *CarModel {
	return &CarModel{
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

func toDomainCar(m *CarModel) *carDomain.Car {
	return carDomain.Reconstruct(
		m.ID,
		m.OwnerID,
		m.Brand,
		m.Model,
		m.Year,
		m.LicensePlate,
		carDomain.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
}
