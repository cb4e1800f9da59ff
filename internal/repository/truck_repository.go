package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smarthauling/internal/model"
)

// TruckRepository defines truck persistence operations.
type TruckRepository interface {
	Create(ctx context.Context, truck *model.Truck) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Truck, error)
	List(ctx context.Context) ([]model.Truck, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Truck, error)
	ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error)
}

type truckRepository struct {
	db *gorm.DB
}

// NewTruckRepository builds a GORM-backed repository.
func NewTruckRepository(db *gorm.DB) TruckRepository {
	return &truckRepository{db: db}
}

func (r *truckRepository) Create(ctx context.Context, truck *model.Truck) error {
	return r.db.WithContext(ctx).Create(truck).Error
}

func (r *truckRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Truck, error) {
	var truck model.Truck
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&truck).Error; err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *truckRepository) List(ctx context.Context) ([]model.Truck, error) {
	var trucks []model.Truck
	if err := r.db.WithContext(ctx).Find(&trucks).Error; err != nil {
		return nil, err
	}
	return trucks, nil
}

func (r *truckRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Truck, error) {
	var trucks []model.Truck
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&trucks).Error; err != nil {
		return nil, err
	}
	return trucks, nil
}

// ExistsByOwner runs a limit-1 lookup; the role router calls it on every visit
// to the redirect entry point.
func (r *truckRepository) ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	var truck model.Truck
	err := r.db.WithContext(ctx).Select("id").Where("owner_id = ?", ownerID).Limit(1).First(&truck).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
