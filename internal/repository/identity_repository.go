package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smarthauling/internal/model"
)

// IdentityRepository defines persistence operations for auth identities.
type IdentityRepository interface {
	Create(ctx context.Context, identity *model.Identity) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Identity, error)
	FindByEmail(ctx context.Context, email string) (*model.Identity, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, metadata model.Metadata) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository builds a GORM-backed repository.
func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Create(ctx context.Context, identity *model.Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

func (r *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Identity, error) {
	var identity model.Identity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepository) FindByEmail(ctx context.Context, email string) (*model.Identity, error) {
	var identity model.Identity
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepository) UpdateMetadata(ctx context.Context, id uuid.UUID, metadata model.Metadata) error {
	return r.db.WithContext(ctx).Model(&model.Identity{}).
		Where("id = ?", id).
		Update("metadata", metadata).Error
}

// Delete removes an identity. Used only to compensate a failed registration.
func (r *identityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Identity{}, "id = ?", id).Error
}
