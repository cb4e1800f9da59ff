package model

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes truck owners from renters.
type Role string

const (
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
)

// Profile is the application-owned per-user record, keyed by identity ID.
// It is created at registration or synthesized lazily from identity metadata.
type Profile struct {
	ID            uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Email         string     `json:"email" gorm:"size:255;not null;index"`
	FirstName     string     `json:"first_name" gorm:"size:100;not null"`
	LastName      string     `json:"last_name" gorm:"size:100;not null"`
	PhoneNumber   string     `json:"phone_number,omitempty" gorm:"size:32"`
	Role          Role       `json:"user_type" gorm:"type:varchar(20);not null;default:'passenger';index"`
	LicenseNumber string     `json:"license_number,omitempty" gorm:"size:64"`
	LicenseExpiry *time.Time `json:"license_expiry,omitempty"`
	AvatarURL     string     `json:"avatar_url,omitempty" gorm:"size:512"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsDriver reports whether the profile belongs to a truck owner.
func (p *Profile) IsDriver() bool {
	return p.Role == RoleDriver
}
