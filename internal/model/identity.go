package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Metadata keys set at registration and read back by the profile resolver.
const (
	MetaFirstName     = "first_name"
	MetaLastName      = "last_name"
	MetaGivenName     = "given_name"
	MetaFamilyName    = "family_name"
	MetaPhone         = "phone"
	MetaRole          = "user_type"
	MetaAvatarURL     = "avatar_url"
	MetaLicenseNumber = "license_number"
	MetaLicenseExpiry = "license_expiry"
)

// Metadata is the free-form attribute bag attached to an identity at sign-up.
type Metadata map[string]string

// Identity is the authentication record: credentials plus the metadata bag.
// Identities are created at registration and never deleted by the application.
type Identity struct {
	ID             uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Metadata       Metadata  `json:"metadata,omitempty" gorm:"serializer:json"`
	EmailConfirmed bool      `json:"email_confirmed" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Identity) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
