package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Truck is a rentable vehicle listed by a driver.
type Truck struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID      uuid.UUID       `json:"owner_id" gorm:"type:char(36);not null;index"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	Make         string          `json:"make,omitempty" gorm:"size:100"`
	Model        string          `json:"model,omitempty" gorm:"size:100"`
	Year         int             `json:"year,omitempty"`
	Size         string          `json:"size,omitempty" gorm:"size:50"`
	Description  string          `json:"description" gorm:"type:text"`
	Capacity     decimal.Decimal `json:"capacity" gorm:"type:decimal(10,2);not null"`
	DailyRate    decimal.Decimal `json:"daily_rate" gorm:"type:decimal(10,2);not null"`
	ImageURL     string          `json:"image_url" gorm:"size:512"`
	Location     Location        `json:"location" gorm:"serializer:json"`
	Features     []string        `json:"features" gorm:"serializer:json"`
	Availability bool            `json:"availability" gorm:"default:true;index"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Truck) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
