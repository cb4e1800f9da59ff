package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a passenger's rental of a truck for an inclusive date range.
type Booking struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	TruckID         uuid.UUID       `json:"truck_id" gorm:"type:char(36);not null;index"`
	UserID          uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	StartDate       time.Time       `json:"start_date" gorm:"not null"`
	EndDate         time.Time       `json:"end_date" gorm:"not null"`
	TotalCost       decimal.Decimal `json:"total_cost" gorm:"type:decimal(12,2);not null"`
	Status          BookingStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	PickupLocation  Location        `json:"pickup_location" gorm:"serializer:json"`
	DropoffLocation Location        `json:"dropoff_location" gorm:"serializer:json"`
	PaymentID       string          `json:"payment_id,omitempty" gorm:"size:64"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Truck Truck `json:"-" gorm:"foreignKey:TruckID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
