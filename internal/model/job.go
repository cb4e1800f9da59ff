package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobStatus represents where a hauling job is in its lifecycle.
type JobStatus string

const (
	JobStatusAvailable       JobStatus = "available"
	JobStatusScheduled       JobStatus = "scheduled"
	JobStatusInProgress      JobStatus = "in-progress"
	JobStatusAtPickup        JobStatus = "at-pickup"
	JobStatusLoadingComplete JobStatus = "loading-complete"
	JobStatusAtDropoff       JobStatus = "at-dropoff"
	JobStatusCompleted       JobStatus = "completed"
	JobStatusCancelled       JobStatus = "cancelled"
)

// Cargo describes what a job moves.
type Cargo struct {
	Type       string `json:"type"`
	Weight     string `json:"weight"`
	Dimensions string `json:"dimensions,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Job is a driver-side hauling assignment.
type Job struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	DriverID        uuid.UUID       `json:"driver_id" gorm:"type:char(36);index"`
	BookingID       *uuid.UUID      `json:"booking_id,omitempty" gorm:"type:char(36);index"`
	CustomerName    string          `json:"customer_name" gorm:"size:255"`
	CustomerPhone   string          `json:"customer_phone,omitempty" gorm:"size:32"`
	PickupLocation  Location        `json:"pickup_location" gorm:"serializer:json"`
	DropoffLocation Location        `json:"dropoff_location" gorm:"serializer:json"`
	PickupTime      time.Time       `json:"pickup_time"`
	DropoffTime     *time.Time      `json:"dropoff_time,omitempty"`
	Status          JobStatus       `json:"status" gorm:"type:varchar(20);not null;default:'available';index"`
	Cargo           Cargo           `json:"cargo" gorm:"serializer:json"`
	Payout          decimal.Decimal `json:"payout" gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Timeline []JobEvent `json:"timeline,omitempty" gorm:"foreignKey:JobID"`
}

// BeforeCreate sets UUID before creating the record.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// JobEvent is one entry in a job's status timeline.
type JobEvent struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	JobID       uuid.UUID `json:"job_id" gorm:"type:char(36);not null;index"`
	Status      JobStatus `json:"status" gorm:"type:varchar(20);not null"`
	Description string    `json:"description,omitempty" gorm:"size:512"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (e *JobEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
