package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "smarthauling/internal/errors"
	"smarthauling/internal/model"
	"smarthauling/internal/repository"
	"smarthauling/internal/sample"
)

// serviceFeeMultiplier applies the 10% service fee on top of the rental
// subtotal.
var serviceFeeMultiplier = decimal.RequireFromString("1.10")

// CreateBookingInput carries a booking request. The total is computed
// server-side from the truck's daily rate.
type CreateBookingInput struct {
	TruckID         uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	PickupLocation  model.Location
	DropoffLocation model.Location
	PaymentID       string
}

// BookingQuote is the price breakdown shown before booking.
type BookingQuote struct {
	Days       int             `json:"days"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	ServiceFee decimal.Decimal `json:"service_fee"`
	Total      decimal.Decimal `json:"total"`
}

// BookingService handles bookings.
type BookingService interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateBookingInput) (*model.Booking, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Booking, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Booking, error)
	Quote(ctx context.Context, truckID uuid.UUID, start, end time.Time) (*BookingQuote, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	truckRepo   repository.TruckRepository
	demoMode    bool
}

// NewBookingService creates a new booking service.
func NewBookingService(bookingRepo repository.BookingRepository, truckRepo repository.TruckRepository, demoMode bool) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		truckRepo:   truckRepo,
		demoMode:    demoMode,
	}
}

// RentalDays counts booked days inclusively: a same-day rental is one day.
func RentalDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, apperrors.ErrInvalidDates
	}
	return int(end.Sub(start)/(24*time.Hour)) + 1, nil
}

// QuoteTotal computes the displayed total: dailyRate x inclusive days, plus
// the 10% service fee.
func QuoteTotal(dailyRate decimal.Decimal, start, end time.Time) (int, decimal.Decimal, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return 0, decimal.Zero, err
	}
	subtotal := dailyRate.Mul(decimal.NewFromInt(int64(days)))
	return days, subtotal.Mul(serviceFeeMultiplier).Round(2), nil
}

// Create persists a pending booking with a server-computed total.
func (s *bookingService) Create(ctx context.Context, userID uuid.UUID, in CreateBookingInput) (*model.Booking, error) {
	truck, err := s.truckRepo.FindByID(ctx, in.TruckID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTruckNotFound
		}
		return nil, fmt.Errorf("fetch truck: %w", err)
	}

	_, total, err := QuoteTotal(truck.DailyRate, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		TruckID:         in.TruckID,
		UserID:          userID,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		TotalCost:       total,
		Status:          model.BookingStatusPending,
		PickupLocation:  in.PickupLocation,
		DropoffLocation: in.DropoffLocation,
		PaymentID:       in.PaymentID,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

// Get returns a booking, restricted to its owner.
func (s *bookingService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("fetch booking: %w", err)
	}
	if booking.UserID != userID {
		return nil, apperrors.ErrNotOwner
	}
	return booking, nil
}

// ListForUser returns a user's bookings, or the sample bookings when the
// backend fails in demo mode.
func (s *bookingService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Booking, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		if s.demoMode {
			log.Printf("booking list failed, serving sample data: %v", err)
			return sample.Bookings(), nil
		}
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// Quote prices a rental window for a truck without creating anything.
func (s *bookingService) Quote(ctx context.Context, truckID uuid.UUID, start, end time.Time) (*BookingQuote, error) {
	truck, err := s.truckRepo.FindByID(ctx, truckID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTruckNotFound
		}
		return nil, fmt.Errorf("fetch truck: %w", err)
	}

	days, err := RentalDays(start, end)
	if err != nil {
		return nil, err
	}
	subtotal := truck.DailyRate.Mul(decimal.NewFromInt(int64(days)))
	total := subtotal.Mul(serviceFeeMultiplier).Round(2)
	return &BookingQuote{
		Days:       days,
		DailyRate:  truck.DailyRate,
		Subtotal:   subtotal,
		ServiceFee: total.Sub(subtotal),
		Total:      total,
	}, nil
}
