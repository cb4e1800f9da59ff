// Package sample holds fixed demo records. They back the demo-mode read
// fallback and the seed tooling; they are never returned outside demo mode.
package sample

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smarthauling/internal/model"
)

// Stable IDs so demo-mode lookups by ID keep working across restarts.
var (
	TruckID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TruckID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TruckID3 = uuid.MustParse("00000000-0000-0000-0000-000000000003")

	BookingID1 = uuid.MustParse("00000000-0000-0000-0001-000000000001")
	BookingID2 = uuid.MustParse("00000000-0000-0000-0001-000000000002")

	JobID1 = uuid.MustParse("00000000-0000-0000-0003-000000000001")
	JobID2 = uuid.MustParse("00000000-0000-0000-0003-000000000002")
	JobID3 = uuid.MustParse("00000000-0000-0000-0003-000000000003")

	DemoUserID = uuid.MustParse("00000000-0000-0000-0002-000000000001")
)

// Trucks returns the demo truck listings.
func Trucks() []model.Truck {
	return []model.Truck{
		{
			ID:          TruckID1,
			Name:        "Heavy Duty Moving Truck",
			Description: "Perfect for moving large items or a full house",
			Capacity:    decimal.NewFromInt(26),
			DailyRate:   decimal.RequireFromString("129.99"),
			ImageURL:    "/placeholder.svg?height=300&width=400",
			Location: model.Location{
				Address: "Seattle, WA",
				Lat:     47.6062,
				Lng:     -122.3321,
			},
			Features:     []string{"26ft Box", "Liftgate", "Ramp", "Automatic"},
			Availability: true,
		},
		{
			ID:          TruckID2,
			Name:        "Medium Cargo Van",
			Description: "Ideal for small moves or deliveries",
			Capacity:    decimal.NewFromInt(12),
			DailyRate:   decimal.RequireFromString("89.99"),
			ImageURL:    "/placeholder.svg?height=300&width=400",
			Location: model.Location{
				Address: "Portland, OR",
				Lat:     45.5152,
				Lng:     -122.6784,
			},
			Features:     []string{"12ft Box", "Easy to Drive", "Fuel Efficient"},
			Availability: true,
		},
		{
			ID:          TruckID3,
			Name:        "Pickup Truck with Trailer",
			Description: "Great for hauling materials for home projects",
			Capacity:    decimal.NewFromInt(8),
			DailyRate:   decimal.RequireFromString("79.99"),
			ImageURL:    "/placeholder.svg?height=300&width=400",
			Location: model.Location{
				Address: "San Francisco, CA",
				Lat:     37.7749,
				Lng:     -122.4194,
			},
			Features:     []string{"8ft Bed", "5ft Trailer", "4x4", "Towing Package"},
			Availability: true,
		},
	}
}

// TruckByID returns the demo truck with the given ID, or nil.
func TruckByID(id uuid.UUID) *model.Truck {
	for _, t := range Trucks() {
		if t.ID == id {
			truck := t
			return &truck
		}
	}
	return nil
}

// Bookings returns the demo bookings.
func Bookings() []model.Booking {
	return []model.Booking{
		{
			ID:        BookingID1,
			TruckID:   TruckID1,
			UserID:    DemoUserID,
			StartDate: time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2023, 8, 18, 0, 0, 0, 0, time.UTC),
			TotalCost: decimal.RequireFromString("389.97"),
			Status:    model.BookingStatusConfirmed,
			PickupLocation: model.Location{
				Address: "123 Main St, Seattle, WA",
				Lat:     47.6062,
				Lng:     -122.3321,
			},
			DropoffLocation: model.Location{
				Address: "456 Pine St, Seattle, WA",
				Lat:     47.6102,
				Lng:     -122.3426,
			},
			PaymentID: "pay_123456",
			CreatedAt: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        BookingID2,
			TruckID:   TruckID2,
			UserID:    DemoUserID,
			StartDate: time.Date(2023, 9, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2023, 9, 12, 0, 0, 0, 0, time.UTC),
			TotalCost: decimal.RequireFromString("179.98"),
			Status:    model.BookingStatusPending,
			PickupLocation: model.Location{
				Address: "789 Oak St, Portland, OR",
				Lat:     45.5152,
				Lng:     -122.6784,
			},
			DropoffLocation: model.Location{
				Address: "101 Maple St, Portland, OR",
				Lat:     45.5189,
				Lng:     -122.6726,
			},
			PaymentID: "pay_789012",
			CreatedAt: time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

// Jobs returns demo hauling jobs covering each list tab.
func Jobs() []model.Job {
	pickup := time.Now().Add(2 * time.Hour)
	return []model.Job{
		{
			ID:            JobID1,
			DriverID:      DemoUserID,
			CustomerName:  "Sarah Johnson",
			CustomerPhone: "+12065550134",
			PickupLocation: model.Location{
				Address: "123 Main St, Seattle, WA",
				Lat:     47.6062,
				Lng:     -122.3321,
			},
			DropoffLocation: model.Location{
				Address: "456 Pine St, Bellevue, WA",
				Lat:     47.6101,
				Lng:     -122.2015,
			},
			PickupTime: pickup,
			Status:     model.JobStatusInProgress,
			Cargo: model.Cargo{
				Type:       "Furniture",
				Weight:     "450 lbs",
				Dimensions: "2 sofas, 1 dining table",
				Notes:      "Fragile glass tabletop",
			},
			Payout: decimal.RequireFromString("185.00"),
		},
		{
			ID:            JobID2,
			DriverID:      DemoUserID,
			CustomerName:  "Mike Reyes",
			CustomerPhone: "+15035550188",
			PickupLocation: model.Location{
				Address: "789 Oak St, Portland, OR",
				Lat:     45.5152,
				Lng:     -122.6784,
			},
			DropoffLocation: model.Location{
				Address: "101 Maple St, Portland, OR",
				Lat:     45.5189,
				Lng:     -122.6726,
			},
			PickupTime: pickup.Add(24 * time.Hour),
			Status:     model.JobStatusScheduled,
			Cargo: model.Cargo{
				Type:   "Building materials",
				Weight: "1200 lbs",
			},
			Payout: decimal.RequireFromString("240.00"),
		},
		{
			ID:           JobID3,
			CustomerName: "Open request",
			PickupLocation: model.Location{
				Address: "500 Market St, San Francisco, CA",
				Lat:     37.7749,
				Lng:     -122.4194,
			},
			DropoffLocation: model.Location{
				Address: "2000 Broadway, Oakland, CA",
				Lat:     37.8044,
				Lng:     -122.2712,
			},
			PickupTime: pickup.Add(48 * time.Hour),
			Status:     model.JobStatusAvailable,
			Cargo: model.Cargo{
				Type:   "Appliances",
				Weight: "600 lbs",
			},
			Payout: decimal.RequireFromString("150.00"),
		},
	}
}
