package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smarthauling/internal/config"
	"smarthauling/internal/db"
	"smarthauling/internal/model"
	"smarthauling/internal/repository"
	"smarthauling/internal/sample"
)

const demoPassword = "Demo1234!"

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.Identity{},
		&model.Profile{},
		&model.Truck{},
		&model.Booking{},
		&model.Job{},
		&model.JobEvent{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	identityRepo := repository.NewIdentityRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	truckRepo := repository.NewTruckRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	jobRepo := repository.NewJobRepository(gormDB)

	if err := seedDemoUser(ctx, identityRepo, profileRepo); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	trucks, err := seedTrucks(ctx, truckRepo)
	if err != nil {
		log.Fatalf("Failed to seed trucks: %v", err)
	}

	bookings, err := seedBookings(ctx, bookingRepo)
	if err != nil {
		log.Fatalf("Failed to seed bookings: %v", err)
	}

	jobs, err := seedJobs(ctx, jobRepo)
	if err != nil {
		log.Fatalf("Failed to seed jobs: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Trucks created: %d", trucks)
	log.Printf("  - Bookings created: %d", bookings)
	log.Printf("  - Jobs created: %d", jobs)
	log.Printf("Demo login: demo@smarthauling.test / %s", demoPassword)
}

// seedDemoUser creates the pre-confirmed demo driver that owns the sample
// records.
func seedDemoUser(ctx context.Context, identityRepo repository.IdentityRepository, profileRepo repository.ProfileRepository) error {
	if _, err := identityRepo.FindByID(ctx, sample.DemoUserID); err == nil {
		log.Println("Demo user already present, skipping")
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check demo user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	expiry := time.Now().AddDate(3, 0, 0)
	identity := &model.Identity{
		ID:           sample.DemoUserID,
		Email:        "demo@smarthauling.test",
		PasswordHash: string(hash),
		Metadata: model.Metadata{
			model.MetaFirstName:     "Demo",
			model.MetaLastName:      "Driver",
			model.MetaPhone:         "+12065550100",
			model.MetaRole:          string(model.RoleDriver),
			model.MetaLicenseNumber: "WDL1234567",
			model.MetaLicenseExpiry: expiry.Format(time.RFC3339),
		},
		EmailConfirmed: true,
	}
	if err := identityRepo.Create(ctx, identity); err != nil {
		return fmt.Errorf("create demo identity: %w", err)
	}

	profile := &model.Profile{
		ID:            sample.DemoUserID,
		Email:         identity.Email,
		FirstName:     "Demo",
		LastName:      "Driver",
		PhoneNumber:   "+12065550100",
		Role:          model.RoleDriver,
		LicenseNumber: "WDL1234567",
		LicenseExpiry: &expiry,
	}
	if err := profileRepo.Create(ctx, profile); err != nil {
		return fmt.Errorf("create demo profile: %w", err)
	}
	return nil
}

func seedTrucks(ctx context.Context, repo repository.TruckRepository) (int, error) {
	created := 0
	for _, truck := range sample.Trucks() {
		t := truck
		t.OwnerID = sample.DemoUserID
		if _, err := repo.FindByID(ctx, t.ID); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return created, fmt.Errorf("check truck %s: %w", t.ID, err)
		}
		if err := repo.Create(ctx, &t); err != nil {
			return created, fmt.Errorf("create truck %s: %w", t.ID, err)
		}
		created++
	}
	return created, nil
}

func seedBookings(ctx context.Context, repo repository.BookingRepository) (int, error) {
	created := 0
	for _, booking := range sample.Bookings() {
		b := booking
		if _, err := repo.FindByID(ctx, b.ID); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return created, fmt.Errorf("check booking %s: %w", b.ID, err)
		}
		if err := repo.Create(ctx, &b); err != nil {
			return created, fmt.Errorf("create booking %s: %w", b.ID, err)
		}
		created++
	}
	return created, nil
}

func seedJobs(ctx context.Context, repo repository.JobRepository) (int, error) {
	created := 0
	for _, job := range sample.Jobs() {
		j := job
		if _, err := repo.FindByID(ctx, j.ID); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return created, fmt.Errorf("check job %s: %w", j.ID, err)
		}
		if err := repo.Create(ctx, &j); err != nil {
			return created, fmt.Errorf("create job %s: %w", j.ID, err)
		}
		created++
	}
	return created, nil
}
