package main

import (
	"log"
	"net/http"
	"os"

	_ "smarthauling/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"smarthauling/internal/auth"
	"smarthauling/internal/cache"
	"smarthauling/internal/config"
	"smarthauling/internal/db"
	"smarthauling/internal/handler"
	"smarthauling/internal/model"
	"smarthauling/internal/repository"
	"smarthauling/internal/router"
	"smarthauling/internal/service"
	"smarthauling/internal/storage"
)

// @title Smart Hauling API
// @version 1.0
// @description Truck rental marketplace API: registration, sessions, truck listings, bookings and driver jobs.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()
	if missing := cfg.MissingVars(); len(missing) > 0 {
		log.Printf("missing configuration: %v (some features will be degraded)", missing)
	}

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.JobEvent{},
			&model.Job{},
			&model.Booking{},
			&model.Truck{},
			&model.Profile{},
			&model.Identity{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Identity{},
		&model.Profile{},
		&model.Truck{},
		&model.Booking{},
		&model.Job{},
		&model.JobEvent{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	uploader := storage.New(cfg.StorageURL, cfg.StorageServiceKey)

	// Initialize repositories
	identityRepo := repository.NewIdentityRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	truckRepo := repository.NewTruckRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	jobRepo := repository.NewJobRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(identityRepo, profileRepo, uploader, jwtService, tokenStore)
	profileService := service.NewProfileService(identityRepo, profileRepo, tokenStore)
	routingService := service.NewRoutingService(truckRepo)
	truckService := service.NewTruckService(truckRepo, cacheClient, uploader, cfg.DemoMode)
	bookingService := service.NewBookingService(bookingRepo, truckRepo, cfg.DemoMode)
	jobService := service.NewJobService(jobRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService, routingService)
	truckHandler := handler.NewTruckHandler(truckService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	jobHandler := handler.NewJobHandler(jobService)
	systemHandler := handler.NewSystemHandler(cfg)
	seedHandler := handler.NewSeedHandler(truckRepo, jobRepo)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenStore,
		authHandler,
		profileHandler,
		truckHandler,
		bookingHandler,
		jobHandler,
		systemHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
