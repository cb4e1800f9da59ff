package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"smarthauling/internal/cache"
	apperrors "smarthauling/internal/errors"
	"smarthauling/internal/model"
	"smarthauling/internal/repository"
	"smarthauling/internal/sample"
	"smarthauling/internal/storage"
)

const (
	truckCacheTTL       = 5 * time.Minute
	placeholderImageURL = "/placeholder.svg?height=400&width=800"
)

// TruckImage is an optional listing photo for a truck registration.
type TruckImage struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// RegisterTruckInput carries the truck registration form fields.
type RegisterTruckInput struct {
	Name        string
	Make        string
	Model       string
	Year        int
	Size        string
	Description string
	Capacity    decimal.Decimal
	DailyRate   decimal.Decimal
	Image       *TruckImage
}

// TruckService handles truck listings.
type TruckService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Truck, error)
	List(ctx context.Context) ([]model.Truck, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Truck, error)
	Register(ctx context.Context, ownerID uuid.UUID, in RegisterTruckInput) (*model.Truck, error)
}

type truckService struct {
	repo     repository.TruckRepository
	cache    *cache.Client
	uploader storage.Uploader
	demoMode bool
}

// NewTruckService creates a new truck service. With demoMode set, read
// failures fall back to the fixed sample listings instead of propagating.
func NewTruckService(repo repository.TruckRepository, cache *cache.Client, uploader storage.Uploader, demoMode bool) TruckService {
	return &truckService{
		repo:     repo,
		cache:    cache,
		uploader: uploader,
		demoMode: demoMode,
	}
}

func (s *truckService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("truck:%s", id.String())
}

// Get retrieves a truck by ID with caching. A reachable backend with no
// matching row is a not-found in every mode; only backend failures are
// eligible for the demo fallback.
func (s *truckService) Get(ctx context.Context, id uuid.UUID) (*model.Truck, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Truck
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	truck, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTruckNotFound
		}
		if s.demoMode {
			log.Printf("truck read failed, serving sample data: %v", err)
			if t := sample.TruckByID(id); t != nil {
				return t, nil
			}
			return nil, apperrors.ErrTruckNotFound
		}
		return nil, fmt.Errorf("fetch truck: %w", err)
	}

	if payload, err := json.Marshal(truck); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, truckCacheTTL)
	}
	return truck, nil
}

// List returns all listings, or the sample listings when the backend fails in
// demo mode.
func (s *truckService) List(ctx context.Context) ([]model.Truck, error) {
	trucks, err := s.repo.List(ctx)
	if err != nil {
		if s.demoMode {
			log.Printf("truck list failed, serving sample data: %v", err)
			return sample.Trucks(), nil
		}
		return nil, fmt.Errorf("list trucks: %w", err)
	}
	return trucks, nil
}

func (s *truckService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Truck, error) {
	trucks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owned trucks: %w", err)
	}
	return trucks, nil
}

// Register creates a listing for a driver. The image upload is best-effort:
// on failure the listing keeps the placeholder image and registration
// continues.
func (s *truckService) Register(ctx context.Context, ownerID uuid.UUID, in RegisterTruckInput) (*model.Truck, error) {
	imageURL := placeholderImageURL
	if in.Image != nil {
		name := storage.RandomObjectName(in.Image.Filename)
		url, err := s.uploader.UploadPublic(storage.TruckImages, name, in.Image.Content, in.Image.ContentType)
		if err != nil {
			log.Printf("truck image upload failed, using placeholder: %v", err)
		} else {
			imageURL = url
		}
	}

	truck := &model.Truck{
		OwnerID:     ownerID,
		Name:        in.Name,
		Make:        in.Make,
		Model:       in.Model,
		Year:        in.Year,
		Size:        in.Size,
		Description: in.Description,
		Capacity:    in.Capacity,
		DailyRate:   in.DailyRate,
		ImageURL:    imageURL,
		Location: model.Location{
			Address: "Not specified",
		},
		Features:     []string{},
		Availability: true,
	}
	if err := s.repo.Create(ctx, truck); err != nil {
		return nil, fmt.Errorf("create truck: %w", err)
	}
	return truck, nil
}
