package service

import (
	"context"
	"fmt"

	"smarthauling/internal/model"
	"smarthauling/internal/repository"
)

// Landing routes returned by the redirect entry point.
const (
	RoutePassengerDashboard = "/dashboard"
	RouteDriverDashboard    = "/driver"
	RouteTruckRegistration  = "/trucks/register"
)

// RoutingService decides the landing page for a resolved profile.
type RoutingService interface {
	Landing(ctx context.Context, profile *model.Profile) (string, error)
}

type routingService struct {
	truckRepo repository.TruckRepository
}

// NewRoutingService creates a new routing service.
func NewRoutingService(truckRepo repository.TruckRepository) RoutingService {
	return &routingService{truckRepo: truckRepo}
}

// Landing picks the landing route. Drivers without a registered truck go to
// truck registration; everyone else lands on their dashboard. The truck check
// re-runs on every call, nothing is cached.
func (s *routingService) Landing(ctx context.Context, profile *model.Profile) (string, error) {
	if !profile.IsDriver() {
		return RoutePassengerDashboard, nil
	}

	hasTruck, err := s.truckRepo.ExistsByOwner(ctx, profile.ID)
	if err != nil {
		return "", fmt.Errorf("check owned trucks: %w", err)
	}
	if !hasTruck {
		return RouteTruckRegistration, nil
	}
	return RouteDriverDashboard, nil
}
