package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smarthauling/internal/model"
)

func TestRoutingService_Landing(t *testing.T) {
	driverID := uuid.New()

	tests := []struct {
		name          string
		profile       *model.Profile
		setupMock     func(*MockTruckRepository)
		expectedRoute string
		expectError   bool
	}{
		{
			name:          "passenger lands on the dashboard",
			profile:       &model.Profile{ID: driverID, Role: model.RolePassenger},
			setupMock:     func(m *MockTruckRepository) {},
			expectedRoute: RoutePassengerDashboard,
		},
		{
			name:    "driver without trucks goes to truck registration",
			profile: &model.Profile{ID: driverID, Role: model.RoleDriver},
			setupMock: func(m *MockTruckRepository) {
				m.On("ExistsByOwner", mock.Anything, driverID).Return(false, nil)
			},
			expectedRoute: RouteTruckRegistration,
		},
		{
			name:    "driver with a truck goes to the driver dashboard",
			profile: &model.Profile{ID: driverID, Role: model.RoleDriver},
			setupMock: func(m *MockTruckRepository) {
				m.On("ExistsByOwner", mock.Anything, driverID).Return(true, nil)
			},
			expectedRoute: RouteDriverDashboard,
		},
		{
			name:    "truck lookup failure propagates",
			profile: &model.Profile{ID: driverID, Role: model.RoleDriver},
			setupMock: func(m *MockTruckRepository) {
				m.On("ExistsByOwner", mock.Anything, driverID).Return(false, assert.AnError)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTruckRepository)
			tt.setupMock(mockRepo)

			service := NewRoutingService(mockRepo)
			route, err := service.Landing(context.Background(), tt.profile)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, route)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRoute, route)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// The truck check is repeated on every call so a freshly registered truck
// changes the route immediately.
func TestRoutingService_Landing_NotCached(t *testing.T) {
	driverID := uuid.New()
	profile := &model.Profile{ID: driverID, Role: model.RoleDriver}

	mockRepo := new(MockTruckRepository)
	mockRepo.On("ExistsByOwner", mock.Anything, driverID).Return(false, nil).Once()
	mockRepo.On("ExistsByOwner", mock.Anything, driverID).Return(true, nil).Once()

	service := NewRoutingService(mockRepo)

	route, err := service.Landing(context.Background(), profile)
	assert.NoError(t, err)
	assert.Equal(t, RouteTruckRegistration, route)

	route, err = service.Landing(context.Background(), profile)
	assert.NoError(t, err)
	assert.Equal(t, RouteDriverDashboard, route)

	mockRepo.AssertExpectations(t)
}
