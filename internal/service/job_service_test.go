package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "smarthauling/internal/errors"
	"smarthauling/internal/model"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from model.JobStatus
		to   model.JobStatus
	}{
		{model.JobStatusAvailable, model.JobStatusScheduled},
		{model.JobStatusScheduled, model.JobStatusInProgress},
		{model.JobStatusScheduled, model.JobStatusCancelled},
		{model.JobStatusInProgress, model.JobStatusAtPickup},
		{model.JobStatusInProgress, model.JobStatusLoadingComplete},
		{model.JobStatusInProgress, model.JobStatusAtDropoff},
		{model.JobStatusAtPickup, model.JobStatusLoadingComplete},
		{model.JobStatusAtPickup, model.JobStatusAtDropoff},
		{model.JobStatusLoadingComplete, model.JobStatusAtDropoff},
		{model.JobStatusAtDropoff, model.JobStatusCompleted},
	}
	for _, tt := range allowed {
		assert.True(t, CanTransition(tt.from, tt.to), "%s -> %s should be allowed", tt.from, tt.to)
	}

	denied := []struct {
		from model.JobStatus
		to   model.JobStatus
	}{
		{model.JobStatusAvailable, model.JobStatusInProgress},
		{model.JobStatusScheduled, model.JobStatusCompleted},
		{model.JobStatusInProgress, model.JobStatusScheduled},
		{model.JobStatusAtDropoff, model.JobStatusAtPickup},
		{model.JobStatusCompleted, model.JobStatusInProgress},
		{model.JobStatusCancelled, model.JobStatusScheduled},
		{model.JobStatusCompleted, model.JobStatusCompleted},
	}
	for _, tt := range denied {
		assert.False(t, CanTransition(tt.from, tt.to), "%s -> %s should be denied", tt.from, tt.to)
	}
}

func TestJobService_List(t *testing.T) {
	driverID := uuid.New()

	t.Run("class maps to its status set", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("ListByDriver", mock.Anything, driverID, []model.JobStatus{model.JobStatusScheduled}).
			Return([]model.Job{{Status: model.JobStatusScheduled}}, nil)

		service := NewJobService(mockRepo)
		jobs, err := service.List(context.Background(), driverID, "upcoming")

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("available uses the shared pool", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("ListAvailable", mock.Anything).Return([]model.Job{}, nil)

		service := NewJobService(mockRepo)
		_, err := service.List(context.Background(), driverID, "available")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown class is rejected", func(t *testing.T) {
		service := NewJobService(new(MockJobRepository))
		_, err := service.List(context.Background(), driverID, "archived")
		assert.Error(t, err)
	})
}

func TestJobService_Get_Visibility(t *testing.T) {
	driverID := uuid.New()
	otherDriver := uuid.New()
	jobID := uuid.New()

	t.Run("available jobs are visible to any driver", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("FindByID", mock.Anything, jobID).Return(&model.Job{ID: jobID, Status: model.JobStatusAvailable}, nil)

		service := NewJobService(mockRepo)
		job, err := service.Get(context.Background(), driverID, jobID)

		assert.NoError(t, err)
		assert.Equal(t, jobID, job.ID)
	})

	t.Run("assigned jobs are restricted to their driver", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("FindByID", mock.Anything, jobID).Return(&model.Job{
			ID:       jobID,
			DriverID: otherDriver,
			Status:   model.JobStatusInProgress,
		}, nil)

		service := NewJobService(mockRepo)
		_, err := service.Get(context.Background(), driverID, jobID)

		assert.Equal(t, apperrors.ErrNotOwner, err)
	})

	t.Run("missing job", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("FindByID", mock.Anything, jobID).Return(nil, gorm.ErrRecordNotFound)

		service := NewJobService(mockRepo)
		_, err := service.Get(context.Background(), driverID, jobID)

		assert.Equal(t, apperrors.ErrJobNotFound, err)
	})
}

func TestJobService_UpdateStatus(t *testing.T) {
	driverID := uuid.New()
	jobID := uuid.New()

	t.Run("accepting an available job assigns it", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("FindByIDForUpdate", mock.Anything, jobID).Return(&model.Job{ID: jobID, Status: model.JobStatusAvailable}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Job")).Return(nil)
		mockRepo.On("AppendEvent", mock.Anything, mock.AnythingOfType("*model.JobEvent")).Return(nil)

		service := NewJobService(mockRepo)
		job, err := service.UpdateStatus(context.Background(), driverID, jobID, model.JobStatusScheduled, "accepted")

		assert.NoError(t, err)
		assert.Equal(t, driverID, job.DriverID)
		assert.Equal(t, model.JobStatusScheduled, job.Status)
		assert.Len(t, job.Timeline, 1)
		assert.Equal(t, "accepted", job.Timeline[0].Description)
	})

	t.Run("available job only accepts scheduling", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("FindByIDForUpdate", mock.Anything, jobID).Return(&model.Job{ID: jobID, Status: model.JobStatusAvailable}, nil)

		service := NewJobService(mockRepo)
		_, err := service.UpdateStatus(context.Background(), driverID, jobID, model.JobStatusInProgress, "")

		assert.Equal(t, apperrors.ErrInvalidTransition, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("invalid transition changes nothing", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("FindByIDForUpdate", mock.Anything, jobID).Return(&model.Job{
			ID:       jobID,
			DriverID: driverID,
			Status:   model.JobStatusScheduled,
		}, nil)

		service := NewJobService(mockRepo)
		_, err := service.UpdateStatus(context.Background(), driverID, jobID, model.JobStatusCompleted, "")

		assert.Equal(t, apperrors.ErrInvalidTransition, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "AppendEvent", mock.Anything, mock.Anything)
	})

	t.Run("another driver's job is off limits", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("FindByIDForUpdate", mock.Anything, jobID).Return(&model.Job{
			ID:       jobID,
			DriverID: uuid.New(),
			Status:   model.JobStatusScheduled,
		}, nil)

		service := NewJobService(mockRepo)
		_, err := service.UpdateStatus(context.Background(), driverID, jobID, model.JobStatusInProgress, "")

		assert.Equal(t, apperrors.ErrNotOwner, err)
	})

	t.Run("completion stamps the dropoff time", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("FindByIDForUpdate", mock.Anything, jobID).Return(&model.Job{
			ID:       jobID,
			DriverID: driverID,
			Status:   model.JobStatusAtDropoff,
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Job")).Return(nil)
		mockRepo.On("AppendEvent", mock.Anything, mock.AnythingOfType("*model.JobEvent")).Return(nil)

		service := NewJobService(mockRepo)
		job, err := service.UpdateStatus(context.Background(), driverID, jobID, model.JobStatusCompleted, "delivered")

		assert.NoError(t, err)
		assert.Equal(t, model.JobStatusCompleted, job.Status)
		assert.NotNil(t, job.DropoffTime)
	})

	t.Run("failed event append aborts the transition", func(t *testing.T) {
		mockRepo := new(MockJobRepository)
		mockRepo.On("FindByIDForUpdate", mock.Anything, jobID).Return(&model.Job{
			ID:       jobID,
			DriverID: driverID,
			Status:   model.JobStatusAtDropoff,
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Job")).Return(nil)
		mockRepo.On("AppendEvent", mock.Anything, mock.AnythingOfType("*model.JobEvent")).Return(assert.AnError)

		service := NewJobService(mockRepo)
		_, err := service.UpdateStatus(context.Background(), driverID, jobID, model.JobStatusCompleted, "delivered")

		assert.Error(t, err)
	})
}

func TestJobService_Earnings(t *testing.T) {
	driverID := uuid.New()
	// Wednesday 2026-08-26 15:04 local
	now := time.Date(2026, 8, 26, 15, 4, 0, 0, time.UTC)

	dayStart := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // Monday
	monthStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	mockRepo := new(MockJobRepository)
	mockRepo.On("SumCompletedPayouts", mock.Anything, driverID, dayStart, now).Return(decimal.RequireFromString("185.00"), nil)
	mockRepo.On("SumCompletedPayouts", mock.Anything, driverID, weekStart, now).Return(decimal.RequireFromString("425.00"), nil)
	mockRepo.On("SumCompletedPayouts", mock.Anything, driverID, monthStart, now).Return(decimal.RequireFromString("1890.00"), nil)
	mockRepo.On("SumCompletedPayouts", mock.Anything, driverID, lastMonthStart, monthStart).Return(decimal.RequireFromString("2210.00"), nil)

	service := NewJobService(mockRepo)
	summary, err := service.Earnings(context.Background(), driverID, now)

	assert.NoError(t, err)
	assert.Equal(t, "185.00", summary.Today.StringFixed(2))
	assert.Equal(t, "425.00", summary.ThisWeek.StringFixed(2))
	assert.Equal(t, "1890.00", summary.ThisMonth.StringFixed(2))
	assert.Equal(t, "2210.00", summary.LastMonth.StringFixed(2))
	mockRepo.AssertExpectations(t)
}

func TestJobService_Earnings_SundayBelongsToMondayWeek(t *testing.T) {
	driverID := uuid.New()
	// Sunday 2026-08-30
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // previous Monday

	mockRepo := new(MockJobRepository)
	mockRepo.On("SumCompletedPayouts", mock.Anything, driverID, mock.Anything, mock.Anything).Return(decimal.Zero, nil)

	service := NewJobService(mockRepo)
	_, err := service.Earnings(context.Background(), driverID, now)
	assert.NoError(t, err)

	mockRepo.AssertCalled(t, "SumCompletedPayouts", mock.Anything, driverID, weekStart, now)
}
