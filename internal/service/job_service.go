package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "smarthauling/internal/errors"
	"smarthauling/internal/model"
	"smarthauling/internal/repository"
)

// jobTransitions lists which status changes a driver may apply.
var jobTransitions = map[model.JobStatus][]model.JobStatus{
	model.JobStatusAvailable:       {model.JobStatusScheduled},
	model.JobStatusScheduled:       {model.JobStatusInProgress, model.JobStatusCancelled},
	model.JobStatusInProgress:      {model.JobStatusAtPickup, model.JobStatusLoadingComplete, model.JobStatusAtDropoff},
	model.JobStatusAtPickup:        {model.JobStatusLoadingComplete, model.JobStatusAtDropoff},
	model.JobStatusLoadingComplete: {model.JobStatusAtDropoff},
	model.JobStatusAtDropoff:       {model.JobStatusCompleted},
}

// jobListClasses groups statuses into the list tabs drivers see.
var jobListClasses = map[string][]model.JobStatus{
	"active": {
		model.JobStatusInProgress,
		model.JobStatusAtPickup,
		model.JobStatusLoadingComplete,
		model.JobStatusAtDropoff,
	},
	"upcoming":  {model.JobStatusScheduled},
	"completed": {model.JobStatusCompleted},
}

// CanTransition reports whether a job may move from one status to another.
func CanTransition(from, to model.JobStatus) bool {
	for _, allowed := range jobTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// EarningsSummary aggregates completed-job payouts per period.
type EarningsSummary struct {
	Today     decimal.Decimal `json:"today"`
	ThisWeek  decimal.Decimal `json:"this_week"`
	ThisMonth decimal.Decimal `json:"this_month"`
	LastMonth decimal.Decimal `json:"last_month"`
}

// JobService handles driver-side hauling jobs.
type JobService interface {
	List(ctx context.Context, driverID uuid.UUID, class string) ([]model.Job, error)
	Get(ctx context.Context, driverID, id uuid.UUID) (*model.Job, error)
	UpdateStatus(ctx context.Context, driverID, id uuid.UUID, next model.JobStatus, note string) (*model.Job, error)
	Earnings(ctx context.Context, driverID uuid.UUID, now time.Time) (*EarningsSummary, error)
}

type jobService struct {
	repo repository.JobRepository
}

// NewJobService creates a new job service.
func NewJobService(repo repository.JobRepository) JobService {
	return &jobService{repo: repo}
}

// List returns a driver's jobs for one tab: active, upcoming, completed, or
// the shared pool of available jobs.
func (s *jobService) List(ctx context.Context, driverID uuid.UUID, class string) ([]model.Job, error) {
	if class == "available" {
		return s.repo.ListAvailable(ctx)
	}
	statuses, ok := jobListClasses[class]
	if !ok {
		return nil, fmt.Errorf("unknown job list %q", class)
	}
	return s.repo.ListByDriver(ctx, driverID, statuses)
}

// Get returns a job with its timeline. Available jobs are visible to any
// driver; assigned jobs only to theirs.
func (s *jobService) Get(ctx context.Context, driverID, id uuid.UUID) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("fetch job: %w", err)
	}
	if job.Status != model.JobStatusAvailable && job.DriverID != driverID {
		return nil, apperrors.ErrNotOwner
	}
	return job, nil
}

// UpdateStatus applies one transition and appends a timeline event, both in
// one transaction under a locking read so two drivers cannot claim the same
// job. Accepting an available job assigns it to the calling driver; completing
// a job stamps the dropoff time. Invalid transitions change nothing.
func (s *jobService) UpdateStatus(ctx context.Context, driverID, id uuid.UUID, next model.JobStatus, note string) (*model.Job, error) {
	var job *model.Job
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.JobRepository) error {
		var err error
		job, err = repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrJobNotFound
			}
			return fmt.Errorf("fetch job: %w", err)
		}

		if job.Status == model.JobStatusAvailable {
			if next != model.JobStatusScheduled {
				return apperrors.ErrInvalidTransition
			}
			job.DriverID = driverID
		} else if job.DriverID != driverID {
			return apperrors.ErrNotOwner
		}

		if !CanTransition(job.Status, next) {
			return apperrors.ErrInvalidTransition
		}

		job.Status = next
		if next == model.JobStatusCompleted {
			now := time.Now()
			job.DropoffTime = &now
		}
		if err := repo.Update(ctx, job); err != nil {
			return fmt.Errorf("update job: %w", err)
		}

		event := &model.JobEvent{
			JobID:       job.ID,
			Status:      next,
			Description: note,
		}
		if err := repo.AppendEvent(ctx, event); err != nil {
			return fmt.Errorf("append job event: %w", err)
		}
		job.Timeline = append(job.Timeline, *event)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Earnings sums completed-job payouts for today, the current week (starting
// Monday), the current month, and the previous month.
func (s *jobService) Earnings(ctx context.Context, driverID uuid.UUID, now time.Time) (*EarningsSummary, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	weekStart := dayStart.AddDate(0, 0, -(weekday - 1))

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	summary := &EarningsSummary{}
	var err error
	if summary.Today, err = s.repo.SumCompletedPayouts(ctx, driverID, dayStart, now); err != nil {
		return nil, fmt.Errorf("sum today: %w", err)
	}
	if summary.ThisWeek, err = s.repo.SumCompletedPayouts(ctx, driverID, weekStart, now); err != nil {
		return nil, fmt.Errorf("sum week: %w", err)
	}
	if summary.ThisMonth, err = s.repo.SumCompletedPayouts(ctx, driverID, monthStart, now); err != nil {
		return nil, fmt.Errorf("sum month: %w", err)
	}
	if summary.LastMonth, err = s.repo.SumCompletedPayouts(ctx, driverID, lastMonthStart, monthStart); err != nil {
		return nil, fmt.Errorf("sum last month: %w", err)
	}
	return summary, nil
}
