package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"smarthauling/internal/model"
)

// JobRepository defines hauling-job persistence operations.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Job, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID, statuses []model.JobStatus) ([]model.Job, error)
	ListAvailable(ctx context.Context) ([]model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	AppendEvent(ctx context.Context, event *model.JobEvent) error
	SumCompletedPayouts(ctx context.Context, driverID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo JobRepository) error) error
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository builds a GORM-backed repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID loads a job with its timeline, oldest event first.
func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByIDForUpdate loads a job with a row-level lock so two drivers cannot
// claim or transition the same job concurrently. The timeline is not loaded.
func (r *jobRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListByDriver(ctx context.Context, driverID uuid.UUID, statuses []model.JobStatus) ([]model.Job, error) {
	var jobs []model.Job
	q := r.db.WithContext(ctx).Where("driver_id = ?", driverID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Order("pickup_time ASC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListAvailable returns unassigned jobs any driver may accept.
func (r *jobRepository) ListAvailable(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Where("status = ?", model.JobStatusAvailable).
		Order("pickup_time ASC").Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) Update(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepository) AppendEvent(ctx context.Context, event *model.JobEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// WithTransaction executes a function within a database transaction.
func (r *jobRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo JobRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &jobRepository{db: tx})
	})
}

// SumCompletedPayouts totals payouts of jobs completed in [from, to).
func (r *jobRepository) SumCompletedPayouts(ctx context.Context, driverID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Job{}).
		Select("SUM(payout)").
		Where("driver_id = ? AND status = ? AND updated_at >= ? AND updated_at < ?",
			driverID, model.JobStatusCompleted, from, to).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
