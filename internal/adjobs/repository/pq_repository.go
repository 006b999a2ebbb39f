package repository

import (
	"context"
	"fmt"

	"github.com/Kdheeru12/ad-generator/internal/adjobs"
	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type adJobsRepo struct {
	db *sqlx.DB
}

func NewAdJobsRepo(db *sqlx.DB) adjobs.Repository {
	return &adJobsRepo{
		db: db,
	}
}

func (r *adJobsRepo) CreateJob(ctx context.Context, job *models.AdJob) (*models.AdJob, error) {
	created := &models.AdJob{}
	if err := r.db.QueryRowxContext(
		ctx,
		createJobQuery,
		job.SourceURL,
		job.ProductTitle,
		job.VideoFilename,
		models.JobStatusProcessing,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return created, nil
}

func (r *adJobsRepo) GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.AdJob, error) {
	job := &models.AdJob{}
	if err := r.db.QueryRowxContext(
		ctx,
		getJobByIDQuery,
		jobID,
	).StructScan(job); err != nil {
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}
	return job, nil
}

func (r *adJobsRepo) GetJobByFilename(ctx context.Context, filename string) (*models.AdJob, error) {
	job := &models.AdJob{}
	if err := r.db.QueryRowxContext(
		ctx,
		getJobByFilenameQuery,
		filename,
	).StructScan(job); err != nil {
		return nil, fmt.Errorf("failed to get job by filename: %w", err)
	}
	return job, nil
}

func (r *adJobsRepo) ListJobs(ctx context.Context, pq *utils.Pagination) (*models.JobList, error) {
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, getTotalJobsQuery); err != nil {
		return nil, fmt.Errorf("failed to get total jobs count: %w", err)
	}
	if totalCount == 0 {
		return buildJobList(make([]*models.AdJob, 0), totalCount, pq), nil
	}

	rows, err := r.db.QueryxContext(
		ctx,
		listJobsQuery,
		pq.GetOffset(),
		pq.GetLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*models.AdJob, 0, pq.GetSize())
	for rows.Next() {
		var job models.AdJob
		if err = rows.StructScan(&job); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, &job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}

	return buildJobList(jobs, totalCount, pq), nil
}

// buildJobList carries the raw row count, not a page count.
func buildJobList(jobs []*models.AdJob, totalCount int, pq *utils.Pagination) *models.JobList {
	return &models.JobList{
		Jobs:       jobs,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}
}

func (r *adJobsRepo) SetFilename(ctx context.Context, jobID uuid.UUID, filename string) (*models.AdJob, error) {
	job := &models.AdJob{}
	if err := r.db.QueryRowxContext(
		ctx,
		setFilenameQuery,
		jobID,
		filename,
	).StructScan(job); err != nil {
		return nil, fmt.Errorf("failed to set job filename: %w", err)
	}
	return job, nil
}

func (r *adJobsRepo) UpdateStatus(ctx context.Context, jobID uuid.UUID, status models.JobStatus, errorMessage string) (*models.AdJob, error) {
	job := &models.AdJob{}
	if err := r.db.QueryRowxContext(
		ctx,
		updateStatusQuery,
		jobID,
		status,
		errorMessage,
	).StructScan(job); err != nil {
		return nil, fmt.Errorf("failed to update job status (already terminal?): %w", err)
	}
	return job, nil
}

func (r *adJobsRepo) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, deleteJobQuery, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return fmt.Errorf("no job found to delete")
	}
	return nil
}
