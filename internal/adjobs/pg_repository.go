package adjobs

import (
	"context"

	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/utils"
	"github.com/google/uuid"
)

type Repository interface {
	CreateJob(ctx context.Context, job *models.AdJob) (*models.AdJob, error)
	GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.AdJob, error)
	GetJobByFilename(ctx context.Context, filename string) (*models.AdJob, error)
	ListJobs(ctx context.Context, pq *utils.Pagination) (*models.JobList, error)
	SetFilename(ctx context.Context, jobID uuid.UUID, filename string) (*models.AdJob, error)

	// UpdateStatus writes a terminal status. The update only applies while the
	// job is still processing; a second terminal write is an error.
	UpdateStatus(ctx context.Context, jobID uuid.UUID, status models.JobStatus, errorMessage string) (*models.AdJob, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) error
}
