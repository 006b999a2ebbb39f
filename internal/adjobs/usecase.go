package adjobs

import (
	"context"

	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/utils"
	"github.com/google/uuid"
)

type UseCase interface {
	GenerateAd(ctx context.Context, input *models.GenerateAdInput) (*models.AdJob, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*models.AdJob, error)
	ListJobs(ctx context.Context, pagination *utils.Pagination) (*models.JobList, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) error

	// ResolveVideo maps an asset name to its on-disk path, refusing jobs in a
	// failed state.
	ResolveVideo(ctx context.Context, filename string) (string, error)
}
