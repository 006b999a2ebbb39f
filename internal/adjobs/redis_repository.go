package adjobs

import (
	"context"

	"github.com/Kdheeru12/ad-generator/internal/models"
)

type RedisRepository interface {
	EnqueueTask(ctx context.Context, key string, task *models.RenderTask) error
	DequeueTask(ctx context.Context, key string) (*models.RenderTask, error)

	CacheJob(ctx context.Context, job *models.AdJob) error
	GetCachedJob(ctx context.Context, jobID string) (*models.AdJob, error)
	DeleteCachedJob(ctx context.Context, jobID string) error
}
