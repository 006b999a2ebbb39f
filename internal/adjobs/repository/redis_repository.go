package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kdheeru12/ad-generator/internal/adjobs"
	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/go-redis/redis/v8"
)

const (
	jobCachePrefix       = "adjob:status:"
	defaultStatusTTLSecs = 3600
)

type adJobsRedisRepo struct {
	redisClient *redis.Client
	statusTTL   time.Duration
}

func NewAdJobsRedisRepo(redisClient *redis.Client, statusTTLSeconds int) adjobs.RedisRepository {
	if statusTTLSeconds <= 0 {
		statusTTLSeconds = defaultStatusTTLSecs
	}
	return &adJobsRedisRepo{
		redisClient: redisClient,
		statusTTL:   time.Duration(statusTTLSeconds) * time.Second,
	}
}

func (r *adJobsRedisRepo) EnqueueTask(ctx context.Context, key string, task *models.RenderTask) error {
	task.EnqueuedAt = time.Now()
	return r.redisClient.LPush(ctx, key, task).Err()
}

// DequeueTask blocks until a task is available. BRPop keeps FIFO order with
// EnqueueTask's LPush and delivers each task to exactly one worker.
func (r *adJobsRedisRepo) DequeueTask(ctx context.Context, key string) (*models.RenderTask, error) {
	res, err := r.redisClient.BRPop(ctx, 0*time.Second, key).Result()
	if err != nil {
		return nil, err
	}
	task := &models.RenderTask{}
	if err = json.Unmarshal([]byte(res[1]), task); err != nil {
		return nil, fmt.Errorf("error unmarshalling render task: %w", err)
	}
	return task, nil
}

func (r *adJobsRedisRepo) CacheJob(ctx context.Context, job *models.AdJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return r.redisClient.Set(ctx, jobCachePrefix+job.JobID.String(), data, r.statusTTL).Err()
}

func (r *adJobsRedisRepo) GetCachedJob(ctx context.Context, jobID string) (*models.AdJob, error) {
	data, err := r.redisClient.Get(ctx, jobCachePrefix+jobID).Bytes()
	if err != nil {
		return nil, err
	}
	job := &models.AdJob{}
	if err = json.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached job: %w", err)
	}
	return job, nil
}

func (r *adJobsRedisRepo) DeleteCachedJob(ctx context.Context, jobID string) error {
	return r.redisClient.Del(ctx, jobCachePrefix+jobID).Err()
}
