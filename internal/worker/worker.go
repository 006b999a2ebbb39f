package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Kdheeru12/ad-generator/internal/adjobs"
	"github.com/Kdheeru12/ad-generator/internal/config"
	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/internal/render"
	"github.com/Kdheeru12/ad-generator/pkg/logger"
	"github.com/Kdheeru12/ad-generator/pkg/utils"
)

const (
	cpuBackoff   = 10 * time.Second
	redisBackoff = 5 * time.Second
)

// Renderer runs the full per-job render pipeline.
type Renderer interface {
	Assemble(ctx context.Context, task *models.RenderTask) (*render.RenderResult, error)
}

// Worker consumes render tasks from the queue. Each worker process owns its
// own database and redis handles; nothing is shared with the request path.
type Worker struct {
	cfg       *config.Config
	logger    logger.Logger
	jobRepo   adjobs.Repository
	redisRepo adjobs.RedisRepository
	awsRepo   adjobs.AWSRepository
	renderer  Renderer
	wg        sync.WaitGroup
}

func NewWorker(
	cfg *config.Config,
	log logger.Logger,
	jobRepo adjobs.Repository,
	redisRepo adjobs.RedisRepository,
	awsRepo adjobs.AWSRepository,
	renderer Renderer,
) *Worker {
	return &Worker{
		cfg:       cfg,
		logger:    log,
		jobRepo:   jobRepo,
		redisRepo: redisRepo,
		awsRepo:   awsRepo,
		renderer:  renderer,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting render workers")
	count := w.cfg.Worker.WorkerCount
	if count < 1 {
		count = 1
	}
	for i := 1; i <= count; i++ {
		w.wg.Add(1)
		go w.loop(ctx, i)
	}
}

func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context, workerID int) {
	defer w.wg.Done()
	w.logger.Infof("[Worker %d] Starting", workerID)

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("[Worker %d] Shutting down", workerID)
			return
		default:
		}

		if canAcceptJob, usage := utils.CheckCPUUsage(w.cfg.Worker.MaxCPUUsage); !canAcceptJob {
			w.logger.Infof("[Worker %d] CPU usage is high: %.1f", workerID, usage)
			sleepCtx(ctx, cpuBackoff)
			continue
		}

		task, err := w.redisRepo.DequeueTask(ctx, w.cfg.Redis.TaskQueueKey)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			w.logger.Errorf("[Worker %d] Redis error: %v", workerID, err)
			sleepCtx(ctx, redisBackoff)
			continue
		}

		w.processTask(ctx, workerID, task)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
